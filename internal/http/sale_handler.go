package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/service"
)

// saleResponse carries the recorded sale row, or null when the procedure returned none.
type saleResponse struct {
	Sale json.RawMessage `json:"sale"`
}

type saleHandler struct {
	saleSvc service.SaleService
}

func newSaleHandler(saleSvc service.SaleService) *saleHandler {
	return &saleHandler{
		saleSvc: saleSvc,
	}
}

func (h *saleHandler) recordManualSale(ctx context.Context, accessToken string, req service.ManualSaleParams) (any, error) {
	sale, err := h.saleSvc.RecordManualSale(ctx, accessToken, req)
	if err != nil {
		return nil, fmt.Errorf("sale service record manual sale: %w", err)
	}

	return saleResponse{Sale: sale}, nil
}

func (h *saleHandler) checkout(ctx context.Context, accessToken string, req service.CheckoutParams) (any, error) {
	sale, err := h.saleSvc.Checkout(ctx, accessToken, req)
	if err != nil {
		return nil, fmt.Errorf("sale service checkout: %w", err)
	}

	return saleResponse{Sale: sale}, nil
}
