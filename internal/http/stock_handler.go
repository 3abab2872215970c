package http

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/service"
)

type stockHandler struct {
	stockSvc service.StockService
}

func newStockHandler(stockSvc service.StockService) *stockHandler {
	return &stockHandler{
		stockSvc: stockSvc,
	}
}

func (h *stockHandler) receiveStock(ctx context.Context, accessToken string, req service.ReceiveStockParams) (any, error) {
	if err := h.stockSvc.ReceiveStock(ctx, accessToken, req); err != nil {
		return nil, fmt.Errorf("stock service receive stock: %w", err)
	}

	return statusResponse{Status: statusOK}, nil
}

func (h *stockHandler) adjustStock(ctx context.Context, accessToken string, req service.AdjustStockParams) (any, error) {
	if err := h.stockSvc.AdjustStock(ctx, accessToken, req); err != nil {
		return nil, fmt.Errorf("stock service adjust stock: %w", err)
	}

	return statusResponse{Status: statusOK}, nil
}
