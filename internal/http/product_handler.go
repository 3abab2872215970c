package http

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/service"
)

type productUpsertResponse struct {
	Status    string `json:"status"`
	ProductID string `json:"product_id"`
}

type productHandler struct {
	productSvc service.ProductService
}

func newProductHandler(productSvc service.ProductService) *productHandler {
	return &productHandler{
		productSvc: productSvc,
	}
}

func (h *productHandler) upsertProduct(ctx context.Context, accessToken string, req service.UpsertProductParams) (any, error) {
	id, err := h.productSvc.UpsertProduct(ctx, accessToken, req)
	if err != nil {
		return nil, fmt.Errorf("product service upsert product: %w", err)
	}

	return productUpsertResponse{Status: statusOK, ProductID: id}, nil
}
