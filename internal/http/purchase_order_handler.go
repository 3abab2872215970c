package http

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/service"
)

type purchaseOrderCreateResponse struct {
	Status          string `json:"status"`
	PurchaseOrderID string `json:"purchase_order_id"`
}

type purchaseOrderHandler struct {
	purchaseOrderSvc service.PurchaseOrderService
}

func newPurchaseOrderHandler(purchaseOrderSvc service.PurchaseOrderService) *purchaseOrderHandler {
	return &purchaseOrderHandler{
		purchaseOrderSvc: purchaseOrderSvc,
	}
}

func (h *purchaseOrderHandler) createPurchaseOrder(ctx context.Context, accessToken string, req service.CreatePurchaseOrderParams) (any, error) {
	id, err := h.purchaseOrderSvc.CreatePurchaseOrder(ctx, accessToken, req)
	if err != nil {
		return nil, fmt.Errorf("purchase order service create purchase order: %w", err)
	}

	return purchaseOrderCreateResponse{Status: statusOK, PurchaseOrderID: id}, nil
}

func (h *purchaseOrderHandler) receivePurchaseOrder(ctx context.Context, accessToken string, req service.ReceivePurchaseOrderParams) (any, error) {
	if err := h.purchaseOrderSvc.ReceivePurchaseOrder(ctx, accessToken, req); err != nil {
		return nil, fmt.Errorf("purchase order service receive purchase order: %w", err)
	}

	return statusResponse{Status: statusOK}, nil
}
