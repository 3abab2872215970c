package http

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/service"
)

type supplierUpsertResponse struct {
	Status     string `json:"status"`
	SupplierID string `json:"supplier_id"`
}

type supplierHandler struct {
	supplierSvc service.SupplierService
}

func newSupplierHandler(supplierSvc service.SupplierService) *supplierHandler {
	return &supplierHandler{
		supplierSvc: supplierSvc,
	}
}

func (h *supplierHandler) upsertSupplier(ctx context.Context, _ string, req service.UpsertSupplierParams) (any, error) {
	id, err := h.supplierSvc.UpsertSupplier(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("supplier service upsert supplier: %w", err)
	}

	return supplierUpsertResponse{Status: statusOK, SupplierID: id}, nil
}

func (h *supplierHandler) deleteSupplier(ctx context.Context, _ string, req service.DeleteSupplierParams) (any, error) {
	if err := h.supplierSvc.DeleteSupplier(ctx, req); err != nil {
		return nil, fmt.Errorf("supplier service delete supplier: %w", err)
	}

	return statusResponse{Status: statusOK}, nil
}
