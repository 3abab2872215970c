package service

import (
	"context"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

type CreatePurchaseOrderParams struct {
	SupplierID string           `json:"supplier_id" validate:"required" msg:"Supplier is required."`
	Reference  *string          `json:"reference"`
	Items      []model.LineItem `json:"items" validate:"min=1,dive" msg:"At least one item is required."`
	BranchID   *string          `json:"branch_id"`
}

type ReceivePurchaseOrderParams struct {
	PurchaseOrderID string `json:"purchase_order_id" validate:"required" msg:"Purchase order ID is required."`
}

type PurchaseOrderService interface {
	// CreatePurchaseOrder opens a pending purchase order and returns its id.
	CreatePurchaseOrder(ctx context.Context, accessToken string, params CreatePurchaseOrderParams) (string, error)
	// ReceivePurchaseOrder marks the order received and books its items into stock.
	ReceivePurchaseOrder(ctx context.Context, accessToken string, params ReceivePurchaseOrderParams) error
}

type purchaseOrderService struct {
	gw        gateway.Gateway
	validator validator.Validator
}

func NewPurchaseOrderService(gw gateway.Gateway, v validator.Validator) PurchaseOrderService {
	return &purchaseOrderService{
		gw:        gw,
		validator: v,
	}
}

func (s *purchaseOrderService) CreatePurchaseOrder(ctx context.Context, accessToken string, params CreatePurchaseOrderParams) (string, error) {
	if err := validate(s.validator, params); err != nil {
		return "", err
	}

	raw, err := call(ctx, s.gw, accessToken, gateway.ProcCreatePurchaseOrder, map[string]any{
		"p_supplier_id": params.SupplierID,
		"p_reference":   params.Reference,
		"p_items":       params.Items,
		"p_branch_id":   optional(params.BranchID),
	})
	if err != nil {
		return "", err
	}

	return scalarID(gateway.ProcCreatePurchaseOrder, raw)
}

func (s *purchaseOrderService) ReceivePurchaseOrder(ctx context.Context, accessToken string, params ReceivePurchaseOrderParams) error {
	if err := validate(s.validator, params); err != nil {
		return err
	}

	_, err := call(ctx, s.gw, accessToken, gateway.ProcReceivePurchaseOrder, map[string]any{
		"p_purchase_order_id": params.PurchaseOrderID,
	})
	return err
}
