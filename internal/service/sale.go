package service

import (
	"context"
	"encoding/json"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

type ManualSaleParams struct {
	Items    []model.LineItem `json:"items" validate:"min=1,dive" msg:"At least one item is required."`
	BranchID *string          `json:"branch_id"`
}

type CheckoutParams struct {
	PaymentMethod string           `json:"payment_method" validate:"required" msg:"Payment method is required."`
	Items         []model.LineItem `json:"items" validate:"min=1,dive" msg:"At least one item is required."`
	BranchID      *string          `json:"branch_id"`
}

type SaleService interface {
	// RecordManualSale records a sale keyed in by hand and returns the sale row.
	RecordManualSale(ctx context.Context, accessToken string, params ManualSaleParams) (json.RawMessage, error)
	// Checkout records a till sale and returns the sale row.
	Checkout(ctx context.Context, accessToken string, params CheckoutParams) (json.RawMessage, error)
}

type saleService struct {
	gw        gateway.Gateway
	validator validator.Validator
}

func NewSaleService(gw gateway.Gateway, v validator.Validator) SaleService {
	return &saleService{
		gw:        gw,
		validator: v,
	}
}

func (s *saleService) RecordManualSale(ctx context.Context, accessToken string, params ManualSaleParams) (json.RawMessage, error) {
	if err := validate(s.validator, params); err != nil {
		return nil, err
	}

	raw, err := call(ctx, s.gw, accessToken, gateway.ProcManualSale, map[string]any{
		"p_items":     params.Items,
		"p_branch_id": optional(params.BranchID),
	})
	if err != nil {
		return nil, err
	}

	return gateway.FirstRow(raw), nil
}

func (s *saleService) Checkout(ctx context.Context, accessToken string, params CheckoutParams) (json.RawMessage, error) {
	params.PaymentMethod = *trimmed(&params.PaymentMethod)
	if err := validate(s.validator, params); err != nil {
		return nil, err
	}

	raw, err := call(ctx, s.gw, accessToken, gateway.ProcCheckoutSale, map[string]any{
		"p_payment_method": params.PaymentMethod,
		"p_items":          params.Items,
		"p_branch_id":      optional(params.BranchID),
	})
	if err != nil {
		return nil, err
	}

	return gateway.FirstRow(raw), nil
}
