package service

import (
	"context"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

type ReceiveStockParams struct {
	Items     []model.LineItem `json:"items" validate:"min=1,dive" msg:"At least one item is required."`
	Reference *string          `json:"reference"`
	BranchID  *string          `json:"branch_id"`
}

type AdjustStockParams struct {
	Items    []model.AdjustmentItem `json:"items" validate:"min=1,dive" msg:"At least one item is required."`
	BranchID *string                `json:"branch_id"`
}

type StockService interface {
	ReceiveStock(ctx context.Context, accessToken string, params ReceiveStockParams) error
	// AdjustStock applies signed corrections to stock on hand.
	AdjustStock(ctx context.Context, accessToken string, params AdjustStockParams) error
}

type stockService struct {
	gw        gateway.Gateway
	validator validator.Validator
}

func NewStockService(gw gateway.Gateway, v validator.Validator) StockService {
	return &stockService{
		gw:        gw,
		validator: v,
	}
}

func (s *stockService) ReceiveStock(ctx context.Context, accessToken string, params ReceiveStockParams) error {
	if err := validate(s.validator, params); err != nil {
		return err
	}

	_, err := call(ctx, s.gw, accessToken, gateway.ProcStockReceive, map[string]any{
		"p_items":     params.Items,
		"p_reference": params.Reference,
		"p_branch_id": optional(params.BranchID),
	})
	return err
}

func (s *stockService) AdjustStock(ctx context.Context, accessToken string, params AdjustStockParams) error {
	if err := validate(s.validator, params); err != nil {
		return err
	}

	_, err := call(ctx, s.gw, accessToken, gateway.ProcStockAdjust, map[string]any{
		"p_items":     params.Items,
		"p_branch_id": optional(params.BranchID),
	})
	return err
}
