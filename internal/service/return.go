package service

import (
	"context"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

type ProcessReturnParams struct {
	// ReturnType is customer or supplier.
	ReturnType string           `json:"return_type" validate:"required" msg:"Return type is required."`
	Reason     *string          `json:"reason"`
	Items      []model.LineItem `json:"items" validate:"min=1,dive" msg:"At least one item is required."`
	BranchID   *string          `json:"branch_id"`
}

type ReturnService interface {
	ProcessReturn(ctx context.Context, accessToken string, params ProcessReturnParams) (string, error)
}

type returnService struct {
	gw        gateway.Gateway
	validator validator.Validator
}

func NewReturnService(gw gateway.Gateway, v validator.Validator) ReturnService {
	return &returnService{
		gw:        gw,
		validator: v,
	}
}

func (s *returnService) ProcessReturn(ctx context.Context, accessToken string, params ProcessReturnParams) (string, error) {
	if err := validate(s.validator, params); err != nil {
		return "", err
	}

	raw, err := call(ctx, s.gw, accessToken, gateway.ProcProcessReturn, map[string]any{
		"p_return_type": params.ReturnType,
		"p_reason":      params.Reason,
		"p_items":       params.Items,
		"p_branch_id":   optional(params.BranchID),
	})
	if err != nil {
		return "", err
	}

	return scalarID(gateway.ProcProcessReturn, raw)
}
