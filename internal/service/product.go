package service

import (
	"context"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

type UpsertProductParams struct {
	ID                *string  `json:"id"`
	Name              string   `json:"name" validate:"required" msg:"Name is required."`
	Sku               *string  `json:"sku"`
	Barcode           *string  `json:"barcode"`
	Category          *string  `json:"category"`
	Price             *float64 `json:"price" validate:"required,finite" msg:"Price is required."`
	Cost              *float64 `json:"cost" validate:"omitempty,finite" msg:"Cost must be a number."`
	StockOnHand       *float64 `json:"stock_on_hand" validate:"omitempty,finite" msg:"Stock on hand must be a number."`
	LowStockThreshold *float64 `json:"low_stock_threshold" validate:"omitempty,finite" msg:"Low stock threshold must be a number."`
	IsActive          *bool    `json:"is_active"`
	BranchID          *string  `json:"branch_id"`
}

type ProductService interface {
	// UpsertProduct creates or updates a product and returns its id.
	UpsertProduct(ctx context.Context, accessToken string, params UpsertProductParams) (string, error)
}

type productService struct {
	gw        gateway.Gateway
	validator validator.Validator
}

func NewProductService(gw gateway.Gateway, v validator.Validator) ProductService {
	return &productService{
		gw:        gw,
		validator: v,
	}
}

func (s *productService) UpsertProduct(ctx context.Context, accessToken string, params UpsertProductParams) (string, error) {
	params.Name = *trimmed(&params.Name)
	if err := validate(s.validator, params); err != nil {
		return "", err
	}

	id := optional(params.ID)
	raw, err := call(ctx, s.gw, accessToken, gateway.ProcProductUpsert, productUpsertArgs(id, params))
	if err != nil {
		return "", err
	}

	if id != nil {
		return *id, nil
	}

	return scalarID(gateway.ProcProductUpsert, raw)
}

func productUpsertArgs(id *string, params UpsertProductParams) map[string]any {
	stockOnHand := 0.0
	if params.StockOnHand != nil {
		stockOnHand = *params.StockOnHand
	}
	lowStockThreshold := 0.0
	if params.LowStockThreshold != nil {
		lowStockThreshold = *params.LowStockThreshold
	}
	isActive := true
	if params.IsActive != nil {
		isActive = *params.IsActive
	}

	return map[string]any{
		"p_id":                  id,
		"p_name":                params.Name,
		"p_sku":                 params.Sku,
		"p_barcode":             params.Barcode,
		"p_category":            params.Category,
		"p_price":               *params.Price,
		"p_cost":                params.Cost,
		"p_stock_on_hand":       stockOnHand,
		"p_low_stock_threshold": lowStockThreshold,
		"p_is_active":           isActive,
		"p_branch_id":           optional(params.BranchID),
	}
}
