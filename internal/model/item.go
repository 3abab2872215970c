package model

// LineItem is one product line of a sale, receipt, purchase order or return.
// It is forwarded to the remote procedure as part of p_items.
type LineItem struct {
	ProductID string   `json:"product_id" validate:"required" msg:"Each item needs a product."`
	Quantity  float64  `json:"quantity" validate:"gt=0" msg:"Each item needs a positive quantity."`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,finite" msg:"Each item price must be a number."`
	Cost      *float64 `json:"cost,omitempty" validate:"omitempty,finite" msg:"Each item cost must be a number."`
}

// AdjustmentItem is one signed stock correction. Negative quantities remove stock.
type AdjustmentItem struct {
	ProductID string  `json:"product_id" validate:"required" msg:"Each item needs a product."`
	Quantity  float64 `json:"quantity" validate:"ne=0" msg:"Each adjustment needs a non-zero quantity."`
	Reason    *string `json:"reason,omitempty"`
}
