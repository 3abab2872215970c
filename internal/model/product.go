package model

// LowStockProduct is a product whose stock on hand is at or below its threshold.
type LowStockProduct struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	StockOnHand       float64 `json:"stock_on_hand"`
	LowStockThreshold float64 `json:"low_stock_threshold"`
}
