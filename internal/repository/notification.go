package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/internal/storage/db"
)

type ListLowStockProductsParams struct {
	ProductIDs []string
	// BranchID selects per-branch stock; nil reads the product's own stock columns.
	BranchID *string
}

type NotificationRepository interface {
	ListLowStockProducts(ctx context.Context, params ListLowStockProductsParams) ([]model.LowStockProduct, error)
	CreateNotification(ctx context.Context, n model.Notification) error
}

type notificationRepository struct {
	db db.DB
}

func NewNotificationRepository(db db.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const lowStockProductsSQL = `
	SELECT p.id::text, p.name, p.stock_on_hand::float8, p.low_stock_threshold::float8
	FROM products AS p
	WHERE p.id::text = ANY(@ids::text[])
	  AND p.stock_on_hand <= p.low_stock_threshold
	ORDER BY p.name
`

const lowStockBranchProductsSQL = `
	SELECT p.id::text, p.name, s.stock_on_hand::float8, s.low_stock_threshold::float8
	FROM product_stock AS s
	JOIN products AS p ON p.id = s.product_id
	WHERE s.branch_id::text = @branch_id
	  AND p.id::text = ANY(@ids::text[])
	  AND s.stock_on_hand <= s.low_stock_threshold
	ORDER BY p.name
`

func (r notificationRepository) ListLowStockProducts(ctx context.Context, params ListLowStockProductsParams) ([]model.LowStockProduct, error) {
	if len(params.ProductIDs) == 0 {
		return nil, nil
	}

	query := lowStockProductsSQL
	args := pgx.NamedArgs{"ids": params.ProductIDs}
	if params.BranchID != nil {
		query = lowStockBranchProductsSQL
		args["branch_id"] = *params.BranchID
	}

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.LowStockProduct, error) {
		var p model.LowStockProduct
		err := row.Scan(&p.ID, &p.Name, &p.StockOnHand, &p.LowStockThreshold)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect low stock products: %w", err)
	}

	return products, nil
}

func (r notificationRepository) CreateNotification(ctx context.Context, n model.Notification) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO notifications (user_id, title, body)
		VALUES (@user_id, @title, @body)
	`, pgx.NamedArgs{
		"user_id": n.UserID,
		"title":   n.Title,
		"body":    n.Body,
	}); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}
