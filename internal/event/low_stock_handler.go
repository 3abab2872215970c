package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/internal/repository"
)

const lowStockTitle = "Low stock alert"

func (s *Service) handleLowStock(ctx context.Context, ev ProcedureEvent) error {
	if ev.Subject == "" {
		s.logger.WarnContext(ctx, "procedure event without subject", slog.String("procedure", ev.Procedure))
		return nil
	}

	productIDs, err := ev.ProductIDs()
	if err != nil {
		return fmt.Errorf("read product ids: %w", err)
	}
	if len(productIDs) == 0 {
		return nil
	}

	branchID, err := ev.BranchID()
	if err != nil {
		return fmt.Errorf("read branch id: %w", err)
	}

	products, err := s.notificationRepo.ListLowStockProducts(ctx, repository.ListLowStockProductsParams{
		ProductIDs: productIDs,
		BranchID:   branchID,
	})
	if err != nil {
		return fmt.Errorf("list low stock products: %w", err)
	}
	if len(products) == 0 {
		return nil
	}

	n := lowStockNotification(ev.Subject, products)
	if err := s.notificationRepo.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	s.logger.InfoContext(ctx, "low stock alert created",
		slog.String("procedure", ev.Procedure),
		slog.Int("products", len(products)),
	)
	return nil
}

func lowStockNotification(userID string, products []model.LowStockProduct) model.Notification {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}

	return model.Notification{
		UserID: userID,
		Title:  lowStockTitle,
		Body:   "Items low: " + strings.Join(names, ", "),
	}
}
