package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/poxpos/internal/repository"
	"github.com/tuanvumaihuynh/poxpos/internal/storage/mq"
)

// lowStockTopics are the topics whose events can drain stock.
var lowStockTopics = []string{
	TopicSaleRecorded,
	TopicStockAdjusted,
	TopicReturnProcessed,
}

// Service is the event service.
type Service struct {
	logger           *slog.Logger
	mqConsumer       mq.Consumer
	notificationRepo repository.NotificationRepository
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
	notificationRepo repository.NotificationRepository,
) *Service {
	return &Service{
		logger:           logger.With(slog.String("service", "event")),
		mqConsumer:       mqConsumer,
		notificationRepo: notificationRepo,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	for _, topic := range lowStockTopics {
		if err := s.mqConsumer.RegisterHandler(topic, s.procedureHandler(s.handleLowStock)); err != nil {
			return nil, fmt.Errorf("register %s handler: %w", topic, err)
		}
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

func (s *Service) procedureHandler(fn func(context.Context, ProcedureEvent) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev ProcedureEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := fn(ctx, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}
}
