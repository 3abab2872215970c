// Package driver opens the gateway implementation selected by configuration.
package driver

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanvumaihuynh/poxpos/internal/config"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway/postgres"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway/rest"
	"github.com/tuanvumaihuynh/poxpos/internal/repository"
	"github.com/tuanvumaihuynh/poxpos/internal/storage/db"
)

var ErrPoolRequired = errors.New("postgres gateway driver requires a database pool")

// Open returns the gateway for cfg.Driver. pool is only used by the postgres
// driver and may be nil otherwise.
func Open(cfg config.Gateway, pool *pgxpool.Pool) (gateway.Gateway, error) {
	switch cfg.Driver {
	case config.GatewayDriverREST:
		gw, err := rest.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("create rest gateway: %w", err)
		}
		return gw, nil

	case config.GatewayDriverPostgres:
		if pool == nil {
			return nil, ErrPoolRequired
		}

		dbClient := db.NewClient(pool)
		gw, err := postgres.New(cfg, dbClient, repository.NewOutboxMsgRepository(dbClient))
		if err != nil {
			return nil, fmt.Errorf("create postgres gateway: %w", err)
		}
		return gw, nil

	default:
		return nil, fmt.Errorf("unsupported gateway driver: %s", cfg.Driver)
	}
}

// NeedsPool reports whether the gateway selected by cfg reaches the database directly.
func NeedsPool(cfg config.Gateway) bool {
	return cfg.Driver == config.GatewayDriverPostgres
}
