// Package postgres reaches the database gateway over a direct Postgres
// connection. Procedure calls impersonate the caller the way the hosted REST
// layer does, so row-level security and auth.uid() apply unchanged.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/poxpos/internal/config"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/repository"
	"github.com/tuanvumaihuynh/poxpos/internal/storage/db"
)

var tracer = otel.Tracer("internal/gateway/postgres")

// Database is the connection the driver runs on.
type Database interface {
	db.DB
	db.Pinger
}

var _ gateway.Gateway = (*Client)(nil)

// Client is the direct Postgres implementation of gateway.Gateway.
type Client struct {
	db        Database
	jwtSecret []byte
	// outboxRepo is nil unless procedure calls are journaled.
	outboxRepo repository.OutboxMsgRepository
	now        func() time.Time

	// retset caches whether a procedure returns a set.
	retset sync.Map
}

// New creates a driver on database. outboxRepo is used only when cfg.Outbox is set.
func New(cfg config.Gateway, database Database, outboxRepo repository.OutboxMsgRepository) (*Client, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("postgres gateway driver requires SUPABASE_JWT_SECRET")
	}
	if cfg.Outbox && outboxRepo == nil {
		return nil, errors.New("outbox enabled without an outbox repository")
	}

	c := &Client{
		db:        database,
		jwtSecret: []byte(cfg.JWTSecret),
		now:       time.Now,
	}
	if cfg.Outbox {
		c.outboxRepo = outboxRepo
	}

	return c, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w: %w", gateway.ErrUnavailable, err)
	}
	return nil
}

// translateError turns a server error into a gateway error carrying the server
// message. Anything else is a transport failure.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", gateway.ErrUnavailable, err)
	}

	return &gateway.Error{
		Status:  statusForCode(pgErr.Code),
		Code:    pgErr.Code,
		Message: pgErr.Message,
		Details: pgErr.Detail,
		Hint:    pgErr.Hint,
	}
}

// statusForCode follows the status the REST layer reports for the same SQLSTATE.
func statusForCode(code string) int {
	switch {
	case code == "42501":
		return http.StatusForbidden
	case code == "23505":
		return http.StatusConflict
	case code == "23503":
		return http.StatusConflict
	case code == "42883", code == "42P01":
		return http.StatusNotFound
	case len(code) == 5 && code[:2] == "08":
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
