package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/poxpos/internal/event"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/repository"
	"github.com/tuanvumaihuynh/poxpos/internal/storage/db"
	"github.com/tuanvumaihuynh/poxpos/pkg/outbox"
)

// Call runs the procedure as the token's owner in its own transaction. A set
// returning procedure yields a JSON array, any other a single JSON value.
func (c *Client) Call(ctx context.Context, accessToken, fn string, args map[string]any) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Client.Call", trace.WithAttributes(attribute.String("procedure", fn)))
	defer span.End()

	claims, err := c.verify(accessToken)
	if err != nil {
		span.SetStatus(codes.Error, "invalid token")
		return nil, fmt.Errorf("call %s: %w", fn, &gateway.Error{
			Status:  http.StatusUnauthorized,
			Message: msgNotAuthenticated,
			Details: err.Error(),
		})
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("call %s: encode claims: %w", fn, err)
	}

	var result json.RawMessage
	err = c.db.WithTx(ctx, func(tx db.DB) error {
		retset, err := c.returnsSet(ctx, tx, fn)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `SELECT set_config('request.jwt.claims', $1, true)`, string(claimsJSON)); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `SET LOCAL ROLE authenticated`); err != nil {
			return err
		}

		query, values := callSQL(fn, args)
		rows, err := tx.Query(ctx, query, values...)
		if err != nil {
			return err
		}
		results, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
		if err != nil {
			return err
		}
		result = assembleResult(results, retset)

		if _, err := tx.Exec(ctx, `RESET ROLE`); err != nil {
			return err
		}

		return c.journal(ctx, tx, fn, claims, args, result)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "procedure failed")
		return nil, fmt.Errorf("call %s: %w", fn, translateError(err))
	}

	return result, nil
}

func (c *Client) returnsSet(ctx context.Context, tx db.DB, fn string) (bool, error) {
	if v, ok := c.retset.Load(fn); ok {
		return v.(bool), nil
	}

	var retset bool
	if err := tx.QueryRow(ctx, `
		SELECT coalesce(bool_or(p.proretset), false)
		FROM pg_proc AS p
		WHERE p.oid::regproc::text = $1 OR p.proname = $1
	`, fn).Scan(&retset); err != nil {
		return false, err
	}

	c.retset.Store(fn, retset)
	return retset, nil
}

// journal writes the call to the outbox in the caller's transaction.
func (c *Client) journal(ctx context.Context, tx db.DB, fn string, claims map[string]any, args map[string]any, result json.RawMessage) error {
	if c.outboxRepo == nil {
		return nil
	}

	topic, ok := event.TopicForProcedure(fn)
	if !ok {
		return nil
	}

	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}

	subject, _ := claims["sub"].(string)
	payload, err := json.Marshal(event.ProcedureEvent{
		Procedure:  fn,
		Subject:    subject,
		Args:       argsJSON,
		Result:     result,
		OccurredAt: c.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if err := c.outboxRepo.WithDB(tx).CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
		Topic:        topic,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: &subject,
	}); err != nil {
		return fmt.Errorf("create outbox msg: %w", err)
	}

	return nil
}

// callSQL selects each result row of fn as JSON, passing args by name.
func callSQL(fn string, args map[string]any) (string, []any) {
	names := sortedKeys(args)
	params := make([]string, 0, len(names))
	values := make([]any, 0, len(names))
	for i, name := range names {
		params = append(params, fmt.Sprintf("%s => $%d", quoteName(name), i+1))
		values = append(values, args[name])
	}

	query := fmt.Sprintf("SELECT to_jsonb(r) FROM %s(%s) AS r", quoteName(fn), strings.Join(params, ", "))
	return query, values
}

func assembleResult(rows [][]byte, retset bool) json.RawMessage {
	if !retset {
		if len(rows) == 0 || rows[0] == nil {
			return json.RawMessage("null")
		}
		return rows[0]
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			b.WriteByte(',')
		}
		if row == nil {
			b.WriteString("null")
			continue
		}
		b.Write(row)
	}
	b.WriteByte(']')
	return json.RawMessage(b.String())
}
