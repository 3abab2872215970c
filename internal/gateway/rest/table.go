package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
)

var errUnfiltered = errors.New("refusing to write without a filter")

func (c *Client) Insert(ctx context.Context, table string, values map[string]any) (string, error) {
	query := url.Values{}
	query.Set("select", "id")

	var row struct {
		ID json.RawMessage `json:"id"`
	}
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   []string{"rest", "v1", table},
		query:  query,
		creds:  c.service(),
		headers: map[string]string{
			headerPrefer: preferReturnRows,
			headerAccept: acceptSingleRow,
		},
		body: values,
	}, &row); err != nil {
		return "", fmt.Errorf("insert %s: %w", table, err)
	}

	id, err := gateway.ScalarString(row.ID)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", table, err)
	}

	return id, nil
}

func (c *Client) Update(ctx context.Context, table string, values map[string]any, filter gateway.Filter) error {
	if len(filter) == 0 {
		return fmt.Errorf("update %s: %w", table, errUnfiltered)
	}

	if err := c.do(ctx, request{
		method:  http.MethodPatch,
		path:    []string{"rest", "v1", table},
		query:   eqQuery(filter),
		creds:   c.service(),
		headers: map[string]string{headerPrefer: preferMinimal},
		body:    values,
	}, nil); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, table string, filter gateway.Filter) error {
	if len(filter) == 0 {
		return fmt.Errorf("delete %s: %w", table, errUnfiltered)
	}

	if err := c.do(ctx, request{
		method:  http.MethodDelete,
		path:    []string{"rest", "v1", table},
		query:   eqQuery(filter),
		creds:   c.service(),
		headers: map[string]string{headerPrefer: preferMinimal},
	}, nil); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}

	return nil
}
