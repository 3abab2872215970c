package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Call invokes a procedure through /rest/v1/rpc with the caller's token.
func (c *Client) Call(ctx context.Context, accessToken, fn string, args map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = map[string]any{}
	}

	var result json.RawMessage
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   []string{"rest", "v1", "rpc", fn},
		creds:  c.user(accessToken),
		body:   args,
	}, &result); err != nil {
		return nil, fmt.Errorf("call %s: %w", fn, err)
	}

	return result, nil
}
