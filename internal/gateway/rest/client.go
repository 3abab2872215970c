// Package rest reaches the database gateway through its hosted HTTP APIs:
// PostgREST under /rest/v1 and the auth server under /auth/v1.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/poxpos/internal/config"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/pkg/correlationid"
)

var tracer = otel.Tracer("internal/gateway/rest")

const (
	maxResponseBytes = 4 << 20 // 4 MB

	contentTypeJSON   = "application/json"
	acceptSingleRow   = "application/vnd.pgrst.object+json"
	codeNoSingleRow   = "PGRST116"
	headerPrefer      = "Prefer"
	preferMinimal     = "return=minimal"
	preferReturnRows  = "return=representation"
	headerAPIKey      = "apikey"
	headerAuthBearer  = "Bearer "
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
)

var _ gateway.Gateway = (*Client)(nil)

// Client is the HTTP implementation of gateway.Gateway.
type Client struct {
	baseURL    *url.URL
	anonKey    string
	serviceKey string
	http       *http.Client
}

// New creates a client for the gateway located by cfg.
func New(cfg config.Gateway) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("gateway url must be absolute: %q", cfg.URL)
	}

	return &Client{
		baseURL:    baseURL,
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceRoleKey,
		http:       &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// credentials selects the api key and bearer token of one request.
type credentials struct {
	apiKey string
	bearer string
}

func (c *Client) service() credentials {
	return credentials{apiKey: c.serviceKey, bearer: c.serviceKey}
}

func (c *Client) user(accessToken string) credentials {
	return credentials{apiKey: c.anonKey, bearer: accessToken}
}

type request struct {
	method  string
	path    []string
	query   url.Values
	creds   credentials
	headers map[string]string
	body    any
}

func (c *Client) do(ctx context.Context, r request, out any) (err error) {
	ctx, span := tracer.Start(ctx, "gateway "+r.method+" "+strings.Join(r.path, "/"),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.method),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "gateway request failed")
		}
		span.End()
	}()

	u := c.baseURL.JoinPath(r.path...)
	u.RawQuery = r.query.Encode()

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	req.Header.Set(headerAPIKey, r.creds.apiKey)
	req.Header.Set("Authorization", headerAuthBearer+r.creds.bearer)
	req.Header.Set(headerAccept, contentTypeJSON)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if correlationID, ok := correlationid.FromContext(ctx); ok {
		req.Header.Set(correlationid.Header, correlationID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", gateway.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", gateway.ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", gateway.ErrUnavailable, err)
	}

	return nil
}

// decodeError turns an error response into a gateway error. PostgREST reports
// {code, message, details, hint}; the auth server uses msg, error_description or error.
func decodeError(status int, body []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		fields = nil
	}

	gwErr := &gateway.Error{
		Status:  status,
		Code:    stringField(fields, "code", "error_code"),
		Message: stringField(fields, "message", "msg", "error_description", "error"),
		Details: stringField(fields, "details"),
		Hint:    stringField(fields, "hint"),
	}

	if gwErr.Message == "" {
		if status >= http.StatusInternalServerError {
			return fmt.Errorf("%w: status %d", gateway.ErrUnavailable, status)
		}
		gwErr.Message = http.StatusText(status)
	}

	if gwErr.Code == codeNoSingleRow {
		return errors.Join(gateway.ErrNotFound, gwErr)
	}

	return gwErr
}

func stringField(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%g", v)
		}
	}
	return ""
}

func eqQuery(filter gateway.Filter) url.Values {
	q := url.Values{}
	for col, v := range filter {
		q.Set(col, "eq."+formatValue(v))
	}
	return q
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case *string:
		if t == nil {
			return "null"
		}
		return *t
	case nil:
		return "null"
	default:
		return fmt.Sprint(t)
	}
}
