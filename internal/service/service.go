// Package service implements the point-of-sale operations on top of the
// database gateway. Services validate their input, call the gateway once per
// write and translate gateway failures into client errors.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

func validate(v validator.Validator, params any) error {
	return apperr.Validation(params, v.Validate(params))
}

// optional returns nil for an absent or empty string.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// call invokes fn with the caller's token and classifies a failure by the
// message the procedure reported.
func call(ctx context.Context, gw gateway.Gateway, accessToken, fn string, args map[string]any) (json.RawMessage, error) {
	raw, err := gw.Call(ctx, accessToken, fn, args)
	if err != nil {
		return nil, apperr.FromCall(fmt.Errorf("gateway call %s: %w", fn, err))
	}
	return raw, nil
}

// scalarID decodes the id returned by fn.
func scalarID(fn string, raw json.RawMessage) (string, error) {
	id, err := gateway.ScalarString(raw)
	if err != nil {
		return "", apperr.UpstreamUnavailableErr.WrapParent(fmt.Errorf("%s result: %w", fn, err))
	}
	return id, nil
}
