package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
	"github.com/tuanvumaihuynh/poxpos/pkg/zerror"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorResponse
	}{
		{
			name: "method not allowed",
			err:  apperr.MethodNotAllowedErr,
			want: ErrorResponse{Error: "Method not allowed.", StatusCode: http.StatusMethodNotAllowed},
		},
		{
			name: "wrapped forbidden",
			err:  fmt.Errorf("authorize: %w", apperr.NotAuthorizedErr),
			want: ErrorResponse{Error: "Not authorized.", StatusCode: http.StatusForbidden},
		},
		{
			name: "validation failure",
			err:  apperr.ValidationErr.WithMsg("Name is required."),
			want: ErrorResponse{Error: "Name is required.", StatusCode: http.StatusBadRequest},
		},
		{
			name: "upstream message",
			err:  apperr.Classify("Not authenticated"),
			want: ErrorResponse{Error: "Not authenticated", StatusCode: http.StatusUnauthorized},
		},
		{
			name: "upstream unavailable",
			err:  apperr.UpstreamUnavailableErr,
			want: ErrorResponse{Error: "Request failed.", StatusCode: http.StatusInternalServerError},
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: ErrorResponse{Error: "Unexpected server error.", StatusCode: http.StatusInternalServerError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, New(tt.err))
		})
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, Write(rec, New(apperr.MissingTokenErr)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Missing auth token."}`, rec.Body.String())
}

func TestZErrorStatusToHTTPStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusBadRequest, ZErrorStatusToHTTPStatus(zerror.StatusValidationFailed))
	assert.Equal(t, http.StatusInternalServerError, ZErrorStatusToHTTPStatus(zerror.StatusUnknown))
	assert.Equal(t, http.StatusServiceUnavailable, ZErrorStatusToHTTPStatus(zerror.StatusServiceUnavailable))
}
