package http

import (
	"context"
	"net/http"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
	"github.com/tuanvumaihuynh/poxpos/internal/http/middleware"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
)

// operationFunc runs one operation for the caller's token and returns the response body.
type operationFunc[T any] func(ctx context.Context, accessToken string, req T) (any, error)

// operation builds the handler of one POST operation. When roles is not nil
// the caller's role is checked before the body is read.
func operation[T any](s *Service, roles []model.Role, run operationFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method != http.MethodPost {
			s.handleResponseError(w, r, apperr.MethodNotAllowedErr)
			return
		}

		token := middleware.BearerToken(r)
		if token == "" {
			s.handleResponseError(w, r, apperr.MissingTokenErr)
			return
		}

		if roles != nil {
			if _, err := s.authSvc.Authorize(ctx, token, roles); err != nil {
				s.handleResponseError(w, r, err)
				return
			}
		}

		var req T
		if err := decodeBody(w, r, &req); err != nil {
			s.handleResponseError(w, r, err)
			return
		}

		res, err := run(ctx, token, req)
		if err != nil {
			s.handleResponseError(w, r, err)
			return
		}

		s.writeJSON(w, r, http.StatusOK, res)
	}
}
