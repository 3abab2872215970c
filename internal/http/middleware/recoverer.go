package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
	"github.com/tuanvumaihuynh/poxpos/internal/http/apierr"
)

// Recoverer turns a panicking handler into the generic 500 error response and
// logs the panic value with its stack.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				// aborted responses must stay aborted
				if err, ok := rvr.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rvr)
				}

				err := apperr.UnexpectedErr.WrapParent(fmt.Errorf("panic: %v", rvr))
				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", err),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				//nolint:errcheck
				apierr.Write(w, apierr.New(err))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
