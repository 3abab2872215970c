package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
)

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Ping(r.Context()); err != nil {
		s.handleResponseError(w, r, apperr.HealthCheckFailedErr.WrapParent(fmt.Errorf("ping gateway: %w", err)))
		return
	}

	s.writeJSON(w, r, http.StatusOK, statusResponse{Status: statusOK})
}
