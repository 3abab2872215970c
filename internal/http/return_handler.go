package http

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/service"
)

type returnProcessResponse struct {
	Status   string `json:"status"`
	ReturnID string `json:"return_id"`
}

type returnHandler struct {
	returnSvc service.ReturnService
}

func newReturnHandler(returnSvc service.ReturnService) *returnHandler {
	return &returnHandler{
		returnSvc: returnSvc,
	}
}

func (h *returnHandler) processReturn(ctx context.Context, accessToken string, req service.ProcessReturnParams) (any, error) {
	id, err := h.returnSvc.ProcessReturn(ctx, accessToken, req)
	if err != nil {
		return nil, fmt.Errorf("return service process return: %w", err)
	}

	return returnProcessResponse{Status: statusOK, ReturnID: id}, nil
}
