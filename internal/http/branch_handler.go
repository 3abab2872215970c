package http

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/service"
)

type branchUpsertResponse struct {
	Status   string `json:"status"`
	BranchID string `json:"branch_id"`
}

type branchHandler struct {
	branchSvc service.BranchService
}

func newBranchHandler(branchSvc service.BranchService) *branchHandler {
	return &branchHandler{
		branchSvc: branchSvc,
	}
}

// upsertBranch writes with the service role once the caller passed the role gate.
func (h *branchHandler) upsertBranch(ctx context.Context, _ string, req service.UpsertBranchParams) (any, error) {
	id, err := h.branchSvc.UpsertBranch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("branch service upsert branch: %w", err)
	}

	return branchUpsertResponse{Status: statusOK, BranchID: id}, nil
}
