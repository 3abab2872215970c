package service

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

type UpsertBranchParams struct {
	ID        *string `json:"id"`
	Name      string  `json:"name" validate:"required" msg:"Name is required."`
	IsDefault *bool   `json:"is_default"`
}

type BranchService interface {
	// UpsertBranch updates the branch when an id is given and inserts it
	// otherwise. It returns the branch id.
	UpsertBranch(ctx context.Context, params UpsertBranchParams) (string, error)
}

type branchService struct {
	gw        gateway.Gateway
	validator validator.Validator
}

func NewBranchService(gw gateway.Gateway, v validator.Validator) BranchService {
	return &branchService{
		gw:        gw,
		validator: v,
	}
}

func (s *branchService) UpsertBranch(ctx context.Context, params UpsertBranchParams) (string, error) {
	params.Name = *trimmed(&params.Name)
	if err := validate(s.validator, params); err != nil {
		return "", err
	}

	branch := model.Branch{
		Name:      params.Name,
		IsDefault: params.IsDefault != nil && *params.IsDefault,
	}

	// At most one branch is the default.
	if branch.IsDefault {
		if err := s.gw.Update(ctx, model.TableBranches,
			map[string]any{"is_default": false},
			gateway.Filter{"is_default": true},
		); err != nil {
			return "", apperr.FromWrite(fmt.Errorf("gateway clear default branch: %w", err))
		}
	}

	if id := optional(params.ID); id != nil {
		if err := s.gw.Update(ctx, model.TableBranches, branch.Values(), gateway.Filter{"id": *id}); err != nil {
			return "", apperr.FromWrite(fmt.Errorf("gateway update branch: %w", err))
		}
		return *id, nil
	}

	id, err := s.gw.Insert(ctx, model.TableBranches, branch.Values())
	if err != nil {
		return "", apperr.FromWrite(fmt.Errorf("gateway insert branch: %w", err))
	}

	return id, nil
}
