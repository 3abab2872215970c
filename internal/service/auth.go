package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/claims"
)

var (
	// BranchRoles may create and edit branches.
	BranchRoles = []model.Role{model.RoleAdmin}
	// SupplierRoles may create, edit and delete suppliers.
	SupplierRoles = []model.Role{model.RoleAdmin, model.RoleManager}
)

type AuthService interface {
	// Authorize verifies the session behind accessToken and returns the
	// caller's profile when its role is one of allowed.
	Authorize(ctx context.Context, accessToken string, allowed []model.Role) (model.Profile, error)
}

type authService struct {
	logger *slog.Logger
	gw     gateway.Gateway
}

func NewAuthService(logger *slog.Logger, gw gateway.Gateway) AuthService {
	return &authService{
		logger: logger,
		gw:     gw,
	}
}

func (s *authService) Authorize(ctx context.Context, accessToken string, allowed []model.Role) (model.Profile, error) {
	// A malformed token is turned away before any network call.
	subject, ok := claims.PeekSubject(accessToken)
	if !ok {
		return model.Profile{}, apperr.InvalidTokenErr
	}

	user, err := s.gw.GetUser(ctx, accessToken)
	if err != nil {
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) {
			return model.Profile{}, apperr.InvalidTokenErr.WrapParent(err)
		}
		return model.Profile{}, apperr.FromCall(fmt.Errorf("gateway get user: %w", err))
	}
	if user.ID != subject {
		return model.Profile{}, apperr.InvalidTokenErr
	}

	profile, err := s.gw.GetProfile(ctx, user.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "profile lookup failed", slog.Any("error", err))
		return model.Profile{}, apperr.NotAuthorizedErr.WrapParent(err)
	}

	if !slices.Contains(allowed, profile.Role) {
		return model.Profile{}, apperr.NotAuthorizedErr
	}

	return profile, nil
}
