package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway/gatewaytest"
	"github.com/tuanvumaihuynh/poxpos/internal/log"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/zerror"
)

func TestAuthService_Authorize(t *testing.T) {
	t.Parallel()

	adminToken := tokenFor("admin-1")
	managerToken := tokenFor("manager-1")
	cashierToken := tokenFor("cashier-1")

	newGateway := func() *gatewaytest.Fake {
		return gatewaytest.New().
			WithUser(adminToken, "admin-1", model.RoleAdmin).
			WithUser(managerToken, "manager-1", model.RoleManager).
			WithUser(cashierToken, "cashier-1", model.RoleCashier)
	}

	t.Run("allowed role", func(t *testing.T) {
		t.Parallel()

		gw := newGateway()
		svc := NewAuthService(log.NewDiscardLogger(), gw)

		profile, err := svc.Authorize(t.Context(), managerToken, SupplierRoles)
		require.NoError(t, err)
		assert.Equal(t, model.RoleManager, profile.Role)
		assert.Equal(t, "manager-1", profile.UserID)

		calls := gw.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, gatewaytest.OpGetUser, calls[0].Op)
		assert.Equal(t, gatewaytest.OpGetProfile, calls[1].Op)
		assert.Equal(t, "manager-1", calls[1].UserID)
	})

	t.Run("role outside allow set", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(log.NewDiscardLogger(), newGateway())

		_, err := svc.Authorize(t.Context(), cashierToken, SupplierRoles)
		requireZError(t, err, zerror.StatusForbidden, "Not authorized.")

		_, err = svc.Authorize(t.Context(), managerToken, BranchRoles)
		requireZError(t, err, zerror.StatusForbidden, "Not authorized.")
	})

	t.Run("unknown role is denied", func(t *testing.T) {
		t.Parallel()

		token := tokenFor("auditor-1")
		gw := newGateway().WithUser(token, "auditor-1", model.Role("auditor"))
		svc := NewAuthService(log.NewDiscardLogger(), gw)

		_, err := svc.Authorize(t.Context(), token, SupplierRoles)
		requireZError(t, err, zerror.StatusForbidden, "Not authorized.")
	})

	t.Run("malformed token never reaches the gateway", func(t *testing.T) {
		t.Parallel()

		gw := newGateway()
		svc := NewAuthService(log.NewDiscardLogger(), gw)

		_, err := svc.Authorize(t.Context(), "not-a-jwt", BranchRoles)
		requireZError(t, err, zerror.StatusUnauthorized, "Invalid auth token.")
		assertNoGatewayCalls(t, gw)
	})

	t.Run("session rejected by gateway", func(t *testing.T) {
		t.Parallel()

		gw := newGateway()
		svc := NewAuthService(log.NewDiscardLogger(), gw)

		_, err := svc.Authorize(t.Context(), tokenFor("stranger"), BranchRoles)
		requireZError(t, err, zerror.StatusUnauthorized, "Invalid auth token.")
		assert.Empty(t, gw.CallsOf(gatewaytest.OpGetProfile))
	})

	t.Run("subject does not match session", func(t *testing.T) {
		t.Parallel()

		forged := tokenFor("admin-1")
		gw := gatewaytest.New().WithUser(forged, "cashier-1", model.RoleCashier)
		gw.Profiles["admin-1"] = model.Profile{UserID: "admin-1", Role: model.RoleAdmin}
		svc := NewAuthService(log.NewDiscardLogger(), gw)

		_, err := svc.Authorize(t.Context(), forged, BranchRoles)
		requireZError(t, err, zerror.StatusUnauthorized, "Invalid auth token.")
	})

	t.Run("missing profile", func(t *testing.T) {
		t.Parallel()

		gw := newGateway()
		delete(gw.Profiles, "admin-1")
		svc := NewAuthService(log.NewDiscardLogger(), gw)

		_, err := svc.Authorize(t.Context(), adminToken, BranchRoles)
		requireZError(t, err, zerror.StatusForbidden, "Not authorized.")
		require.ErrorIs(t, err, gateway.ErrNotFound)
	})

	t.Run("profile lookup failure", func(t *testing.T) {
		t.Parallel()

		gw := newGateway()
		gw.ProfileErr = errors.New("boom")
		svc := NewAuthService(log.NewDiscardLogger(), gw)

		_, err := svc.Authorize(t.Context(), adminToken, BranchRoles)
		requireZError(t, err, zerror.StatusForbidden, "Not authorized.")
	})

	t.Run("gateway unavailable", func(t *testing.T) {
		t.Parallel()

		gw := newGateway()
		gw.UserErr = fmt.Errorf("get user: %w", gateway.ErrUnavailable)
		svc := NewAuthService(log.NewDiscardLogger(), gw)

		_, err := svc.Authorize(t.Context(), adminToken, BranchRoles)
		requireZError(t, err, zerror.StatusInternalServerError, "Request failed.")
	})
}
