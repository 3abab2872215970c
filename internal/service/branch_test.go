package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway/gatewaytest"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/zerror"
)

func TestBranchService_UpsertBranch(t *testing.T) {
	t.Parallel()

	t.Run("new default branch clears the current default first", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		gw.InsertID = "branch-2"
		svc := NewBranchService(gw, testValidator)

		id, err := svc.UpsertBranch(t.Context(), UpsertBranchParams{Name: "Main", IsDefault: ptrTo(true)})
		require.NoError(t, err)
		assert.Equal(t, "branch-2", id)

		calls := gw.Calls()
		require.Len(t, calls, 2)

		assert.Equal(t, gatewaytest.OpUpdate, calls[0].Op)
		assert.Equal(t, model.TableBranches, calls[0].Table)
		assert.Equal(t, map[string]any{"is_default": false}, calls[0].Values)
		assert.Equal(t, gateway.Filter{"is_default": true}, calls[0].Filter)

		assert.Equal(t, gatewaytest.OpInsert, calls[1].Op)
		assert.Equal(t, map[string]any{"name": "Main", "is_default": true}, calls[1].Values)
	})

	t.Run("non default insert", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		gw.InsertID = "branch-3"
		svc := NewBranchService(gw, testValidator)

		id, err := svc.UpsertBranch(t.Context(), UpsertBranchParams{Name: "  Annex  "})
		require.NoError(t, err)
		assert.Equal(t, "branch-3", id)

		calls := gw.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, map[string]any{"name": "Annex", "is_default": false}, calls[0].Values)
	})

	t.Run("update by id", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		svc := NewBranchService(gw, testValidator)

		id, err := svc.UpsertBranch(t.Context(), UpsertBranchParams{ID: ptrTo("branch-1"), Name: "Main"})
		require.NoError(t, err)
		assert.Equal(t, "branch-1", id)

		calls := gw.CallsOf(gatewaytest.OpUpdate)
		require.Len(t, calls, 1)
		assert.Equal(t, gateway.Filter{"id": "branch-1"}, calls[0].Filter)
		assert.Empty(t, gw.CallsOf(gatewaytest.OpInsert))
	})

	t.Run("blank name", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		svc := NewBranchService(gw, testValidator)

		_, err := svc.UpsertBranch(t.Context(), UpsertBranchParams{Name: "   ", IsDefault: ptrTo(true)})
		requireZError(t, err, zerror.StatusValidationFailed, "Name is required.")
		assertNoGatewayCalls(t, gw)
	})

	t.Run("gateway rejection keeps the message", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		gw.InsertErr = &gateway.Error{Status: 409, Message: "duplicate key value violates unique constraint"}
		svc := NewBranchService(gw, testValidator)

		_, err := svc.UpsertBranch(t.Context(), UpsertBranchParams{Name: "Main"})
		requireZError(t, err, zerror.StatusBadRequest, "duplicate key value violates unique constraint")
	})

	t.Run("failed clear stops the insert", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		gw.UpdateErrs = map[string]error{model.TableBranches: &gateway.Error{Status: 400, Message: "permission denied"}}
		svc := NewBranchService(gw, testValidator)

		_, err := svc.UpsertBranch(t.Context(), UpsertBranchParams{Name: "Main", IsDefault: ptrTo(true)})
		requireZError(t, err, zerror.StatusBadRequest, "permission denied")
		assert.Empty(t, gw.CallsOf(gatewaytest.OpInsert))
	})
}
