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

func TestStockService_ReceiveStock(t *testing.T) {
	t.Parallel()

	token := tokenFor("user-1")

	gw := gatewaytest.New()
	svc := NewStockService(gw, testValidator)

	items := []model.LineItem{{ProductID: "p1", Quantity: 10, Cost: ptrTo(0.8)}}
	err := svc.ReceiveStock(t.Context(), token, ReceiveStockParams{Items: items, Reference: ptrTo("INV-7")})
	require.NoError(t, err)

	calls := gw.CallsOf(gatewaytest.OpCall)
	require.Len(t, calls, 1)
	assert.Equal(t, gateway.ProcStockReceive, calls[0].Fn)
	assert.Equal(t, items, calls[0].Args["p_items"])
	assert.Equal(t, ptrTo("INV-7"), calls[0].Args["p_reference"])
	assert.Nil(t, calls[0].Args["p_branch_id"])

	err = svc.ReceiveStock(t.Context(), token, ReceiveStockParams{})
	requireZError(t, err, zerror.StatusValidationFailed, "At least one item is required.")
	assert.Len(t, gw.Calls(), 1)
}

func TestStockService_AdjustStock(t *testing.T) {
	t.Parallel()

	token := tokenFor("user-1")

	t.Run("signed quantities", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		svc := NewStockService(gw, testValidator)

		items := []model.AdjustmentItem{
			{ProductID: "p1", Quantity: -2, Reason: ptrTo("damaged")},
			{ProductID: "p2", Quantity: 5},
		}
		err := svc.AdjustStock(t.Context(), token, AdjustStockParams{Items: items, BranchID: ptrTo("b1")})
		require.NoError(t, err)

		calls := gw.CallsOf(gatewaytest.OpCall)
		require.Len(t, calls, 1)
		assert.Equal(t, gateway.ProcStockAdjust, calls[0].Fn)
		assert.Equal(t, items, calls[0].Args["p_items"])
	})

	t.Run("zero quantity", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		svc := NewStockService(gw, testValidator)

		err := svc.AdjustStock(t.Context(), token, AdjustStockParams{Items: []model.AdjustmentItem{{ProductID: "p1"}}})
		requireZError(t, err, zerror.StatusValidationFailed, "Each adjustment needs a non-zero quantity.")
		assertNoGatewayCalls(t, gw)
	})

	t.Run("not allowed", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		gw.CallErr = &gateway.Error{Status: 400, Message: "Not allowed"}
		svc := NewStockService(gw, testValidator)

		err := svc.AdjustStock(t.Context(), token, AdjustStockParams{Items: []model.AdjustmentItem{{ProductID: "p1", Quantity: 1}}})
		requireZError(t, err, zerror.StatusForbidden, "Not allowed")
	})
}
