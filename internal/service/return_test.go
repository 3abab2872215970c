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

func TestReturnService_ProcessReturn(t *testing.T) {
	t.Parallel()

	token := tokenFor("user-1")
	items := []model.LineItem{{ProductID: "p1", Quantity: 1, Price: ptrTo(2.0)}}

	t.Run("returns the return id", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New().WithResult(gateway.ProcProcessReturn, `"ret-1"`)
		svc := NewReturnService(gw, testValidator)

		id, err := svc.ProcessReturn(t.Context(), token, ProcessReturnParams{
			ReturnType: "customer",
			Reason:     ptrTo("wrong size"),
			Items:      items,
		})
		require.NoError(t, err)
		assert.Equal(t, "ret-1", id)

		args := gw.CallsOf(gatewaytest.OpCall)[0].Args
		assert.Equal(t, "customer", args["p_return_type"])
		assert.Equal(t, ptrTo("wrong size"), args["p_reason"])
		assert.Equal(t, items, args["p_items"])
		assert.Nil(t, args["p_branch_id"])
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		svc := NewReturnService(gw, testValidator)

		_, err := svc.ProcessReturn(t.Context(), token, ProcessReturnParams{Items: items})
		requireZError(t, err, zerror.StatusValidationFailed, "Return type is required.")

		_, err = svc.ProcessReturn(t.Context(), token, ProcessReturnParams{ReturnType: "supplier"})
		requireZError(t, err, zerror.StatusValidationFailed, "At least one item is required.")

		assertNoGatewayCalls(t, gw)
	})
}
