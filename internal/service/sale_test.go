package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway/gatewaytest"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/zerror"
)

func TestSaleService_RecordManualSale(t *testing.T) {
	t.Parallel()

	token := tokenFor("user-1")
	items := []model.LineItem{{ProductID: "p1", Quantity: 2, Price: ptrTo(3.5)}}

	t.Run("returns the first sale row", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New().WithResult(gateway.ProcManualSale, `[{"sale_id":"s1","receipt_no":"R-1"},{"sale_id":"s2"}]`)
		svc := NewSaleService(gw, testValidator)

		sale, err := svc.RecordManualSale(t.Context(), token, ManualSaleParams{Items: items, BranchID: ptrTo("b1")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"sale_id":"s1","receipt_no":"R-1"}`, string(sale))

		calls := gw.CallsOf(gatewaytest.OpCall)
		require.Len(t, calls, 1)
		assert.Equal(t, gateway.ProcManualSale, calls[0].Fn)
		assert.Equal(t, items, calls[0].Args["p_items"])
		assert.Equal(t, ptrTo("b1"), calls[0].Args["p_branch_id"])
	})

	t.Run("empty items", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		svc := NewSaleService(gw, testValidator)

		_, err := svc.RecordManualSale(t.Context(), token, ManualSaleParams{Items: []model.LineItem{}})
		requireZError(t, err, zerror.StatusValidationFailed, "At least one item is required.")
		assertNoGatewayCalls(t, gw)

		_, err = svc.RecordManualSale(t.Context(), token, ManualSaleParams{})
		requireZError(t, err, zerror.StatusValidationFailed, "At least one item is required.")
		assertNoGatewayCalls(t, gw)
	})

	t.Run("invalid items", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		svc := NewSaleService(gw, testValidator)

		_, err := svc.RecordManualSale(t.Context(), token, ManualSaleParams{Items: []model.LineItem{{Quantity: 1}}})
		requireZError(t, err, zerror.StatusValidationFailed, "Each item needs a product.")

		_, err = svc.RecordManualSale(t.Context(), token, ManualSaleParams{Items: []model.LineItem{{ProductID: "p1"}}})
		requireZError(t, err, zerror.StatusValidationFailed, "Each item needs a positive quantity.")

		_, err = svc.RecordManualSale(t.Context(), token, ManualSaleParams{Items: []model.LineItem{{ProductID: "p1", Quantity: -2}}})
		requireZError(t, err, zerror.StatusValidationFailed, "Each item needs a positive quantity.")

		assertNoGatewayCalls(t, gw)
	})

	t.Run("error classification", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			err        error
			wantStatus zerror.Status
			wantMsg    string
		}{
			{
				name:       "not authenticated",
				err:        &gateway.Error{Status: 401, Message: "Not authenticated"},
				wantStatus: zerror.StatusUnauthorized,
				wantMsg:    "Not authenticated",
			},
			{
				name:       "not allowed",
				err:        &gateway.Error{Status: 400, Message: "Not allowed"},
				wantStatus: zerror.StatusForbidden,
				wantMsg:    "Not allowed",
			},
			{
				name:       "business error verbatim",
				err:        &gateway.Error{Status: 400, Message: "Insufficient stock for Milk"},
				wantStatus: zerror.StatusBadRequest,
				wantMsg:    "Insufficient stock for Milk",
			},
			{
				name:       "empty message",
				err:        &gateway.Error{Status: 400},
				wantStatus: zerror.StatusBadRequest,
				wantMsg:    "Request failed.",
			},
			{
				name:       "unreachable",
				err:        fmt.Errorf("dial: %w", gateway.ErrUnavailable),
				wantStatus: zerror.StatusInternalServerError,
				wantMsg:    "Request failed.",
			},
			{
				name:       "unexpected",
				err:        errors.New("boom"),
				wantStatus: zerror.StatusInternalServerError,
				wantMsg:    "Unexpected server error.",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				gw := gatewaytest.New()
				gw.CallErr = tt.err
				svc := NewSaleService(gw, testValidator)

				_, err := svc.RecordManualSale(t.Context(), token, ManualSaleParams{Items: items})
				requireZError(t, err, tt.wantStatus, tt.wantMsg)
			})
		}
	})
}

func TestSaleService_Checkout(t *testing.T) {
	t.Parallel()

	token := tokenFor("user-1")
	items := []model.LineItem{{ProductID: "p1", Quantity: 1}}

	t.Run("forwards the trimmed payment method", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New().WithResult(gateway.ProcCheckoutSale, `[{"sale_id":"s1"}]`)
		svc := NewSaleService(gw, testValidator)

		sale, err := svc.Checkout(t.Context(), token, CheckoutParams{PaymentMethod: " cash ", Items: items})
		require.NoError(t, err)
		assert.JSONEq(t, `{"sale_id":"s1"}`, string(sale))

		args := gw.CallsOf(gatewaytest.OpCall)[0].Args
		assert.Equal(t, "cash", args["p_payment_method"])
		assert.Nil(t, args["p_branch_id"])
	})

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New().WithResult(gateway.ProcCheckoutSale, `[]`)
		svc := NewSaleService(gw, testValidator)

		sale, err := svc.Checkout(t.Context(), token, CheckoutParams{PaymentMethod: "card", Items: items})
		require.NoError(t, err)
		assert.Equal(t, "null", string(sale))
	})

	t.Run("payment method is checked before items", func(t *testing.T) {
		t.Parallel()

		gw := gatewaytest.New()
		svc := NewSaleService(gw, testValidator)

		_, err := svc.Checkout(t.Context(), token, CheckoutParams{PaymentMethod: "  "})
		requireZError(t, err, zerror.StatusValidationFailed, "Payment method is required.")

		_, err = svc.Checkout(t.Context(), token, CheckoutParams{PaymentMethod: "cash"})
		requireZError(t, err, zerror.StatusValidationFailed, "At least one item is required.")

		assertNoGatewayCalls(t, gw)
	})
}
