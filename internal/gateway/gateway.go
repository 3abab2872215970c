// Package gateway defines the client of the managed database that owns every
// business rule: row reads and writes, session verification and the stored
// procedures that move stock and record sales.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/model"
)

var (
	// ErrNotFound is returned when a single-row lookup matched nothing.
	ErrNotFound = errors.New("gateway: row not found")
	// ErrUnavailable wraps transport failures: the gateway could not be reached
	// or answered with something that is not a gateway response.
	ErrUnavailable = errors.New("gateway: unavailable")
)

// Error is a rejection reported by the gateway itself.
type Error struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error %d: %s", e.Status, e.Message)
}

// Filter selects rows by column equality. Every entry must match.
type Filter map[string]any

// Gateway is the database gateway.
//
// GetProfile and the table operations run with the privileged service role.
// Call runs with the caller's access token so the procedure applies its own
// authorization.
type Gateway interface {
	// GetUser verifies the access token and returns the session owner.
	GetUser(ctx context.Context, accessToken string) (model.User, error)
	// GetProfile returns the profile of the user or ErrNotFound.
	GetProfile(ctx context.Context, userID string) (model.Profile, error)

	Insert(ctx context.Context, table string, values map[string]any) (string, error)
	Update(ctx context.Context, table string, values map[string]any, filter Filter) error
	Delete(ctx context.Context, table string, filter Filter) error

	// Call invokes the named procedure with named arguments and returns its raw JSON result.
	Call(ctx context.Context, accessToken, fn string, args map[string]any) (json.RawMessage, error)

	Ping(ctx context.Context) error
}

// Procedure names exposed by the database.
const (
	ProcManualSale           = "manual_sale"
	ProcCheckoutSale         = "checkout_sale"
	ProcProductUpsert        = "product_upsert"
	ProcCreatePurchaseOrder  = "create_purchase_order"
	ProcReceivePurchaseOrder = "receive_purchase_order"
	ProcProcessReturn        = "process_return"
	ProcStockReceive         = "stock_receive"
	ProcStockAdjust          = "stock_adjust"
)
