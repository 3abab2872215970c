package event

import (
	"encoding/json"
	"time"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
)

const (
	TopicSaleRecorded          = "sale.recorded"
	TopicStockReceived         = "stock.received"
	TopicStockAdjusted         = "stock.adjusted"
	TopicPurchaseOrderCreated  = "purchase_order.created"
	TopicPurchaseOrderReceived = "purchase_order.received"
	TopicReturnProcessed       = "return.processed"
	TopicProductUpserted       = "product.upserted"
)

var procedureTopics = map[string]string{
	gateway.ProcManualSale:           TopicSaleRecorded,
	gateway.ProcCheckoutSale:         TopicSaleRecorded,
	gateway.ProcStockReceive:         TopicStockReceived,
	gateway.ProcStockAdjust:          TopicStockAdjusted,
	gateway.ProcCreatePurchaseOrder:  TopicPurchaseOrderCreated,
	gateway.ProcReceivePurchaseOrder: TopicPurchaseOrderReceived,
	gateway.ProcProcessReturn:        TopicReturnProcessed,
	gateway.ProcProductUpsert:        TopicProductUpserted,
}

// TopicForProcedure returns the topic a successful call of fn is published to.
func TopicForProcedure(fn string) (string, bool) {
	topic, ok := procedureTopics[fn]
	return topic, ok
}

// ProcedureEvent records one successful procedure call.
type ProcedureEvent struct {
	Procedure  string          `json:"procedure"`
	Subject    string          `json:"subject"`
	Args       json.RawMessage `json:"args"`
	Result     json.RawMessage `json:"result"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type procedureArgs struct {
	Items []struct {
		ProductID string `json:"product_id"`
	} `json:"p_items"`
	BranchID *string `json:"p_branch_id"`
}

// ProductIDs returns the distinct products named by the call's items, in order.
func (e ProcedureEvent) ProductIDs() ([]string, error) {
	var args procedureArgs
	if err := json.Unmarshal(e.Args, &args); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(args.Items))
	ids := make([]string, 0, len(args.Items))
	for _, item := range args.Items {
		if item.ProductID == "" {
			continue
		}
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids, nil
}

// BranchID returns the branch the call was made for, if any.
func (e ProcedureEvent) BranchID() (*string, error) {
	var args procedureArgs
	if err := json.Unmarshal(e.Args, &args); err != nil {
		return nil, err
	}
	if args.BranchID != nil && *args.BranchID == "" {
		return nil, nil
	}
	return args.BranchID, nil
}
