package postgres

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
)

func TestInsertSQL(t *testing.T) {
	t.Parallel()

	query, args := insertSQL("suppliers", map[string]any{"phone": nil, "name": "Acme", "email": "a@acme.test"})

	assert.Equal(t, `INSERT INTO "suppliers" ("email", "name", "phone") VALUES ($1, $2, $3) RETURNING id::text`, query)
	assert.Equal(t, []any{"a@acme.test", "Acme", nil}, args)

	query, args = insertSQL("public.branches", nil)
	assert.Equal(t, `INSERT INTO "public"."branches" DEFAULT VALUES RETURNING id::text`, query)
	assert.Empty(t, args)
}

func TestUpdateSQL(t *testing.T) {
	t.Parallel()

	query, args := updateSQL("branches",
		map[string]any{"name": "Main", "is_default": true},
		gateway.Filter{"id": "b1"},
	)

	assert.Equal(t, `UPDATE "branches" SET "is_default" = $1, "name" = $2 WHERE "id" = $3`, query)
	assert.Equal(t, []any{true, "Main", "b1"}, args)
}

func TestDeleteSQL(t *testing.T) {
	t.Parallel()

	query, args := deleteSQL("suppliers", gateway.Filter{"id": "s1", "archived_at": nil})

	assert.Equal(t, `DELETE FROM "suppliers" WHERE "archived_at" IS NULL AND "id" = $1`, query)
	assert.Equal(t, []any{"s1"}, args)
}

func TestQuoteName_EscapesQuotes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"bad""name"`, quoteName(`bad"name`))
}

func TestCallSQL(t *testing.T) {
	t.Parallel()

	query, args := callSQL("manual_sale", map[string]any{
		"p_items":     []map[string]any{{"product_id": "p1", "quantity": 1}},
		"p_branch_id": nil,
	})

	assert.Equal(t, `SELECT to_jsonb(r) FROM "manual_sale"("p_branch_id" => $1, "p_items" => $2) AS r`, query)
	assert.Len(t, args, 2)
	assert.Nil(t, args[0])

	query, args = callSQL("ping", nil)
	assert.Equal(t, `SELECT to_jsonb(r) FROM "ping"() AS r`, query)
	assert.Empty(t, args)
}

func TestAssembleResult(t *testing.T) {
	t.Parallel()

	rows := [][]byte{[]byte(`{"id":"s1"}`), nil, []byte(`{"id":"s2"}`)}

	assert.JSONEq(t, `[{"id":"s1"},null,{"id":"s2"}]`, string(assembleResult(rows, true)))
	assert.JSONEq(t, `[]`, string(assembleResult(nil, true)))
	assert.JSONEq(t, `{"id":"s1"}`, string(assembleResult(rows, false)))
	assert.Equal(t, json.RawMessage("null"), assembleResult(nil, false))
	assert.Equal(t, json.RawMessage(`"abc"`), assembleResult([][]byte{[]byte(`"abc"`)}, false))
}
