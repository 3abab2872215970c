package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// FirstRow returns the first element when raw is a JSON array and raw itself otherwise.
// Procedures returning a set come back as arrays; scalar procedures as bare values.
// An empty array or empty result yields JSON null.
func FirstRow(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage(jsonNull)
	}

	if trimmed[0] != '[' {
		return json.RawMessage(trimmed)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(trimmed, &rows); err != nil || len(rows) == 0 {
		return json.RawMessage(jsonNull)
	}

	return rows[0]
}

// ScalarString decodes a scalar procedure result (or the first row of a set) as a string.
// JSON null decodes to the empty string.
func ScalarString(raw json.RawMessage) (string, error) {
	first := FirstRow(raw)
	if bytes.Equal(first, jsonNull) {
		return "", nil
	}

	var v any
	if err := json.Unmarshal(first, &v); err != nil {
		return "", fmt.Errorf("decode scalar result: %w", err)
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case map[string]any:
		// single column set returned as an object, e.g. {"product_upsert": "..."}
		if len(t) == 1 {
			for _, col := range t {
				if s, ok := col.(string); ok {
					return s, nil
				}
			}
		}
		return "", fmt.Errorf("unexpected object result %s", first)
	default:
		return string(first), nil
	}
}
