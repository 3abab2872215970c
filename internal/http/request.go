package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
)

const maxBodyBytes = 1 << 20 // 1 MB

var jsonNull = []byte("null")

// decodeBody reads the JSON body of r into dst. An absent, empty or null body
// is a missing body.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.MissingBodyErr
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.InvalidBodyErr.WrapParent(err)
		}
		return apperr.MissingBodyErr.WrapParent(err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, jsonNull) {
		return apperr.MissingBodyErr
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.InvalidBodyErr.WrapParent(err)
	}

	return nil
}
