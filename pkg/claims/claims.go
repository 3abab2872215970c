// Package claims reads claims out of a bearer token WITHOUT verifying it.
//
// Nothing in this package checks a signature, an expiry or an issuer. A subject
// returned by PeekSubject is whatever the caller chose to put in the token and
// must never be used to grant access on its own. Access decisions go through a
// session verified by the database gateway (see internal/service.AuthService).
package claims

import (
	"encoding/json"
	"strings"

	"github.com/dgrijalva/jwt-go"
)

// PeekSubject returns the "sub" claim of a JWT-shaped token.
//
// The token must have exactly three dot separated segments; the middle one is
// base64url decoded (padding restored) and parsed as a JSON object. It reports
// false when any step fails or when "sub" is not a string.
func PeekSubject(token string) (string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", false
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return "", false
	}

	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", false
	}

	sub, ok := body["sub"].(string)
	if !ok {
		return "", false
	}

	return sub, true
}
