package service

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway/gatewaytest"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
	"github.com/tuanvumaihuynh/poxpos/pkg/zerror"
)

var testValidator = validator.MustNewDefaultValidator()

// tokenFor returns an unsigned JWT-shaped token whose subject is sub.
func tokenFor(sub string) string {
	payload := base64.RawURLEncoding.EncodeToString(fmt.Appendf(nil, `{"sub":%q,"role":"authenticated"}`, sub))
	return "eyJhbGciOiJIUzI1NiJ9." + payload + ".signature"
}

func requireZError(t *testing.T, err error, status zerror.Status, msg string) {
	t.Helper()

	var zErr zerror.ZError
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, status, zErr.Status())
	assert.Equal(t, msg, zErr.Msg())
}

func assertNoGatewayCalls(t *testing.T, gw *gatewaytest.Fake) {
	t.Helper()

	assert.Empty(t, gw.Calls(), "expected no gateway calls")
}

func ptrTo[T any](v T) *T {
	return &v
}
