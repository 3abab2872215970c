package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.9.0"
)

func TestTrace(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := chi.NewRouter()
	r.Use(Trace(tp.Tracer("test")))
	r.HandleFunc("/api/checkout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.HandleFunc("/api/manual-sale", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.Get(HealthPath, func(http.ResponseWriter, *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/checkout", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/manual-sale", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, HealthPath, nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	checkout := spans[0]
	assert.Equal(t, "POST /api/checkout", checkout.Name())
	assert.Equal(t, codes.Unset, checkout.Status().Code)
	assert.Contains(t, checkout.Attributes(), OperationKey.String("checkout"))
	assert.Contains(t, checkout.Attributes(), semconv.HTTPStatusCodeKey.Int(http.StatusBadRequest))

	sale := spans[1]
	assert.Equal(t, codes.Error, sale.Status().Code)
	assert.Contains(t, sale.Attributes(), OperationKey.String("manual-sale"))
}

func TestOperationName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "checkout", operationName("/api/checkout"))
	assert.Equal(t, "po-receive", operationName("/.netlify/functions/po-receive"))
	assert.Empty(t, operationName("/healthz"))
	assert.Empty(t, operationName("/api/"))
	assert.Empty(t, operationName("/api/a/b"))
}
