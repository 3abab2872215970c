package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("internal/storage/mq")
	// kTracer opens a span per produced and consumed record, linked through record headers.
	kTracer = kotel.NewTracer()
	kOtel   = kotel.NewKotel(kotel.WithTracer(kTracer))
)
