package config

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is shared by the workflow and handlers. Without a registered
// provider it is a no-op.
var Tracer trace.Tracer = otel.Tracer("procurement-backend")
