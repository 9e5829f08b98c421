// Package tracer is a small tracing facade for the ledger.
//
// Services depend on the Tracer interface; main wires the OpenTelemetry
// adapter and tests use NoopTracer.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	// End must be called exactly once.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
//
//	ctx, span := t.Start(ctx, tracer.SpanIssue, tracer.String(tracer.AttrCertificateID, id))
//	defer func() { span.End(err) }()
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names used by the ledger.
const (
	SpanConnect     = "ledger.connect"
	SpanIssue       = "ledger.issue"
	SpanVerify      = "ledger.verify"
	SpanRevoke      = "ledger.revoke"
	SpanListByOwner = "ledger.list_by_owner"
	SpanMetadata    = "ledger.metadata"
)

// Attribute keys used by the ledger.
const (
	AttrCertificateID    = "certificate.id"
	AttrOwnerAddress     = "owner.address"
	AttrTxHash           = "tx.hash"
	AttrStatus           = "verification.status"
	AttrSimulatedLatency = "simulated_latency_ms"
	AttrIDAttempts       = "id.attempts"
	AttrResultCount      = "result.count"
)

// Event names used by the ledger.
const (
	EventConfirmationRequested = "confirmation.requested"
	EventConfirmationAccepted  = "confirmation.accepted"
	EventConfirmationDenied    = "confirmation.denied"
)
