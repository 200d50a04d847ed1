package telemetry

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

// OutcomeOK labels a successful operation. Failures are labelled with the
// lower-cased domain error code, or "error" for untagged errors.
const OutcomeOK = "ok"

// Operations counts and times store operations:
//
//	portal_store_operations_total{op,kind,outcome}
//	portal_store_operation_duration_seconds{op,kind,outcome}
type Operations struct {
	total    *Counter
	duration *Histogram
}

// NewOperations registers the store instruments on meter. A nil meter uses
// the global provider.
func NewOperations(meter metric.Meter) (*Operations, error) {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(TracerName)
	}
	total, err := NewCounter(meter, "portal_store_operations_total",
		"Entity store loads and mutations", "{operation}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, "portal_store_operation_duration_seconds",
		"Entity store operation latency including the backend round trip", "s", OperationBuckets...)
	if err != nil {
		return nil, err
	}
	return &Operations{total: total, duration: duration}, nil
}

// MustOperations is NewOperations on the global meter, logging instead of failing.
func MustOperations(logger *zap.Logger) *Operations {
	ops, err := NewOperations(nil)
	if err != nil {
		logger.Warn("Store metrics unavailable", zap.Error(err))
		return nil
	}
	return ops
}

// Record counts one operation. Safe on a nil receiver.
func (o *Operations) Record(ctx context.Context, op, kind string, started time.Time, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrOperation.String(op),
		AttrKind.String(kind),
		AttrOutcome.String(Outcome(err)),
	}
	o.total.Inc(ctx, attrs...)
	o.duration.RecordDuration(ctx, time.Since(started), attrs...)
}

// Outcome returns the metric label for err
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if code := shared.CodeOf(err); code != "" {
		return strings.ToLower(code)
	}
	return "error"
}
