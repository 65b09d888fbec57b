package mediator

import (
	"context"
	"fmt"
	"time"

	"github.com/doodlesbykumbi/acts/pkg/audit"
	"github.com/doodlesbykumbi/acts/pkg/identity"
	"github.com/doodlesbykumbi/acts/pkg/metrics"
)

// Audit records one entry per dispatch on sink: success for completed
// commands, info for completed queries, error with the failure text
// otherwise.
func Audit(sink audit.Sink) Behavior {
	return func(ctx context.Context, info Info, req any, next Next) (any, error) {
		out, err := next(ctx)

		e := audit.Entry{
			Source:    info.Name,
			UserID:    identity.UserID(ctx),
			RequestID: identity.RequestID(ctx),
		}
		switch {
		case err != nil:
			e.Level = audit.LevelError
			e.Message = fmt.Sprintf("%s failed", info.Name)
			e.Exception = err.Error()
		case info.Kind == KindQuery:
			e.Level = audit.LevelInfo
			e.Message = fmt.Sprintf("%s succeeded", info.Name)
		default:
			e.Level = audit.LevelSuccess
			e.Message = fmt.Sprintf("%s succeeded", info.Name)
		}
		// The audited request may have been cancelled; the entry is still written.
		_ = sink.Record(context.WithoutCancel(ctx), e)

		return out, err
	}
}

// Metrics counts and times every dispatch.
func Metrics() Behavior {
	return func(ctx context.Context, info Info, req any, next Next) (any, error) {
		start := time.Now()
		out, err := next(ctx)

		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		metrics.RequestsDispatchedTotal.WithLabelValues(info.Name, string(info.Kind), outcome).Inc()
		metrics.RequestDispatchDuration.WithLabelValues(info.Name).Observe(time.Since(start).Seconds())

		return out, err
	}
}
