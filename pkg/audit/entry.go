package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Entry is an immutable audit record.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Exception string    `json:"exception,omitempty"`
	Source    string    `json:"source"`
	UserID    string    `json:"userId,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}

// Sink receives audit entries.
type Sink interface {
	Record(ctx context.Context, e Entry) error
}

// Logger writes audit entries to the application logger.
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a sink that writes to log
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// Record writes e at info level, or at error level for LevelError entries.
func (l *Logger) Record(_ context.Context, e Entry) error {
	ev := l.log.Info()
	if e.Level == LevelError {
		ev = l.log.Error()
	}

	ev = ev.Str("audit", e.Level.String()).
		Str("source", e.Source).
		Time("at", e.Timestamp)
	if e.UserID != "" {
		ev = ev.Str("user_id", e.UserID)
	}
	if e.RequestID != "" {
		ev = ev.Str("request_id", e.RequestID)
	}
	if e.Exception != "" {
		ev = ev.Str("exception", e.Exception)
	}
	ev.Msg(e.Message)
	return nil
}

// Recorder fans entries out to a set of sinks.
type Recorder struct {
	log   zerolog.Logger
	sinks []Sink
	now   func() time.Time
}

// NewRecorder creates a Recorder. log receives sink failures.
func NewRecorder(log zerolog.Logger, sinks ...Sink) *Recorder {
	return &Recorder{
		log:   log,
		sinks: sinks,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Record stamps e if it has no timestamp and hands it to every sink. It
// always returns nil: an audit failure must not fail the audited operation.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = r.now()
	}
	for _, s := range r.sinks {
		if err := s.Record(ctx, e); err != nil {
			r.log.Warn().
				Err(err).
				Str("source", e.Source).
				Str("request_id", e.RequestID).
				Msg("audit: failed to record entry")
		}
	}
	return nil
}
