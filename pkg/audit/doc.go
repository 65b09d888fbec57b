// Package audit records the outcome of ACTS operations.
//
// Every command and query dispatched through the mediator produces one
// Entry: success or info when it completed, error when it failed. Entries
// are immutable and carry the request id and user id of the HTTP request (or
// CLI invocation) that caused them.
//
// # Sinks
//
//   - Logger writes entries to the zerolog application logger
//   - Store persists entries to the log_entries table
//
// A Recorder fans an entry out to several sinks. Sink failures are reported
// on the application logger and never fail the operation being audited.
//
// # Usage
//
//	rec := audit.NewRecorder(log, audit.NewLogger(log), audit.NewStore(sqlDB))
//	_ = rec.Record(ctx, audit.Entry{Level: audit.LevelSuccess, Message: "person created"})
package audit
