// Package mediator routes commands and queries to their handlers.
//
// A handler is registered for a request type. Send looks the handler up by
// the static type of the request, runs the pre-processors registered for that
// type in order, and then the handler. A pre-processor error stops the
// pipeline before the handler runs.
//
// Behaviors wrap every dispatch regardless of request type. The package
// provides two: Audit, which records one audit entry per dispatch, and
// Metrics, which counts and times dispatches.
//
// # Usage
//
//	m := mediator.New(mediator.Audit(recorder), mediator.Metrics())
//	_ = mediator.RegisterCommand[CreatePerson, int64](m, createPersonHandler)
//	mediator.AddPreProcessor[CreatePerson](m, createPersonValidator)
//
//	id, err := mediator.Send[CreatePerson, int64](ctx, m, CreatePerson{Name: "Jane"})
//
// Registration happens once at startup; Send is safe for concurrent use.
package mediator
