package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ErrNoHandler is returned by Send when no handler is registered for the
// request type.
var ErrNoHandler = errors.New("no handler registered")

// ErrDuplicateHandler is returned when a second handler is registered for
// the same request type.
var ErrDuplicateHandler = errors.New("handler already registered")

// Kind distinguishes writes from reads.
type Kind string

const (
	KindCommand Kind = "command"
	KindQuery   Kind = "query"
)

// Info describes the request being dispatched.
type Info struct {
	Name string
	Kind Kind
}

// Handler handles one request type.
type Handler[Req any, Resp any] interface {
	Handle(ctx context.Context, req Req) (Resp, error)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc[Req any, Resp any] func(ctx context.Context, req Req) (Resp, error)

func (f HandlerFunc[Req, Resp]) Handle(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

// PreProcessor runs before the handler of its request type.
type PreProcessor[Req any] interface {
	Process(ctx context.Context, req Req) error
}

// PreProcessorFunc adapts a function to a PreProcessor.
type PreProcessorFunc[Req any] func(ctx context.Context, req Req) error

func (f PreProcessorFunc[Req]) Process(ctx context.Context, req Req) error {
	return f(ctx, req)
}

// Next continues the pipeline.
type Next func(ctx context.Context) (any, error)

// Behavior wraps every dispatch. It must call next exactly once.
type Behavior func(ctx context.Context, info Info, req any, next Next) (any, error)

type registration struct {
	info   Info
	handle func(ctx context.Context, req any) (any, error)
}

// Mediator holds registered handlers, pre-processors and behaviors.
type Mediator struct {
	mu        sync.RWMutex
	handlers  map[reflect.Type]registration
	pre       map[reflect.Type][]func(ctx context.Context, req any) error
	behaviors []Behavior
}

// New creates a mediator. Behaviors run in the given order, the first one
// outermost.
func New(behaviors ...Behavior) *Mediator {
	return &Mediator{
		handlers:  make(map[reflect.Type]registration),
		pre:       make(map[reflect.Type][]func(ctx context.Context, req any) error),
		behaviors: behaviors,
	}
}

// RegisterCommand registers h as the handler for command type Req.
func RegisterCommand[Req any, Resp any](m *Mediator, h Handler[Req, Resp]) error {
	return register(m, KindCommand, h)
}

// RegisterQuery registers h as the handler for query type Req.
func RegisterQuery[Req any, Resp any](m *Mediator, h Handler[Req, Resp]) error {
	return register(m, KindQuery, h)
}

func register[Req any, Resp any](m *Mediator, kind Kind, h Handler[Req, Resp]) error {
	t := reflect.TypeFor[Req]()

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.handlers[t]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, t.Name())
	}
	m.handlers[t] = registration{
		info: Info{Name: t.Name(), Kind: kind},
		handle: func(ctx context.Context, req any) (any, error) {
			return h.Handle(ctx, req.(Req))
		},
	}
	return nil
}

// AddPreProcessor appends p to the pre-processors of request type Req.
func AddPreProcessor[Req any](m *Mediator, p PreProcessor[Req]) {
	t := reflect.TypeFor[Req]()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pre[t] = append(m.pre[t], func(ctx context.Context, req any) error {
		return p.Process(ctx, req.(Req))
	})
}

// Send dispatches req to its handler.
func Send[Req any, Resp any](ctx context.Context, m *Mediator, req Req) (Resp, error) {
	var zero Resp
	t := reflect.TypeFor[Req]()

	m.mu.RLock()
	reg, ok := m.handlers[t]
	pre := m.pre[t]
	behaviors := m.behaviors
	m.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("%w for %s", ErrNoHandler, t.Name())
	}

	next := func(ctx context.Context) (any, error) {
		for _, p := range pre {
			if err := p(ctx, req); err != nil {
				return nil, err
			}
		}
		return reg.handle(ctx, req)
	}
	for i := len(behaviors) - 1; i >= 0; i-- {
		b, inner := behaviors[i], next
		next = func(ctx context.Context) (any, error) {
			return b(ctx, reg.info, req, inner)
		}
	}

	out, err := next(ctx)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	resp, ok := out.(Resp)
	if !ok {
		return zero, fmt.Errorf("mediator: %s returned %T", reg.info.Name, out)
	}
	return resp, nil
}

// Validate runs the pre-processors registered for req without calling its
// handler. Behaviors do not run.
func Validate[Req any](ctx context.Context, m *Mediator, req Req) error {
	t := reflect.TypeFor[Req]()

	m.mu.RLock()
	_, ok := m.handlers[t]
	pre := m.pre[t]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w for %s", ErrNoHandler, t.Name())
	}
	for _, p := range pre {
		if err := p(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// Registered returns the names of all registered request types, sorted.
func (m *Mediator) Registered() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.handlers))
	for _, r := range m.handlers {
		names = append(names, r.info.Name)
	}
	sort.Strings(names)
	return names
}
