package mediator

import (
	"context"
	"fmt"
	"reflect"

	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

// Handler executes the business logic for exactly one command or query type.
// Business failures come back inside the Result; a non-nil error is an
// infrastructure fault and propagates out of Send untouched.
type Handler[TReq any, TRes any] interface {
	Handle(ctx context.Context, req TReq) (result.Result[TRes], error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc[TReq any, TRes any] func(ctx context.Context, req TReq) (result.Result[TRes], error)

func (f HandlerFunc[TReq, TRes]) Handle(ctx context.Context, req TReq) (result.Result[TRes], error) {
	return f(ctx, req)
}

// Next invokes the remainder of the pipeline: the behaviors registered after
// the current one, then the handler itself.
type Next func(ctx context.Context) (any, error)

// Behavior is a pipeline stage wrapping handler execution. It may inspect the
// request, call next, short-circuit by returning a result.Rejection without
// calling next, or post-process the outcome next returned. Behaviors must
// forward ctx into next so cancellation reaches every stage.
type Behavior interface {
	Name() string
	Handle(ctx context.Context, req any, next Next) (any, error)
}

type invoker func(ctx context.Context, req any) (any, error)

// Mediator routes a typed request to its single registered handler through the
// ordered behavior chain. The registry is populated during startup wiring and
// read-only afterwards, so Send is safe for concurrent use.
type Mediator struct {
	log       *logger.Logger
	behaviors []Behavior
	handlers  map[reflect.Type]invoker
}

// New builds a Mediator with behaviors in execution order. The validation
// behavior is expected first so no handler ever observes an invalid request.
func New(baseLog *logger.Logger, behaviors ...Behavior) *Mediator {
	return &Mediator{
		log:       baseLog.With("component", "Mediator"),
		behaviors: behaviors,
		handlers:  make(map[reflect.Type]invoker),
	}
}

// Register binds a handler to its request type. Registering two handlers for
// the same request type is a wiring bug, so it panics at startup rather than
// surfacing per-request.
func Register[TReq any, TRes any](m *Mediator, h Handler[TReq, TRes]) {
	t := reflect.TypeOf((*TReq)(nil)).Elem()
	if _, exists := m.handlers[t]; exists {
		panic(fmt.Sprintf("mediator: handler already registered for %s", t))
	}
	m.handlers[t] = func(ctx context.Context, req any) (any, error) {
		return h.Handle(ctx, req.(TReq))
	}
}

// Send dispatches req through the behavior chain to its handler and returns
// the handler's Result unchanged. A missing registration or an outcome of an
// unexpected type is a configuration fault; both are returned as errors, never
// as a failed Result.
func Send[TRes any](ctx context.Context, m *Mediator, req any) (result.Result[TRes], error) {
	if req == nil {
		return result.Result[TRes]{}, fmt.Errorf("mediator: nil request")
	}
	t := reflect.TypeOf(req)
	inv, ok := m.handlers[t]
	if !ok {
		return result.Result[TRes]{}, fmt.Errorf("mediator: no handler registered for %s", t)
	}

	call := func(ctx context.Context) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return inv(ctx, req)
	}
	for i := len(m.behaviors) - 1; i >= 0; i-- {
		b := m.behaviors[i]
		next := call
		call = func(ctx context.Context) (any, error) {
			return b.Handle(ctx, req, next)
		}
	}

	out, err := call(ctx)
	if err != nil {
		return result.Result[TRes]{}, err
	}
	switch v := out.(type) {
	case result.Result[TRes]:
		return v, nil
	case result.Rejection:
		return result.Failures[TRes](v.Errors), nil
	default:
		return result.Result[TRes]{}, fmt.Errorf("mediator: handler for %s returned unexpected outcome %T", t, out)
	}
}
