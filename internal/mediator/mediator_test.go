package mediator_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type pingQuery struct{ Name string }
type echoCommand struct{ Text string }

type namedBehavior struct {
	name  string
	trace *[]string
	// reject short-circuits without calling next.
	reject bool
	calls  int
}

func (b *namedBehavior) Name() string { return b.name }

func (b *namedBehavior) Handle(ctx context.Context, req any, next mediator.Next) (any, error) {
	b.calls++
	*b.trace = append(*b.trace, b.name+":before")
	if b.reject {
		return result.Rejection{Errors: []string{b.name + " rejected"}}, nil
	}
	out, err := next(ctx)
	*b.trace = append(*b.trace, b.name+":after")
	return out, err
}

func TestSendRoutesToRegisteredHandler(t *testing.T) {
	m := mediator.New(logger.NewNop())
	mediator.Register(m, mediator.HandlerFunc[pingQuery, string](func(ctx context.Context, q pingQuery) (result.Result[string], error) {
		return result.Success("pong " + q.Name), nil
	}))
	mediator.Register(m, mediator.HandlerFunc[echoCommand, string](func(ctx context.Context, c echoCommand) (result.Result[string], error) {
		return result.Success(c.Text), nil
	}))

	res, err := mediator.Send[string](context.Background(), m, pingQuery{Name: "alex"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if v, ok := res.Value(); !ok || v != "pong alex" {
		t.Fatalf("expected ping handler, got %q", v)
	}

	res, err = mediator.Send[string](context.Background(), m, echoCommand{Text: "hello"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if v, _ := res.Value(); v != "hello" {
		t.Fatalf("expected echo handler, got %q", v)
	}
}

func TestSendPassesFailureThrough(t *testing.T) {
	m := mediator.New(logger.NewNop())
	mediator.Register(m, mediator.HandlerFunc[pingQuery, string](func(ctx context.Context, q pingQuery) (result.Result[string], error) {
		return result.Failure[string]("Ping not found"), nil
	}))

	res, err := mediator.Send[string](context.Background(), m, pingQuery{})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.IsSuccess() || res.Message() != "Ping not found" {
		t.Fatalf("expected failure to pass through unchanged, got %v", res)
	}
}

func TestSendPropagatesHandlerError(t *testing.T) {
	boom := errors.New("connection reset")
	m := mediator.New(logger.NewNop())
	mediator.Register(m, mediator.HandlerFunc[pingQuery, string](func(ctx context.Context, q pingQuery) (result.Result[string], error) {
		return result.Result[string]{}, boom
	}))

	if _, err := mediator.Send[string](context.Background(), m, pingQuery{}); !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestSendUnregisteredRequest(t *testing.T) {
	m := mediator.New(logger.NewNop())

	_, err := mediator.Send[string](context.Background(), m, pingQuery{})
	if err == nil || !strings.Contains(err.Error(), "no handler registered") {
		t.Fatalf("expected missing-registration error, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	m := mediator.New(logger.NewNop())
	h := mediator.HandlerFunc[pingQuery, string](func(ctx context.Context, q pingQuery) (result.Result[string], error) {
		return result.Success("pong"), nil
	})
	mediator.Register(m, h)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	mediator.Register(m, h)
}

func TestBehaviorsRunInOrder(t *testing.T) {
	var trace []string
	outer := &namedBehavior{name: "outer", trace: &trace}
	inner := &namedBehavior{name: "inner", trace: &trace}

	m := mediator.New(logger.NewNop(), outer, inner)
	mediator.Register(m, mediator.HandlerFunc[pingQuery, string](func(ctx context.Context, q pingQuery) (result.Result[string], error) {
		trace = append(trace, "handler")
		return result.Success("pong"), nil
	}))

	if _, err := mediator.Send[string](context.Background(), m, pingQuery{}); err != nil {
		t.Fatalf("send: %v", err)
	}
	want := []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}
	if fmt.Sprint(trace) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, trace)
	}
}

func TestBehaviorShortCircuitSkipsHandler(t *testing.T) {
	var trace []string
	gate := &namedBehavior{name: "gate", trace: &trace, reject: true}
	after := &namedBehavior{name: "after", trace: &trace}

	handlerCalls := 0
	m := mediator.New(logger.NewNop(), gate, after)
	mediator.Register(m, mediator.HandlerFunc[pingQuery, string](func(ctx context.Context, q pingQuery) (result.Result[string], error) {
		handlerCalls++
		return result.Success("pong"), nil
	}))

	res, err := mediator.Send[string](context.Background(), m, pingQuery{})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if handlerCalls != 0 {
		t.Fatalf("handler must not run after a short-circuit")
	}
	if after.calls != 0 {
		t.Fatalf("later behaviors must not run after a short-circuit")
	}
	if res.IsSuccess() {
		t.Fatalf("expected rejection to surface as failed result")
	}
	if got := res.Errors(); len(got) != 1 || got[0] != "gate rejected" {
		t.Fatalf("expected rejection messages, got %v", got)
	}
}

func TestSendHonorsCancelledContext(t *testing.T) {
	m := mediator.New(logger.NewNop())
	handlerCalls := 0
	mediator.Register(m, mediator.HandlerFunc[pingQuery, string](func(ctx context.Context, q pingQuery) (result.Result[string], error) {
		handlerCalls++
		return result.Success("pong"), nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mediator.Send[string](ctx, m, pingQuery{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if handlerCalls != 0 {
		t.Fatalf("handler must not run once ctx is cancelled")
	}
}

func TestSendRejectsNilRequest(t *testing.T) {
	m := mediator.New(logger.NewNop())
	if _, err := mediator.Send[string](context.Background(), m, nil); err == nil {
		t.Fatalf("expected error for nil request")
	}
}
