package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
	"github.com/matchpointhq/matchpoint-backend/internal/validation"
)

type createAccount struct {
	Email    string
	Password string
}

func emailValidator() validation.ValidatorFunc[createAccount] {
	return func(req createAccount) []validation.Violation {
		if req.Email == "" {
			return []validation.Violation{{Field: "email", Message: "email is required"}}
		}
		return nil
	}
}

func passwordValidator() validation.ValidatorFunc[createAccount] {
	return func(req createAccount) []validation.Violation {
		if req.Password == "" {
			return []validation.Violation{{Field: "password", Message: "password is required"}}
		}
		return nil
	}
}

func TestRegistryRunsAllValidatorsInOrder(t *testing.T) {
	r := validation.NewRegistry()
	validation.Register(r, emailValidator())
	validation.Register(r, passwordValidator())

	violations := r.Validate(createAccount{})
	if len(violations) != 2 {
		t.Fatalf("expected both validators to run, got %v", violations)
	}
	if violations[0].Field != "email" || violations[1].Field != "password" {
		t.Fatalf("violations must keep registration order, got %v", violations)
	}
}

func TestRegistryUnknownTypeHasNoViolations(t *testing.T) {
	r := validation.NewRegistry()
	if got := r.Validate(struct{ X int }{}); len(got) != 0 {
		t.Fatalf("expected no violations for unregistered type, got %v", got)
	}
}

func TestViolationString(t *testing.T) {
	v := validation.Violation{Field: "email", Message: "email is required"}
	if v.String() != "email: email is required" {
		t.Fatalf("unexpected rendering %q", v.String())
	}
	bare := validation.Violation{Message: "request is malformed"}
	if bare.String() != "request is malformed" {
		t.Fatalf("unexpected rendering %q", bare.String())
	}
}

func TestBehaviorShortCircuitsInvalidRequest(t *testing.T) {
	r := validation.NewRegistry()
	validation.Register(r, emailValidator())
	validation.Register(r, passwordValidator())

	m := mediator.New(logger.NewNop(), validation.NewBehavior(r, logger.NewNop()))
	handlerCalls := 0
	mediator.Register(m, mediator.HandlerFunc[createAccount, string](func(ctx context.Context, req createAccount) (result.Result[string], error) {
		handlerCalls++
		return result.Success("created"), nil
	}))

	res, err := mediator.Send[string](context.Background(), m, createAccount{})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if handlerCalls != 0 {
		t.Fatalf("handler must not see an invalid request")
	}
	if res.IsSuccess() {
		t.Fatalf("expected failed result")
	}
	msgs := res.Errors()
	if len(msgs) != 2 || msgs[0] != "email: email is required" || msgs[1] != "password: password is required" {
		t.Fatalf("expected complete violation set, got %v", msgs)
	}
}

func TestBehaviorForwardsValidRequest(t *testing.T) {
	r := validation.NewRegistry()
	validation.Register(r, emailValidator())

	m := mediator.New(logger.NewNop(), validation.NewBehavior(r, logger.NewNop()))
	mediator.Register(m, mediator.HandlerFunc[createAccount, string](func(ctx context.Context, req createAccount) (result.Result[string], error) {
		return result.Success("created"), nil
	}))

	res, err := mediator.Send[string](context.Background(), m, createAccount{Email: "a@b.co", Password: "pw"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if v, ok := res.Value(); !ok || v != "created" {
		t.Fatalf("expected handler outcome unchanged, got %v", res)
	}
}

func TestBehaviorHonorsCancelledContext(t *testing.T) {
	r := validation.NewRegistry()
	m := mediator.New(logger.NewNop(), validation.NewBehavior(r, logger.NewNop()))
	mediator.Register(m, mediator.HandlerFunc[createAccount, string](func(ctx context.Context, req createAccount) (result.Result[string], error) {
		return result.Success("created"), nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := mediator.Send[string](ctx, m, createAccount{Email: "a@b.co"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
