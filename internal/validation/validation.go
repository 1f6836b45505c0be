package validation

import (
	"context"
	"reflect"

	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

// Violation is one broken input rule. Transient: produced by a validator,
// surfaced to the caller inside a failed Result, never persisted.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// Validator checks a request before it reaches business logic. Must be pure:
// no I/O, no mutation, no suspension. Several validators may target the same
// request type; all of them run.
type Validator[T any] interface {
	Validate(req T) []Violation
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc[T any] func(req T) []Violation

func (f ValidatorFunc[T]) Validate(req T) []Violation { return f(req) }

// Registry maps request types to their validators, preserving registration
// order. Built during startup wiring, read-only afterwards.
type Registry struct {
	validators map[reflect.Type][]func(req any) []Violation
}

func NewRegistry() *Registry {
	return &Registry{validators: make(map[reflect.Type][]func(req any) []Violation)}
}

// Register appends a validator for T. Order of registration is the order the
// validators run in and the order their violations surface in.
func Register[T any](r *Registry, v Validator[T]) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.validators[t] = append(r.validators[t], func(req any) []Violation {
		return v.Validate(req.(T))
	})
}

// Validate runs every validator registered for req's type and returns the
// combined violation list. All validators run even when an earlier one already
// found violations, so the caller sees the complete set.
func (r *Registry) Validate(req any) []Violation {
	var all []Violation
	for _, validate := range r.validators[reflect.TypeOf(req)] {
		all = append(all, validate(req)...)
	}
	return all
}

// Behavior is the pipeline stage running input validation ahead of every
// handler. On violations it short-circuits with a Rejection carrying one
// message per broken rule; otherwise it forwards to the next stage and returns
// its outcome unchanged.
type Behavior struct {
	registry *Registry
	log      *logger.Logger
}

func NewBehavior(registry *Registry, baseLog *logger.Logger) *Behavior {
	return &Behavior{
		registry: registry,
		log:      baseLog.With("behavior", "Validation"),
	}
}

func (b *Behavior) Name() string { return "validation" }

func (b *Behavior) Handle(ctx context.Context, req any, next mediator.Next) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	violations := b.registry.Validate(req)
	if len(violations) == 0 {
		return next(ctx)
	}
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.String()
	}
	b.log.Debug("request rejected", "request", reflect.TypeOf(req).String(), "violations", len(msgs))
	return result.Rejection{Errors: msgs}, nil
}
