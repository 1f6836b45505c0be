package result

// Result is the uniform success-or-failure envelope returned by every command
// and query handler. Business failures (not found, already exists, invalid
// state) live here as data; only infrastructure faults travel as Go errors.
//
// Fields are unexported so a Result can only be built through the factory
// functions and never mutated afterwards. A failed Result carries no value.
type Result[T any] struct {
	success bool
	value   T
	message string
	errs    []string
}

// Success returns a successful Result carrying value and no message.
func Success[T any](value T) Result[T] {
	return Result[T]{success: true, value: value}
}

// SuccessWithMessage returns a successful Result carrying value and a
// human-readable confirmation message.
func SuccessWithMessage[T any](value T, message string) Result[T] {
	return Result[T]{success: true, value: value, message: message}
}

// Failure returns a failed Result with a single descriptive reason.
func Failure[T any](message string) Result[T] {
	return Result[T]{message: message, errs: []string{message}}
}

// Failures returns a failed Result carrying one entry per violated rule,
// preserving order. Used by the validation pipeline stage.
func Failures[T any](errs []string) Result[T] {
	cp := make([]string, len(errs))
	copy(cp, errs)
	var message string
	if len(cp) > 0 {
		message = cp[0]
	}
	return Result[T]{message: message, errs: cp}
}

func (r Result[T]) IsSuccess() bool { return r.success }

func (r Result[T]) IsFailure() bool { return !r.success }

// Value returns the payload and whether it is present. The payload is present
// exactly when the Result is successful.
func (r Result[T]) Value() (T, bool) {
	if !r.success {
		var zero T
		return zero, false
	}
	return r.value, true
}

func (r Result[T]) Message() string { return r.message }

// Errors returns a copy of the failure reasons. Empty on success.
func (r Result[T]) Errors() []string {
	if len(r.errs) == 0 {
		return nil
	}
	cp := make([]string, len(r.errs))
	copy(cp, r.errs)
	return cp
}

// Rejection is the payload-type-agnostic failure a pipeline behavior returns
// when it short-circuits before the handler runs. The mediator converts it to
// a typed failed Result for the caller.
type Rejection struct {
	Errors []string
}
