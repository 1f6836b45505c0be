package result

import "testing"

func TestSuccessCarriesValue(t *testing.T) {
	r := Success(42)
	if !r.IsSuccess() || r.IsFailure() {
		t.Fatalf("expected success, got failure")
	}
	v, ok := r.Value()
	if !ok || v != 42 {
		t.Fatalf("Value: got (%v, %v), want (42, true)", v, ok)
	}
	if len(r.Errors()) != 0 {
		t.Fatalf("success must carry no errors, got %v", r.Errors())
	}
	if r.Message() != "" {
		t.Fatalf("default message must be empty, got %q", r.Message())
	}
}

func TestSuccessWithMessage(t *testing.T) {
	r := SuccessWithMessage("payload", "Logged out successfully")
	if !r.IsSuccess() {
		t.Fatalf("expected success")
	}
	if r.Message() != "Logged out successfully" {
		t.Fatalf("Message: got %q", r.Message())
	}
}

func TestFailureHasNoValue(t *testing.T) {
	r := Failure[string]("User not found")
	if r.IsSuccess() {
		t.Fatalf("expected failure")
	}
	if v, ok := r.Value(); ok || v != "" {
		t.Fatalf("failure must carry no value, got (%q, %v)", v, ok)
	}
	errs := r.Errors()
	if len(errs) != 1 || errs[0] != "User not found" {
		t.Fatalf("Errors: got %v", errs)
	}
	if r.Message() != "User not found" {
		t.Fatalf("Message: got %q", r.Message())
	}
}

func TestFailuresPreservesOrderAndCopies(t *testing.T) {
	src := []string{"first", "second", "third"}
	r := Failures[int](src)
	src[0] = "mutated"
	errs := r.Errors()
	if len(errs) != 3 || errs[0] != "first" || errs[1] != "second" || errs[2] != "third" {
		t.Fatalf("Errors: got %v", errs)
	}
	errs[1] = "mutated"
	if r.Errors()[1] != "second" {
		t.Fatalf("Errors must return a copy")
	}
}
