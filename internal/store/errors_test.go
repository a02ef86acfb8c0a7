package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidation(t *testing.T) {
	t.Parallel()

	ve := &ValidationError{Field: "title", Reason: "is required"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct validation error", ve, true},
		{"wrapped validation error", fmt.Errorf("create: %w", ve), true},
		{"store error", &StoreError{Op: "create task", Err: errors.New("boom")}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidation(tt.err); got != tt.want {
				t.Errorf("IsValidation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	se := storeErr("update habit", cause)

	if !errors.Is(se, cause) {
		t.Error("Expected store error to unwrap to its cause")
	}
	if !IsStoreError(fmt.Errorf("outer: %w", se)) {
		t.Error("Expected IsStoreError to match a wrapped store error")
	}

	want := "store update habit failed: connection reset"
	if se.Error() != want {
		t.Errorf("Error() = %q, want %q", se.Error(), want)
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	ve := &ValidationError{Field: "status", Reason: "is required"}
	want := "validation failed: status is required"
	if ve.Error() != want {
		t.Errorf("Error() = %q, want %q", ve.Error(), want)
	}
}
