package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	ctx := map[string]interface{}{
		"path":     "manifests/bundle.yaml",
		"document": 2,
	}

	err := WrapWithContext(ErrCodeInvalidManifest, "manifest decode failed", cause, ctx)

	if err.Code != ErrCodeInvalidManifest {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidManifest, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["path"] != "manifests/bundle.yaml" {
		t.Errorf("expected path to be manifests/bundle.yaml")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{
			name:     "structured error",
			err:      New(ErrCodeUnavailable, "cluster unreachable"),
			expected: ErrCodeUnavailable,
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("run failed: %w", New(ErrCodeInvalidReference, "bad target")),
			expected: ErrCodeInvalidReference,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestGetContext(t *testing.T) {
	ctx := map[string]any{"bundle": "ca1"}
	err := NewWithContext(ErrCodeNotFound, "missing", ctx)

	got := GetContext(fmt.Errorf("outer: %w", err))
	if got == nil {
		t.Fatal("expected context from wrapped error")
	}
	if got["bundle"] != "ca1" {
		t.Errorf("expected bundle ca1, got %v", got["bundle"])
	}

	if GetContext(errors.New("plain")) != nil {
		t.Error("expected nil context for plain error")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeInvalidManifest,
		ErrCodeInvalidReference,
		ErrCodeTimeout,
		ErrCodeUnavailable,
		ErrCodeInternal,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
