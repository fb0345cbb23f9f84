package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeBranchNotFound, "unknown branch: %s", "develop")

	if err.Code != ErrCodeBranchNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeBranchNotFound)
	}

	if err.Message != "unknown branch: develop" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown branch: develop")
	}

	expected := "BRANCH_NOT_FOUND: unknown branch: develop"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("toml: line 3: expected '='")
	err := Wrap(ErrCodeInvalidScript, cause, "decode script")

	if err.Code != ErrCodeInvalidScript {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidScript)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidMergeTarget, "test"),
			code:     ErrCodeInvalidMergeTarget,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidMergeTarget, "test"),
			code:     ErrCodeNoHead,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidScript, New(ErrCodeBranchNotFound, "inner"), "outer"),
			code:     ErrCodeInvalidScript,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeNoHead, "test"), ErrCodeNoHead},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
		{
			name:     "wrapped chain",
			err:      Wrap(ErrCodeInvalidScript, New(ErrCodeBranchNotFound, "unknown branch \"x\""), "step 2"),
			expected: "step 2: unknown branch \"x\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeDiagramNotFound, "x"), 404},
		{New(ErrCodeInvalidMergeTarget, "x"), 400},
		{New(ErrCodeUnsupported, "x"), 501},
		{errors.New("boom"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
