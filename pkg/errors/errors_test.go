package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeUnknownNode, "undeclared node: %s", "Y")
	want := "UNKNOWN_NODE: undeclared node: Y"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write artifact")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if got := err.Error(); got != "INTERNAL_ERROR: write artifact: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeCyclicGraph, "cycle through node 3"))

	if !Is(err, ErrCodeCyclicGraph) {
		t.Error("Is() failed to match code through wrapping")
	}
	if Is(err, ErrCodeEmptyInput) {
		t.Error("Is() matched wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeCyclicGraph) {
		t.Error("Is() matched a non-structured error")
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeMalformedSpec, "cannot parse line %q", "X (A)")

	if got := GetCode(err); got != ErrCodeMalformedSpec {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeMalformedSpec)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := UserMessage(err); got != `cannot parse line "X (A)"` {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestValidateNodeName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"FKH1", true},
		{"SWI4_alt", true},
		{"", false},
		{"A B", false},
		{"X~Y", false},
		{"A(", false},
		{"A:B", false},
	}
	for _, tt := range tests {
		err := ValidateNodeName(tt.name)
		if (err == nil) != tt.valid {
			t.Errorf("ValidateNodeName(%q) err = %v, want valid=%v", tt.name, err, tt.valid)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot", "svg", "png"}); err != nil {
		t.Errorf("ValidateFormats(valid) = %v", err)
	}
	if err := ValidateFormats([]string{"svg", "pdf"}); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats(pdf) = %v, want INVALID_FORMAT", err)
	}
}
