package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "category %q is broken", "props")

	if GetCode(err) != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if !Is(err, ErrCodeInvalidConfig) {
		t.Error("Is() should match the code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() should not match a different code")
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(ErrCodeInstantiate, cause, "spawn %q", "crate")

	if !Is(err, ErrCodeInstantiate) {
		t.Error("wrapped error should carry the code")
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to the cause")
	}
}

func TestGetCodeOnForeignError(t *testing.T) {
	if code := GetCode(fmt.Errorf("plain")); code != "" {
		t.Errorf("foreign errors should have no code, got %v", code)
	}
	if code := GetCode(nil); code != "" {
		t.Errorf("nil error should have empty code, got %v", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeNoRegion, fmt.Errorf("low-level detail"), "no floor region discovered")
	if got := UserMessage(err); got != "no floor region discovered" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
