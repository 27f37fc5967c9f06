package core

import (
	"errors"
	"testing"
)

func TestCartErrorIs(t *testing.T) {
	if !errors.Is(ErrX76Nack, ErrX76Nack) {
		t.Fatal("errors.Is should match a CartError against itself")
	}
	if errors.Is(ErrX76Nack, ErrX76PollFail) {
		t.Fatal("errors.Is should not match distinct CartError sentinels")
	}
}

func TestZs01ErrorWithCodeUnwraps(t *testing.T) {
	err := &Zs01ErrorWithCode{Code: Zs01SecurityError1}
	if !errors.Is(err, ErrZs01Error) {
		t.Fatal("Zs01ErrorWithCode should unwrap to ErrZs01Error")
	}
	if err.Error() != ErrZs01Error.Error() {
		t.Fatalf("Error() = %q, want %q", err.Error(), ErrZs01Error.Error())
	}
}
