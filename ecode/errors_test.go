package ecode

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(Unauthorized, "rejected")
	if KindOf(err) != Unauthorized {
		t.Errorf("KindOf = %q, want unauthorized", KindOf(err))
	}
	wrapped := fmt.Errorf("call failed: %w", err)
	if !Is(wrapped, Unauthorized) {
		t.Error("kind must survive wrapping")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("plain errors carry no kind")
	}
}

func TestFromTransport(t *testing.T) {
	if KindOf(FromTransport(context.DeadlineExceeded)) != Timeout {
		t.Error("deadline exceeded must map to timeout")
	}
	if KindOf(FromTransport(errors.New("connection refused"))) != Network {
		t.Error("other transport failures must map to network")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(Network, "dial tcp: refused")); got != networkMsg {
		t.Errorf("network message = %q", got)
	}
	if got := UserMessage(New(Timeout, "deadline")); got != timeoutMsg {
		t.Errorf("timeout message = %q", got)
	}
	if got := UserMessage(New(Unauthorized, "401")); got != unauthorizedMsg {
		t.Errorf("unauthorized message = %q", got)
	}
	if got := UserMessage(New(Validation, "ไม่พบผู้ใช้")); got != "ไม่พบผู้ใช้" {
		t.Errorf("validation message = %q, want the carried message", got)
	}
	if got := UserMessage(errors.New("plain")); got != unknownMsg {
		t.Errorf("plain error message = %q, want generic fallback", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(Store, "write failed", cause)
	if !errors.Is(err, cause) {
		t.Error("cause must be reachable through the chain")
	}
}
