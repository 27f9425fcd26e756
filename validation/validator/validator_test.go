package validator

import (
	"testing"

	"github.com/askdesk/askdesk-go/ecode"
)

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func TestStruct(t *testing.T) {
	if err := Struct(&loginInput{Username: "alice", Password: "secret"}); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	err := Struct(&loginInput{Username: "alice"})
	if err == nil {
		t.Fatal("missing password accepted")
	}
	if !ecode.Is(err, ecode.Validation) {
		t.Errorf("error kind = %q, want validation", ecode.KindOf(err))
	}
}

func TestVar(t *testing.T) {
	if err := Var("", "required"); err == nil {
		t.Error("empty required value accepted")
	}
	if err := Var("x", "required"); err != nil {
		t.Errorf("non-empty value rejected: %v", err)
	}
}
