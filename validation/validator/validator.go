package validator

import (
	"strings"

	"github.com/askdesk/askdesk-go/ecode"

	pv "github.com/go-playground/validator/v10"
)

var validate = pv.New(pv.WithRequiredStructEnabled())

// Struct validates a struct against its validate tags, returning an
// ecode.Validation error naming the offending fields
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(pv.ValidationErrors)
	if !ok {
		return ecode.Wrap(ecode.Validation, "invalid input", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return ecode.Newf(ecode.Validation, "invalid fields: %s", strings.Join(fields, ", "))
}

// Var validates a single value against a rule expression
func Var(value any, rule string) error {
	if err := validate.Var(value, rule); err != nil {
		return ecode.Wrap(ecode.Validation, "invalid value", err)
	}
	return nil
}
