// Package validation checks request shapes with go-playground/validator and
// reports the first failure as a domain error.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	dErrors "skillforge/pkg/domain-errors"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate validates a struct and returns a domain error for the first
// failing field. Address, email and skills failures keep their own codes so
// callers can render per-field guidance.
func Validate(req any) error {
	err := defaultValidator.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "invalid request body")
	}
	fe := validationErrs[0]
	return dErrors.New(codeFor(fe), ErrorMessage(fe))
}

func codeFor(fe validator.FieldError) dErrors.Code {
	switch fe.ActualTag() {
	case "eth_addr":
		return dErrors.CodeInvalidAddress
	case "email":
		return dErrors.CodeInvalidEmail
	}
	if fe.StructField() == "Skills" && fe.ActualTag() == "min" {
		return dErrors.CodeEmptySkills
	}
	return dErrors.CodeValidation
}

// ErrorMessage converts a field error into a human-readable message.
func ErrorMessage(fe validator.FieldError) string {
	fieldName := fe.Field()
	if fieldName == "" {
		fieldName = fe.StructField()
	}
	field := toSnakeCase(fieldName)

	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "eth_addr":
		return fmt.Sprintf("%s must be a valid Ethereum address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "dive":
		return fmt.Sprintf("%s is invalid", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
