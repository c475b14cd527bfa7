package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultMessageLimit = 50
	MaxMessageLimit     = 200
	SearchLimit         = 10
)

const (
	handleRules    = "required,min=3,max=10,handle"
	addressRules   = "required,max=254,email"
	passwordRules  = "required,min=8,max=128,password"
	bioRules       = "max=250"
	groupNameRules = "required,min=2,max=100"
	groupDescRules = "max=500"
	messageRules   = "required,max=1000"
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return passwordShape(fl.Field().String())
	})
	return v
}

// passwordShape checks the character classes; length is a separate rule.
func passwordShape(s string) bool {
	var upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}

// checkStruct validates v against its struct tags and reports the first
// failing field.
func checkStruct(v any) error {
	return firstFailure("", validate.Struct(v))
}

// checkField validates a single value under the given field name.
func checkField(field string, value any, rules string) error {
	return firstFailure(field, validate.Var(value, rules))
}

func firstFailure(field string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: field, Reason: err.Error()}
	}
	fe := verrs[0]
	if field == "" {
		field = fe.Field()
	}
	return &ValidationError{Field: field, Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid e-mail address"
	case "handle":
		return "may only contain letters, digits, '.', '_' and '-'"
	case "password":
		return "must contain an upper-case letter and a digit"
	default:
		return "is invalid"
	}
}

func normalizeAddress(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// clampLimit applies the recent-message window rules.
func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultMessageLimit
	case n > MaxMessageLimit:
		return MaxMessageLimit
	default:
		return n
	}
}
