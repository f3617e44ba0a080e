package validate

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/notekeep-api/internal/domain"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

func init() {
	// password: at least 8 characters, at least one letter, at least one digit.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) < 8 {
			return false
		}
		var hasLetter, hasDigit bool
		for _, r := range s {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasLetter && hasDigit
	})
}

// Struct validates the given struct using its validate tags. Only the first
// violated rule is surfaced, wrapped in domain.ErrValidation.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	return fmt.Errorf("%s: %w", message(ve[0]), domain.ErrValidation)
}

// Var validates a single value against a tag expression, with the same
// first-violation, domain.ErrValidation-wrapped behavior as Struct.
func Var(value interface{}, tag string) error {
	err := v.Var(value, tag)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	return fmt.Errorf("%s: %w", message(ve[0]), domain.ErrValidation)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "please enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "password":
		return "password must be at least 8 characters long and contain at least one letter and one number"
	case "datetime":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", fe.Field())
	default:
		return fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag())
	}
}
