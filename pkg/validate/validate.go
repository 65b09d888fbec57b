// Package validate wraps go-playground/validator and defines the validation
// error returned by ACTS commands and queries.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Error is a request that failed validation. It maps to HTTP 400.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf returns an *Error with a formatted message.
func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, an *Error.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			return lowerFirst(f.Name)
		})
	})
	return instance
}

// Struct validates v against its `validate` tags. All field failures are
// joined into a single *Error.
func Struct(v any) error {
	if err := get().Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return &Error{Message: strings.Join(msgs, "; ")}
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "excludesall":
		return fmt.Sprintf("%s must not contain any of %q", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
