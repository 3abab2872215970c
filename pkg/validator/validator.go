package validator

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MessageTag is the struct tag holding the client facing message of a field.
const MessageTag = "msg"

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator.
// It returns a new DefaultValidator and an error if the validator registration fails.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("finite", validateFinite); err != nil {
		return nil, fmt.Errorf("register finite validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

// MustNewDefaultValidator is like NewDefaultValidator but panics on registration failure.
func MustNewDefaultValidator() *DefaultValidator {
	v, err := NewDefaultValidator()
	if err != nil {
		panic(err)
	}
	return v
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

// FieldMessage returns the message declared with the msg tag on the field
// that failed, walking nested structs and slices of s. When the field has no
// msg tag a generic message derived from the failed rule is returned.
func FieldMessage(s any, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) < 2 {
		return fieldFallback(fe)
	}

	for i, part := range parts[1:] {
		t = indirectType(t)
		if t.Kind() != reflect.Struct {
			return fieldFallback(fe)
		}

		if idx := strings.IndexByte(part, '['); idx >= 0 {
			part = part[:idx]
		}

		f, ok := t.FieldByName(part)
		if !ok {
			return fieldFallback(fe)
		}

		if i == len(parts)-2 {
			if msg := f.Tag.Get(MessageTag); msg != "" {
				return msg
			}
			return fieldFallback(fe)
		}

		t = f.Type
	}

	return fieldFallback(fe)
}

func indirectType(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			return t
		}
	}
}

func fieldFallback(fe validator.FieldError) string {
	return fmt.Sprintf("%s %s.", fe.Field(), ValidationErrorMessage(fe))
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "ne":
		return fmt.Sprintf("must not be %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "finite":
		return "must be a finite number"
	default:
		return "is invalid"
	}
}

func validateFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
