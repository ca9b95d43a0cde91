package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single violated constraint, tagged with the JSON field it
// applies to.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated constraint of a request, in the
// order the fields are declared on the schema struct. The API error handler
// renders it as a 400 with the full details list.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// newFieldValidationError builds a single-field ValidationError.
func newFieldValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in error messages come from the json struct tags.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. It never mutates the input
// and collects every violated constraint rather than stopping at the first.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fieldError(fe))
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a field-tagged message.
func fieldError(fe validator.FieldError) FieldError {
	field := fe.Field()
	label := titleCase(field)

	var msg string
	switch fe.Tag() {
	case "required":
		msg = label + " is required"
	case "email":
		msg = "Invalid email format"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
	case "oneof":
		if field == "role" {
			msg = `Role must be either "user" or "admin"`
		} else {
			msg = fmt.Sprintf("%s must be one of: %s", label, fe.Param())
		}
	default:
		msg = fmt.Sprintf("%s failed validation (%s)", label, fe.Tag())
	}

	return FieldError{Field: field, Message: msg}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
