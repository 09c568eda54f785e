// Package validation checks request structs declared with `validate` tags and
// reports every violated rule at once, one entry per field, in field order.
//
// Besides the go-playground/validator tags, two struct tags are honoured:
//
//	msg:"..."       message reported when the field fails any rule
//	redact:"true"   never echo the submitted value back (passwords)
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// LocationBody marks errors found in the request body.
const LocationBody = "body"

// FieldError describes one violated rule.
type FieldError struct {
	Value    *string `json:"value,omitempty"`
	Msg      string  `json:"msg"`
	Param    string  `json:"param,omitempty"`
	Location string  `json:"location"`
}

// Error is returned when at least one rule fails. It matches
// common.ErrorValidationFailed with errors.Is.
type Error struct {
	Errors []FieldError `json:"errors"`
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *Error) Is(target error) bool {
	return target == common.ErrorValidationFailed
}

// NewBodyError builds an Error with a single body-level message.
func NewBodyError(msg string) *Error {
	return &Error{Errors: []FieldError{{Msg: msg, Location: LocationBody}}}
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s (a struct or pointer to struct). It returns nil, an
// *Error listing the violations, or a plain error when s cannot be validated.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	t := reflect.Indirect(reflect.ValueOf(s)).Type()

	out := &Error{Errors: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		sf, _ := t.FieldByName(fe.StructField())

		entry := FieldError{
			Msg:      sf.Tag.Get("msg"),
			Param:    fe.Field(),
			Location: LocationBody,
		}
		if entry.Msg == "" {
			entry.Msg = fmt.Sprintf("Invalid value for %s", fe.Field())
		}
		if sf.Tag.Get("redact") != "true" {
			value := fmt.Sprint(fe.Value())
			entry.Value = &value
		}
		out.Errors = append(out.Errors, entry)
	}

	return out
}
