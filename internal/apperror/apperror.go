// Package apperror classifies the failures the dashboard distinguishes:
// validation, authentication, authorization, not-found and network errors.
package apperror

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind labels an error category.
type Kind int

// Error categories, in the order they are usually checked.
const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindNetwork
)

// Error carries a category alongside the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a categorized error without a cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds a categorized error around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the category of err, or KindUnknown when err carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsAuthorization reports whether err represents a rejected credential on an
// authenticated call. Consumers must force a logout when it does.
func IsAuthorization(err error) bool {
	return KindOf(err) == KindAuthorization
}

// IsValidation reports whether err was raised before any network call.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsNotFound reports whether the referenced record no longer exists remotely.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// FieldErrors flattens validator errors into field → message pairs suitable
// for inline form display.
func FieldErrors(err error) []map[string]string {
	errList := make([]map[string]string, 0)

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		for _, e := range validationErr {
			msg := fmt.Sprintf("%s is invalid", e.Field())
			switch e.Tag() {
			case "required":
				msg = fmt.Sprintf("%s is required", e.Field())
			case "gte":
				msg = fmt.Sprintf("%s must not be negative", e.Field())
			case "oneof":
				msg = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
			}
			errList = append(errList, map[string]string{e.Field(): msg})
		}
	}
	return errList
}
