// Package common defines sentinel errors and small helpers shared by the
// server and client layers of gophauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrUserAlreadyExists  = errors.New("User already exists")
	ErrorValidationFailed = errors.New("validation failed")
)
