package client

import (
	"errors"
	"strings"
)

var (
	ErrServer      = errors.New("server error")
	ErrUnavailable = errors.New("server unavailable")
)

// RejectedError carries the messages of a 4xx response.
type RejectedError struct {
	Status   int
	Messages []string
}

func (e *RejectedError) Error() string {
	return "registration rejected: " + strings.Join(e.Messages, "; ")
}
