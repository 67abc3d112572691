package service

import (
	"errors"
	"fmt"
)

// Sentinel categories controllers use to pick a status code. The wrapped
// message is what reaches the client.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

func invalidInput(format string, args ...any) error {
	return &serviceError{kind: ErrInvalidInput, msg: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &serviceError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}
