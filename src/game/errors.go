package game

import (
	"errors"
	"fmt"
)

// Kind classifies failures for the HTTP layer
type Kind int

const (
	// InternalError covers judge failures, uncoercible judgments and anything unexpected
	InternalError Kind = iota
	// InvalidRequest is a user-correctable problem with the submission
	InvalidRequest
	// NotFound means the selected target has no record
	NotFound
)

func (k Kind) String() string {
	switch k {
	case InvalidRequest:
		return "invalid_request"
	case NotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}

// Error is a classified game failure
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidRequest(msg string) error {
	return &Error{Kind: InvalidRequest, Msg: msg}
}

func notFound(msg string) error {
	return &Error{Kind: NotFound, Msg: msg}
}

func internal(err error) error {
	return &Error{Kind: InternalError, Err: err}
}

// KindOf returns the kind of err, treating unclassified errors as internal
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return InternalError
}
