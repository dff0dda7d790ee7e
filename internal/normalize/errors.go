package normalize

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a backend payload could not be normalized.
type ErrorKind string

const (
	NotJSON                  ErrorKind = "not_json"
	WrongShape               ErrorKind = "wrong_shape"
	UnparseableAfterCoercion ErrorKind = "unparseable_after_coercion"
)

// ResponseError is returned when the backend replied but its payload could
// not be turned into the target type. Raw holds a bounded prefix of the
// payload for server-side logs; it must not be sent to callers.
type ResponseError struct {
	Kind ErrorKind
	Msg  string
	Raw  string
	Err  error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ResponseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rerr *ResponseError
	return errors.As(err, &rerr) && rerr.Kind == kind
}
