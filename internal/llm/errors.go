package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is wrapped when the backend answered without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// ServiceError reports that the backend could not be reached, rejected the
// request, or answered with something other than a completion.
type ServiceError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
