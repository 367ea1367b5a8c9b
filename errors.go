package transposit

import (
	"errors"
	"fmt"
)

var (
	ErrNotSignedIn     = errors.New("this method can only be called if the user is signed in")
	ErrMissingCode     = errors.New("code query parameter could not be found, this method should only be called after redirection during sign-in")
	ErrNoResults       = errors.New("operation did not return a value")
	ErrEmptyOperation  = errors.New("operation id cannot be empty")
	ErrOperationFailed = errors.New("operation failed")
)

// OperationFallbackMessage is used when a failed operation reports no exception message.
const OperationFallbackMessage = "A problem occurred when processing this operation."

// UnexpectedSchemaMessage is the APIError message for a successful operation
// envelope without a results list.
const UnexpectedSchemaMessage = "API returned an unexpected response schema"

// OperationError is returned when an operation ran but did not succeed. The
// request id identifies the run to support.
type OperationError struct {
	OperationID string
	RequestID   string
	Status      OperationStatus
	Message     string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %s %s (request %s): %s", e.OperationID, e.Status, e.RequestID, e.Message)
}

func (e *OperationError) Unwrap() error {
	return ErrOperationFailed
}
