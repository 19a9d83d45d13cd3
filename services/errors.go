package services

import (
	"errors"
	"fmt"
)

// ValidationError means the request failed a precondition before any write.
// Nothing was persisted; the caller can correct the input and retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError for a specific field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError means a write to the backing store failed. Step records
// which write failed and Compensated whether earlier writes of the same
// sequence were rolled back, so callers can tell "nothing happened" from
// "partial work was undone".
type PersistenceError struct {
	Step        string
	Compensated bool
	Err         error
}

func (e *PersistenceError) Error() string {
	if e.Compensated {
		return fmt.Sprintf("persistence failed at %s (earlier writes rolled back): %v", e.Step, e.Err)
	}
	return fmt.Sprintf("persistence failed at %s: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// StateTransitionError means the return's stored status did not permit the
// requested transition. No mutation occurred.
type StateTransitionError struct {
	ReturnID uint
	Current  string
	Expected string
	Target   string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("return %d cannot move to %s: status is %q, expected %q",
		e.ReturnID, e.Target, e.Current, e.Expected)
}

// InsufficientCreditError means a debit would drive a store-credit balance
// negative. No mutation occurred.
type InsufficientCreditError struct {
	StoreCreditID uint
	Requested     float64
	Balance       float64
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("store credit %d has balance %.2f, cannot debit %.2f",
		e.StoreCreditID, e.Balance, e.Requested)
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStateTransitionError reports whether err is a StateTransitionError
func IsStateTransitionError(err error) bool {
	var se *StateTransitionError
	return errors.As(err, &se)
}

// IsInsufficientCreditError reports whether err is an InsufficientCreditError
func IsInsufficientCreditError(err error) bool {
	var ie *InsufficientCreditError
	return errors.As(err, &ie)
}
