package domain

import (
	"errors"
	"fmt"
)

// Messages reported to clients when a selection cannot be resolved.
const (
	MsgInvalidProgramOrRoom = "Invalid program or room type"
	MsgNoEnrollmentPlan     = "No enrollment plan found for selected program & room"
	MsgInvalidPaymentPlan   = "Invalid payment plan"
)

type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string, fields ...string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

type NotFoundError struct {
	Resource string
	Key      interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.Key)
}

// TransactionError wraps a database failure that happened during a multi-step
// write. The transaction has already been rolled back when it is returned.
type TransactionError struct {
	Op     string
	Code   string
	Detail string
	Err    error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection unavailable: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

// ErrorKind names the taxonomy bucket of err, used as a metrics label.
func ErrorKind(err error) string {
	var (
		ve *ValidationError
		ne *NotFoundError
		te *TransactionError
		ce *ConnectionError
	)
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &ne):
		return "not_found"
	case errors.As(err, &ce):
		return "connection"
	case errors.As(err, &te):
		return "transaction"
	default:
		return "internal"
	}
}
