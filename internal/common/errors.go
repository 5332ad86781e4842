package common

import (
	"fmt"
)

// NotFoundError is returned when the required value is not found.
type NotFoundError struct {
	Message string
}

func (nf NotFoundError) Error() string {
	return fmt.Sprintf("%s", nf.Message)
}

// NewNotFoundError creates a new instance of NotFoundError with the given message.
func NewNotFoundError(message string) NotFoundError {
	return NotFoundError{
		Message: message,
	}
}

// AlreadyExistsError is returned when an entity being created already exists.
type AlreadyExistsError struct {
	Message string
}

func (ae AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s", ae.Message)
}

// NewAlreadyExistsError creates a new instance of AlreadyExistsError with the given message.
func NewAlreadyExistsError(message string) AlreadyExistsError {
	return AlreadyExistsError{
		Message: message,
	}
}

// UnknownColumnError is returned when a requested column id is absent
// from a table's descriptor map.
type UnknownColumnError struct {
	Message string
}

func (uc UnknownColumnError) Error() string {
	return fmt.Sprintf("%s", uc.Message)
}

// NewUnknownColumnError creates a new instance of UnknownColumnError with the given message.
func NewUnknownColumnError(message string) UnknownColumnError {
	return UnknownColumnError{
		Message: message,
	}
}

// InvalidTxnModeError is returned when a mutating operation is invoked
// on a session that was started in read-only mode.
type InvalidTxnModeError struct {
	Message string
}

func (it InvalidTxnModeError) Error() string {
	return fmt.Sprintf("%s", it.Message)
}

// NewInvalidTxnModeError creates a new instance of InvalidTxnModeError with the given message.
func NewInvalidTxnModeError(message string) InvalidTxnModeError {
	return InvalidTxnModeError{
		Message: message,
	}
}

// EndedTxnError is returned when an operation is called on a txn that has already ended.
type EndedTxnError struct {
	Message string
}

func (et EndedTxnError) Error() string {
	return fmt.Sprintf("%s", et.Message)
}

// NewEndedTxnError creates a new instance of EndedTxnError with the given message.
func NewEndedTxnError(message string) EndedTxnError {
	return EndedTxnError{
		Message: message,
	}
}

// LockAcquisitionError is returned when the section protecting a table's
// state could not be acquired on behalf of the caller.
type LockAcquisitionError struct {
	Message string
}

func (la LockAcquisitionError) Error() string {
	return fmt.Sprintf("%s", la.Message)
}

// NewLockAcquisitionError creates a new instance of LockAcquisitionError with the given message.
func NewLockAcquisitionError(message string) LockAcquisitionError {
	return LockAcquisitionError{
		Message: message,
	}
}
