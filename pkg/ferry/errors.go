package ferry

import (
	"errors"
	"fmt"
)

// Domain-level error values returned by the ferry service.
var (
	ErrVesselNotFound      = errors.New("vessel not found")
	ErrSailingNotFound     = errors.New("sailing not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")

	ErrVesselExists      = errors.New("vessel already exists")
	ErrSailingExists     = errors.New("sailing already exists")
	ErrReservationExists = errors.New("reservation already exists")

	ErrCapacityExceeded = errors.New("insufficient lane capacity")
	ErrAlreadyOnboard   = errors.New("vehicle already checked in")

	ErrInvalidVesselName        = errors.New("invalid vessel name")
	ErrInvalidLicensePlate      = errors.New("invalid license plate")
	ErrInvalidPhone             = errors.New("invalid phone number")
	ErrInvalidSailingID         = errors.New("invalid sailing id")
	ErrInvalidReservationID     = errors.New("invalid reservation id")
	ErrInvalidLane              = errors.New("invalid lane")
	ErrInvalidLaneCapacity      = errors.New("invalid lane capacity")
	ErrInvalidVehicleDimensions = errors.New("invalid vehicle dimensions")
	ErrInvalidServiceConfig     = errors.New("invalid service config")
)

// OperationError wraps a failure with a stable operation code.
type OperationError struct {
	operation string
	subject   string
	code      string
	err       error
}

// Error returns the formatted error message.
func (operationError OperationError) Error() string {
	return fmt.Sprintf("%s.%s.%s: %v", operationError.operation, operationError.subject, operationError.code, operationError.err)
}

// Unwrap returns the underlying error.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the operation segment.
func (operationError OperationError) Operation() string {
	return operationError.operation
}

// Subject returns the subject segment.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code returns the stable error code segment.
func (operationError OperationError) Code() string {
	return operationError.code
}

// WrapError wraps an error with operation, subject, and code metadata.
func WrapError(operation string, subject string, code string, err error) error {
	if err == nil {
		return nil
	}
	return OperationError{
		operation: operation,
		subject:   subject,
		code:      code,
		err:       err,
	}
}
