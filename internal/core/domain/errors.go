package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every service error wraps exactly one of these so
// handlers can map to an HTTP status with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

// Ledger errors
var (
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrInvalidTransactionType = fmt.Errorf("%w: unknown transaction type", ErrValidation)
	ErrMemberNotFound         = fmt.Errorf("member %w", ErrNotFound)
)

// Loan errors
var (
	ErrLoanNotFound      = fmt.Errorf("loan %w", ErrNotFound)
	ErrLoanNotPending    = fmt.Errorf("%w: loan is not pending", ErrInvalidState)
	ErrLoanOverLimit     = fmt.Errorf("%w: amount exceeds maximum loan amount", ErrValidation)
	ErrInvalidDuration   = fmt.Errorf("%w: duration must be between 1 and 60 months", ErrValidation)
	ErrInvalidLoanStatus = fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
)

// Member errors
var (
	ErrPhoneAlreadyExists = fmt.Errorf("%w: phone number already registered", ErrValidation)
)
