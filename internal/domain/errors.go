package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is the parent of every input validation error.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnknownKind indicates an unsupported transaction type tag.
	ErrUnknownKind = fmt.Errorf("%w: unknown transaction type", ErrMalformedInput)
	// ErrMissingField indicates that a required field is absent or empty.
	ErrMissingField = fmt.Errorf("%w: missing required field", ErrMalformedInput)
	// ErrInvalidField indicates that a client or tx field is not a valid identifier.
	ErrInvalidField = fmt.Errorf("%w: invalid field", ErrMalformedInput)
	// ErrInvalidAmount indicates an unparseable amount.
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrMalformedInput)
	// ErrNegativeAmount indicates a negative deposit or withdrawal amount.
	ErrNegativeAmount = fmt.Errorf("%w: negative amount", ErrMalformedInput)
)

var (
	// ErrInvariantViolation indicates an account left with negative available or held funds.
	ErrInvariantViolation = errors.New("account invariant violated")
	// ErrNoInputFile indicates that no input path was given.
	ErrNoInputFile = errors.New("no input file provided")
)
