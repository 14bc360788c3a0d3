package database

import (
	"errors"
	"fmt"
)

// Set of error kinds reported when a block or chain fails validation.
var (
	ErrHashMismatch       = errors.New("block hash mismatch")
	ErrNumberMismatch     = errors.New("block number mismatch")
	ErrParentHashMismatch = errors.New("parent hash mismatch")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrEmptyChain         = errors.New("empty chain")
)

// Set of causes reported under ErrInvalidTransaction.
var (
	ErrUnbalanced = errors.New("deltas do not sum to zero")
	ErrOverdraft  = errors.New("account balance is negative")
	ErrOverflow   = errors.New("account balance overflows")
)

// ValidityError is returned when a block fails validation against its parent
// or the current ledger state.
type ValidityError struct {
	Kind   error
	Number uint64
	Err    error
}

// NewValidityError constructs a validity error of the specified kind for the
// block number.
func NewValidityError(kind error, number uint64, format string, args ...any) *ValidityError {
	return &ValidityError{
		Kind:   kind,
		Number: number,
		Err:    fmt.Errorf(format, args...),
	}
}

// Error implements the error interface.
func (ve *ValidityError) Error() string {
	return fmt.Sprintf("blk[%d]: %s: %s", ve.Number, ve.Kind, ve.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and
// errors.As.
func (ve *ValidityError) Unwrap() []error {
	return []error{ve.Kind, ve.Err}
}

// IsValidityError checks if an error of type ValidityError exists.
func IsValidityError(err error) bool {
	var ve *ValidityError
	return errors.As(err, &ve)
}
