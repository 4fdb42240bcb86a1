package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrNotReady             = errors.New("wallet not ready")
	ErrNotConnected         = errors.New("wallet not connected")
	ErrUnsupportedOperation = errors.New("operation not supported by this wallet")
	ErrMalformedPayload     = errors.New("malformed transaction payload")
	ErrWalletNotFound       = errors.New("wallet not found")
)

// Error is a failure tied to a wallet and an operation.
// errors.Is matches both Kind and Cause.
type Error struct {
	Wallet string
	Op     string
	Kind   error
	Cause  error
}

// NewError builds an Error of the given kind
func NewError(walletName, op string, kind, cause error) *Error {
	return &Error{Wallet: walletName, Op: op, Kind: kind, Cause: cause}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s [%s]", e.Op, e.Wallet)
	if e.Kind != nil {
		msg += ": " + e.Kind.Error()
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// IsNotReadyError checks if error is caused by a wallet that is not installed
func IsNotReadyError(err error) bool {
	return errors.Is(err, ErrNotReady)
}
