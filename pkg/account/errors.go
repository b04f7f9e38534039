package account

import "errors"

// Common errors returned by the account package.
var (
	// ErrEmptyAccountID is returned when an account is created without an ID.
	ErrEmptyAccountID = errors.New("account ID must not be empty")

	// ErrNilStore is returned when an account is created without a store.
	ErrNilStore = errors.New("account store must not be nil")

	// ErrUnknownField is returned when subscribing to an unrecognized field name.
	ErrUnknownField = errors.New("unknown account field")

	// ErrNilListener is returned when subscribing a nil listener.
	ErrNilListener = errors.New("listener must not be nil")

	// ErrStoreClosed is returned when using a closed store.
	ErrStoreClosed = errors.New("account store is closed")
)
