package manager

import "errors"

// Common errors returned by the manager.
var (
	// ErrManagerClosed is returned when operations are attempted on a closed manager.
	ErrManagerClosed = errors.New("manager is closed")

	// ErrNoAccounts is returned when a manager is created without accounts.
	ErrNoAccounts = errors.New("no accounts to manage")
)
