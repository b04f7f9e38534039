// Package manager ties the file monitor to the account model.
//
// A Manager owns a monitor over the configured credentials file. When
// the file changes it asks an injected confirmation function whether to
// proceed; on acceptance it reloads every registered account from its
// store and emits an Update for consumers. A declined confirmation is
// a no-op.
package manager

import (
	"time"

	"github.com/nataliegryphon/credwatch/pkg/monitor"
)

// ConfirmFunc decides whether a detected change should trigger a
// reload. It runs on the monitor's polling goroutine and may block on
// user input; polling resumes once it returns.
type ConfirmFunc func(path string) bool

// Config holds the configuration for the manager.
type Config struct {
	// Target is the credentials file to monitor.
	Target string

	// Interval is the polling interval. Default: monitor.DefaultInterval.
	Interval time.Duration

	// Strategy selects the fingerprint computation.
	Strategy monitor.Strategy

	// UpdateBuffer is the capacity of the Updates channel. Default: 10.
	UpdateBuffer int
}

// Update describes one completed reload.
type Update struct {
	// Timestamp of the reload
	Timestamp time.Time

	// Path of the changed file
	Path string

	// Reloaded is the number of accounts reloaded
	Reloaded int

	// Failed is the number of accounts whose reload failed
	Failed int
}

// Manager coordinates change detection and account reloading.
type Manager interface {
	// Start begins monitoring the target. It does not block.
	Start() error

	// Stop stops monitoring. No reloads occur after Stop returns.
	Stop() error

	// Close releases the manager and its monitor. The Updates channel
	// is closed.
	Close() error

	// Updates returns the channel carrying reload notifications.
	// Updates are dropped, not queued, when the channel is full.
	Updates() <-chan Update
}
