// Package monitor provides poll-based change detection for a single file.
//
// A Monitor observes one target path at a fixed interval and invokes a
// callback exactly once per observed change to the file's fingerprint.
// A missing or unreadable target is a valid fingerprint state, so file
// creation, deletion, and loss of access each produce one notification.
//
// Example usage:
//
//	m, err := monitor.New(monitor.Config{
//	    Path:     "/home/user/.aws/credentials",
//	    Interval: 3 * time.Second,
//	}, func(path string) error {
//	    fmt.Printf("file %s changed\n", path)
//	    return nil
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	if err := m.Start(); err != nil {
//	    log.Fatal(err)
//	}
package monitor

import (
	"time"
)

// DefaultInterval is the polling interval used when Config.Interval is zero.
const DefaultInterval = 3 * time.Second

// ChangeFunc is invoked on the polling goroutine once per detected change.
//
// A returned error is logged and does not stop the monitor.
type ChangeFunc func(path string) error

// Strategy selects how file fingerprints are computed.
type Strategy uint8

// Fingerprint strategies.
const (
	// StrategyMetadata fingerprints by size and modification time.
	// A rewrite with identical content still notifies if the mtime changed.
	StrategyMetadata Strategy = iota

	// StrategyContent fingerprints by SHA-256 of the file content.
	// A rewrite with identical content never notifies.
	StrategyContent
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyMetadata:
		return "metadata"
	case StrategyContent:
		return "content"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a strategy name to a Strategy.
//
// Recognized names: "metadata", "content". Returns ErrInvalidStrategy
// for anything else.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "metadata", "":
		return StrategyMetadata, nil
	case "content":
		return StrategyContent, nil
	default:
		return StrategyMetadata, ErrInvalidStrategy
	}
}

// Monitor watches a single file for changes.
type Monitor interface {
	// Start transitions the monitor from stopped to running and begins
	// polling on a dedicated background goroutine. The baseline
	// fingerprint is captured synchronously before Start returns, so
	// the first notification always reflects a change that happened
	// after Start.
	//
	// Returns ErrAlreadyStarted if the monitor is running, or
	// ErrMonitorClosed after Close.
	Start() error

	// Stop transitions the monitor from running to stopped and joins
	// the polling goroutine. After Stop returns, no further callback
	// invocations occur. Stop must not be called from within the
	// change callback.
	//
	// Returns ErrNotStarted if the monitor is not running, or
	// ErrMonitorClosed after Close.
	Stop() error

	// Close releases the monitor permanently, stopping it first if
	// running. Close is idempotent.
	Close() error

	// Running reports whether the monitor is currently polling.
	Running() bool
}

// Config contains monitor configuration.
type Config struct {
	// Path is the absolute path of the file to watch.
	// It is immutable for the lifetime of the monitor.
	Path string

	// Interval is the polling interval. Default: 3s.
	Interval time.Duration

	// Strategy selects the fingerprint computation. Default: StrategyMetadata.
	Strategy Strategy
}
