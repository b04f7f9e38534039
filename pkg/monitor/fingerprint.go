package monitor

import (
	"crypto/sha256"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"
)

// fileState classifies the observable state of the target.
type fileState uint8

const (
	// statePresent means the target exists and is a readable regular file.
	statePresent fileState = iota

	// stateMissing means the target does not exist. Creation of the file
	// is a fingerprint transition like any other.
	stateMissing

	// stateUnreadable means the target exists but cannot be fingerprinted
	// (permission denied, path is now a directory). Transient I/O errors
	// collapse into this state instead of propagating.
	stateUnreadable
)

// String returns a human-readable state name.
func (s fileState) String() string {
	switch s {
	case statePresent:
		return "present"
	case stateMissing:
		return "missing"
	case stateUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// fingerprint is a cheap, comparable summary of the target's state.
type fingerprint struct {
	state   fileState
	size    int64
	modTime time.Time
	sum     [sha256.Size]byte
	hashed  bool
}

// takeFingerprint computes the target's current fingerprint.
//
// It never returns an error: stat and read failures are folded into
// stateMissing or stateUnreadable.
func takeFingerprint(path string, strategy Strategy) fingerprint {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fingerprint{state: stateMissing}
		}
		return fingerprint{state: stateUnreadable}
	}

	if info.IsDir() {
		return fingerprint{state: stateUnreadable}
	}

	if strategy == StrategyContent {
		return contentFingerprint(path)
	}

	return fingerprint{
		state:   statePresent,
		size:    info.Size(),
		modTime: info.ModTime(),
	}
}

// contentFingerprint hashes the file content without loading it
// into memory at once.
func contentFingerprint(path string) fingerprint {
	f, err := os.Open(path) // nolint:gosec
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fingerprint{state: stateMissing}
		}
		return fingerprint{state: stateUnreadable}
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return fingerprint{state: stateUnreadable}
	}

	fp := fingerprint{
		state:  statePresent,
		size:   size,
		hashed: true,
	}
	copy(fp.sum[:], h.Sum(nil))
	return fp
}

// equal reports whether two fingerprints describe the same file state.
func (f fingerprint) equal(other fingerprint) bool {
	if f.state != other.state {
		return false
	}
	if f.state != statePresent {
		// Missing and unreadable carry no further detail.
		return true
	}
	if f.hashed || other.hashed {
		return f.hashed == other.hashed && f.sum == other.sum
	}
	return f.size == other.size && f.modTime.Equal(other.modTime)
}
