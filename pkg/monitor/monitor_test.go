package monitor

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nataliegryphon/credwatch/pkg/logger"
)

const testInterval = 20 * time.Millisecond

// newCounter returns a callback that counts invocations and records
// the last path it was called with.
func newCounter() (*int32, *atomic.Value, ChangeFunc) {
	var n int32
	var last atomic.Value
	return &n, &last, func(path string) error {
		atomic.AddInt32(&n, 1)
		last.Store(path)
		return nil
	}
}

func waitForCount(t *testing.T, n *int32, want int32) {
	t.Helper()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(n) == want
	}, 2*time.Second, 5*time.Millisecond, "callback count never reached %d", want)
}

// settle waits several poll intervals and asserts the count is stable.
func settle(t *testing.T, n *int32, want int32) {
	t.Helper()
	time.Sleep(5 * testInterval)
	assert.Equal(t, want, atomic.LoadInt32(n))
}

func TestNewInvalidTarget(t *testing.T) {
	_, _, fn := newCounter()

	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"relative", "some/relative/path"},
		{"root", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{Path: tt.path}, fn, logger.Noop())
			require.ErrorIs(t, err, ErrInvalidTarget)
		})
	}
}

func TestNewNilCallback(t *testing.T) {
	_, err := New(Config{Path: "/tmp/creds"}, nil, logger.Noop())
	require.ErrorIs(t, err, ErrNilCallback)
}

func TestLifecycle(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	_, _, fn := newCounter()

	m, err := New(Config{Path: target, Interval: testInterval}, fn, logger.Noop())
	require.NoError(t, err)

	assert.False(t, m.Running())

	require.NoError(t, m.Start())
	assert.True(t, m.Running())
	require.ErrorIs(t, m.Start(), ErrAlreadyStarted)

	require.NoError(t, m.Stop())
	assert.False(t, m.Running())
	require.ErrorIs(t, m.Stop(), ErrNotStarted)

	// Restart after stop is allowed.
	require.NoError(t, m.Start())
	require.NoError(t, m.Stop())

	require.NoError(t, m.Close())
	require.ErrorIs(t, m.Start(), ErrMonitorClosed)
	require.ErrorIs(t, m.Stop(), ErrMonitorClosed)
	require.NoError(t, m.Close())
}

func TestCloseWhileRunning(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	n, _, fn := newCounter()

	m, err := New(Config{Path: target, Interval: testInterval}, fn, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	require.NoError(t, m.Close())
	assert.False(t, m.Running())

	require.NoError(t, os.WriteFile(target, []byte("created after close"), 0600))
	settle(t, n, 0)
}

func TestDetectsWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0600))

	n, last, fn := newCounter()
	m, err := New(Config{Path: target, Interval: testInterval}, fn, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer func() { _ = m.Close() }()

	// Different length guarantees a fingerprint change regardless of
	// mtime granularity.
	require.NoError(t, os.WriteFile(target, []byte("v2 with more content"), 0600))

	waitForCount(t, n, 1)
	assert.Equal(t, target, last.Load())

	// One change, one notification.
	settle(t, n, 1)
}

func TestExistingFileNoSpuriousNotification(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(target, []byte("stable"), 0600))

	n, _, fn := newCounter()
	m, err := New(Config{Path: target, Interval: testInterval}, fn, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer func() { _ = m.Close() }()

	settle(t, n, 0)
}

func TestCreateDeleteRecreate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")

	n, _, fn := newCounter()
	m, err := New(Config{Path: target, Interval: testInterval}, fn, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer func() { _ = m.Close() }()

	// Missing is the baseline; creation is one transition.
	require.NoError(t, os.WriteFile(target, []byte("content-a"), 0600))
	waitForCount(t, n, 1)

	require.NoError(t, os.Remove(target))
	waitForCount(t, n, 2)

	require.NoError(t, os.WriteFile(target, []byte("content-b-longer"), 0600))
	waitForCount(t, n, 3)

	settle(t, n, 3)
}

func TestStopSuppressesCallbacks(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0600))

	n, _, fn := newCounter()
	m, err := New(Config{Path: target, Interval: testInterval}, fn, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	require.NoError(t, m.Stop())

	require.NoError(t, os.WriteFile(target, []byte("mutated after stop"), 0600))
	settle(t, n, 0)
}

func TestCallbackErrorDoesNotStopPolling(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0600))

	var n int32
	fn := func(string) error {
		atomic.AddInt32(&n, 1)
		return errors.New("consumer is broken")
	}

	log := logger.Capture()
	m, err := New(Config{Path: target, Interval: testInterval}, fn, log)
	require.NoError(t, err)
	require.NoError(t, m.Start())

	require.NoError(t, os.WriteFile(target, []byte("v2 longer"), 0600))
	waitForCount(t, &n, 1)

	require.NoError(t, os.WriteFile(target, []byte("v3 even longer"), 0600))
	waitForCount(t, &n, 2)

	require.NoError(t, m.Stop())
	assert.True(t, log.Contains("change callback failed"))
}

func TestCallbackPanicContained(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0600))

	var n int32
	fn := func(string) error {
		atomic.AddInt32(&n, 1)
		panic("consumer panicked")
	}

	log := logger.Capture()
	m, err := New(Config{Path: target, Interval: testInterval}, fn, log)
	require.NoError(t, err)
	require.NoError(t, m.Start())

	require.NoError(t, os.WriteFile(target, []byte("v2 longer"), 0600))
	waitForCount(t, &n, 1)

	require.NoError(t, os.WriteFile(target, []byte("v3 even longer"), 0600))
	waitForCount(t, &n, 2)

	require.NoError(t, m.Stop())
	assert.True(t, log.Contains("change callback panicked"))
}

func TestContentStrategyIgnoresIdenticalRewrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	content := []byte("identical bytes")
	require.NoError(t, os.WriteFile(target, content, 0600))

	n, _, fn := newCounter()
	m, err := New(Config{
		Path:     target,
		Interval: testInterval,
		Strategy: StrategyContent,
	}, fn, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer func() { _ = m.Close() }()

	// Rewrite with the same bytes and a forced mtime bump.
	require.NoError(t, os.WriteFile(target, content, 0600))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(target, later, later))

	settle(t, n, 0)

	// Different bytes of the same length still notify.
	require.NoError(t, os.WriteFile(target, []byte("divergent bytes"), 0600))
	waitForCount(t, n, 1)
}

func TestMetadataStrategyNotifiesOnMtimeChange(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	content := []byte("identical bytes")
	require.NoError(t, os.WriteFile(target, content, 0600))

	n, _, fn := newCounter()
	m, err := New(Config{
		Path:     target,
		Interval: testInterval,
		Strategy: StrategyMetadata,
	}, fn, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer func() { _ = m.Close() }()

	// Identical content, but the mtime moved: metadata fingerprints differ.
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(target, later, later))

	waitForCount(t, n, 1)
	settle(t, n, 1)
}

func TestUnreadableTransition(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	// The target starts out as a directory, so the baseline is the
	// unreadable state.
	require.NoError(t, os.Mkdir(target, 0700))

	n, _, fn := newCounter()
	m, err := New(Config{Path: target, Interval: testInterval}, fn, logger.Noop())
	require.NoError(t, err)
	require.NoError(t, m.Start())
	defer func() { _ = m.Close() }()

	settle(t, n, 0)

	// Directory replaced by a regular file: unreadable -> present.
	require.NoError(t, os.Remove(target))
	require.NoError(t, os.WriteFile(target, []byte("now a file"), 0600))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(n) >= 1
	}, 2*time.Second, 5*time.Millisecond)

	// A poll may glimpse the missing state between the remove and the
	// write, which is a real transition of its own. Never more than
	// one notification per observed transition.
	time.Sleep(5 * testInterval)
	final := atomic.LoadInt32(n)
	assert.LessOrEqual(t, final, int32(2))
	time.Sleep(5 * testInterval)
	assert.Equal(t, final, atomic.LoadInt32(n))
}

func TestLifecycleLogging(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	_, _, fn := newCounter()

	log := logger.Capture()
	m, err := New(Config{Path: target, Interval: testInterval}, fn, log)
	require.NoError(t, err)

	require.NoError(t, m.Start())
	require.NoError(t, m.Stop())

	assert.True(t, log.Contains("monitoring started"))
	assert.True(t, log.Contains("monitoring stopped"))
}

func TestDefaultInterval(t *testing.T) {
	target := filepath.Join(t.TempDir(), "credentials")
	_, _, fn := newCounter()

	m, err := New(Config{Path: target}, fn, logger.Noop())
	require.NoError(t, err)

	fm := m.(*fileMonitor)
	assert.Equal(t, DefaultInterval, fm.config.Interval)
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{"metadata", "metadata", StrategyMetadata, false},
		{"content", "content", StrategyContent, false},
		{"empty defaults to metadata", "", StrategyMetadata, false},
		{"unknown", "checksum", StrategyMetadata, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStrategy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
