package monitor

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nataliegryphon/credwatch/pkg/logger"
)

// fileMonitor implements the Monitor interface with a polling goroutine.
type fileMonitor struct {
	config   Config
	onChange ChangeFunc
	logger   logger.Logger

	mu       sync.Mutex
	running  bool
	closed   bool
	baseline fingerprint
	stopChan chan struct{}
	done     chan struct{}
}

// New creates a new file monitor in the stopped state.
//
// Parameters:
//   - cfg: Monitor configuration; Path must be absolute and have a
//     parent directory
//   - onChange: Callback invoked once per detected change
//   - log: Logger instance
//
// Returns:
//   - Configured Monitor
//   - ErrInvalidTarget or ErrNilCallback on invalid arguments
func New(cfg Config, onChange ChangeFunc, log logger.Logger) (Monitor, error) {
	if onChange == nil {
		return nil, ErrNilCallback
	}

	cleaned := filepath.Clean(cfg.Path)
	if cfg.Path == "" || !filepath.IsAbs(cleaned) || filepath.Dir(cleaned) == cleaned {
		return nil, ErrInvalidTarget
	}
	cfg.Path = cleaned

	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if log == nil {
		log = logger.Noop()
	}

	m := &fileMonitor{
		config:   cfg,
		onChange: onChange,
		logger:   log,
	}

	log.Debug("file monitor created",
		"target", cfg.Path,
		"interval", cfg.Interval,
		"strategy", cfg.Strategy.String())

	return m, nil
}

// Start implements Monitor.Start.
func (m *fileMonitor) Start() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMonitorClosed
	}
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}

	// Baseline is captured before the first tick so a file that already
	// exists does not produce a spurious notification.
	m.baseline = takeFingerprint(m.config.Path, m.config.Strategy)
	m.running = true
	m.stopChan = make(chan struct{})
	m.done = make(chan struct{})
	stop, done := m.stopChan, m.done
	m.mu.Unlock()

	go m.poll(stop, done)

	m.logger.Info("monitoring started",
		"target", m.config.Path,
		"interval", m.config.Interval)

	return nil
}

// Stop implements Monitor.Stop.
//
// Stop waits for the in-flight tick, if any, to finish; once it
// returns, the polling goroutine has exited and no callback will fire
// again.
func (m *fileMonitor) Stop() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMonitorClosed
	}
	if !m.running {
		m.mu.Unlock()
		return ErrNotStarted
	}

	m.running = false
	close(m.stopChan)
	done := m.done
	m.mu.Unlock()

	<-done

	m.logger.Info("monitoring stopped", "target", m.config.Path)
	return nil
}

// Close implements Monitor.Close.
func (m *fileMonitor) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true

	var done chan struct{}
	if m.running {
		m.running = false
		close(m.stopChan)
		done = m.done
	}
	m.mu.Unlock()

	if done != nil {
		<-done
	}

	m.logger.Debug("monitor closed", "target", m.config.Path)
	return nil
}

// Running implements Monitor.Running.
func (m *fileMonitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// poll drives the ticker until stopped.
//
// Ticks run inline on this goroutine, so at most one fingerprint
// comparison is in flight at a time; a tick that outlasts the interval
// causes the next tick to be dropped by the ticker, not queued.
func (m *fileMonitor) poll(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

// tick performs one change-detection check.
func (m *fileMonitor) tick() {
	current := takeFingerprint(m.config.Path, m.config.Strategy)

	m.mu.Lock()
	if !m.running {
		// Stop raced with this tick; do not dispatch.
		m.mu.Unlock()
		return
	}
	changed := !current.equal(m.baseline)
	if changed {
		// Baseline is updated before the callback runs so a slow or
		// failing callback cannot cause the same change to fire twice.
		m.baseline = current
	}
	m.mu.Unlock()

	if !changed {
		m.logger.Debug("tick: no change", "target", m.config.Path)
		return
	}

	m.logger.Debug("tick: change detected",
		"target", m.config.Path,
		"state", current.state.String())

	m.dispatch()
}

// dispatch invokes the callback, containing errors and panics so a
// misbehaving consumer cannot kill the monitor.
func (m *fileMonitor) dispatch() {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("change callback panicked",
				"target", m.config.Path,
				"panic", r)
		}
	}()

	if err := m.onChange(m.config.Path); err != nil {
		m.logger.Error("change callback failed",
			"target", m.config.Path,
			"error", err)
	}
}
