package manager

import (
	"fmt"
	"sync"
	"time"

	"github.com/nataliegryphon/credwatch/pkg/account"
	"github.com/nataliegryphon/credwatch/pkg/logger"
	"github.com/nataliegryphon/credwatch/pkg/monitor"
)

// credManager implements the Manager interface.
type credManager struct {
	config   Config
	logger   logger.Logger
	confirm  ConfirmFunc
	accounts []*account.Account
	mon      monitor.Monitor

	mu      sync.Mutex
	closed  bool
	updates chan Update
}

// New creates a new manager over the given accounts.
//
// Parameters:
//   - cfg: Manager configuration; Target must be a monitorable path
//   - accounts: Accounts reloaded when a change is accepted
//   - confirm: Confirmation hook; nil means always reload
//   - log: Logger instance
//
// Returns:
//   - Configured Manager
//   - ErrNoAccounts or a monitor construction error
func New(cfg Config, accounts []*account.Account, confirm ConfirmFunc, log logger.Logger) (Manager, error) {
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}
	if cfg.UpdateBuffer <= 0 {
		cfg.UpdateBuffer = 10
	}
	if log == nil {
		log = logger.Noop()
	}

	m := &credManager{
		config:   cfg,
		logger:   log,
		confirm:  confirm,
		accounts: accounts,
		updates:  make(chan Update, cfg.UpdateBuffer),
	}

	mon, err := monitor.New(monitor.Config{
		Path:     cfg.Target,
		Interval: cfg.Interval,
		Strategy: cfg.Strategy,
	}, m.onChange, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create file monitor: %w", err)
	}
	m.mon = mon

	log.Info("manager created",
		"target", cfg.Target,
		"accounts", len(accounts))

	return m, nil
}

// Start implements Manager.Start.
func (m *credManager) Start() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	m.mu.Unlock()

	return m.mon.Start()
}

// Stop implements Manager.Stop.
func (m *credManager) Stop() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	m.mu.Unlock()

	return m.mon.Stop()
}

// Close implements Manager.Close.
func (m *credManager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	// Closing the monitor joins its polling goroutine, so no onChange
	// call can be in flight once the updates channel is closed.
	err := m.mon.Close()
	close(m.updates)

	m.logger.Debug("manager closed", "target", m.config.Target)
	return err
}

// Updates implements Manager.Updates.
func (m *credManager) Updates() <-chan Update {
	return m.updates
}

// onChange is the monitor callback: confirm, reload, notify.
func (m *credManager) onChange(path string) error {
	if m.confirm != nil && !m.confirm(path) {
		m.logger.Info("reload declined", "target", path)
		return nil
	}

	reloaded, failed := 0, 0
	for _, acct := range m.accounts {
		if err := acct.Reload(); err != nil {
			failed++
			m.logger.Error("account reload failed",
				"account", acct.ID(),
				"error", err)
			continue
		}
		reloaded++
	}

	m.logger.Info("accounts reloaded",
		"target", path,
		"reloaded", reloaded,
		"failed", failed)

	update := Update{
		Timestamp: time.Now(),
		Path:      path,
		Reloaded:  reloaded,
		Failed:    failed,
	}

	select {
	case m.updates <- update:
	default:
		m.logger.Warn("updates channel full, dropping update")
	}

	return nil
}
