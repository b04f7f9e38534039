package account

import (
	"fmt"
	"os"
	"sync"
)

// knownFields is the set of field names accepted by Subscribe.
var knownFields = map[string]bool{
	FieldAccountName:     true,
	FieldAccessKey:       true,
	FieldSecretKey:       true,
	FieldUserID:          true,
	FieldPrivateKeyFile:  true,
	FieldCertificateFile: true,
}

// Account is a mutable account-settings holder with change notification.
//
// All methods are safe for concurrent use. Listeners run on the
// mutating goroutine, outside the account's lock.
type Account struct {
	id string

	credsStore CredentialsStore
	optsStore  OptionsStore

	mu         sync.RWMutex
	creds      Credentials
	credsDirty bool
	opts       Options
	optsDirty  bool

	listeners    map[string][]Listener
	allListeners []Listener
}

// New creates an account bound to the given section stores and loads
// its current persisted state. A missing record yields zero values and
// a clean account.
func New(id string, creds CredentialsStore, opts OptionsStore) (*Account, error) {
	if id == "" {
		return nil, ErrEmptyAccountID
	}
	if creds == nil || opts == nil {
		return nil, ErrNilStore
	}

	a := &Account{
		id:         id,
		credsStore: creds,
		optsStore:  opts,
		listeners:  make(map[string][]Listener),
	}

	c, _, err := creds.LoadCredentials(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials for %s: %w", id, err)
	}
	o, _, err := opts.LoadOptions(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load options for %s: %w", id, err)
	}

	a.creds = c
	a.opts = o
	return a, nil
}

// ID returns the immutable internal account identifier.
func (a *Account) ID() string {
	return a.id
}

// AccountName returns the display name of the account.
func (a *Account) AccountName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.creds.AccountName
}

// SetAccountName updates the display name, notifying on change.
func (a *Account) SetAccountName(v string) {
	a.set(FieldAccountName, v, func(c *Credentials, _ *Options) *string { return &c.AccountName })
}

// AccessKey returns the access key.
func (a *Account) AccessKey() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.creds.AccessKey
}

// SetAccessKey updates the access key, notifying on change.
func (a *Account) SetAccessKey(v string) {
	a.set(FieldAccessKey, v, func(c *Credentials, _ *Options) *string { return &c.AccessKey })
}

// SecretKey returns the secret key.
func (a *Account) SecretKey() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.creds.SecretKey
}

// SetSecretKey updates the secret key, notifying on change.
func (a *Account) SetSecretKey(v string) {
	a.set(FieldSecretKey, v, func(c *Credentials, _ *Options) *string { return &c.SecretKey })
}

// UserID returns the user ID.
func (a *Account) UserID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.opts.UserID
}

// SetUserID updates the user ID, notifying on change.
func (a *Account) SetUserID(v string) {
	a.set(FieldUserID, v, func(_ *Credentials, o *Options) *string { return &o.UserID })
}

// PrivateKeyFile returns the private key file path.
func (a *Account) PrivateKeyFile() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.opts.PrivateKeyFile
}

// SetPrivateKeyFile updates the private key file path, notifying on change.
func (a *Account) SetPrivateKeyFile(v string) {
	a.set(FieldPrivateKeyFile, v, func(_ *Credentials, o *Options) *string { return &o.PrivateKeyFile })
}

// CertificateFile returns the certificate file path.
func (a *Account) CertificateFile() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.opts.CertificateFile
}

// SetCertificateFile updates the certificate file path, notifying on change.
func (a *Account) SetCertificateFile(v string) {
	a.set(FieldCertificateFile, v, func(_ *Credentials, o *Options) *string { return &o.CertificateFile })
}

// set applies the equality-before-notify mutation protocol shared by
// all setters.
func (a *Account) set(field, value string, pick func(*Credentials, *Options) *string) {
	a.mu.Lock()
	target := pick(&a.creds, &a.opts)
	old := *target
	if old == value {
		a.mu.Unlock()
		return
	}
	*target = value
	switch field {
	case FieldAccountName, FieldAccessKey, FieldSecretKey:
		a.credsDirty = true
	default:
		a.optsDirty = true
	}
	fns := a.listenersLocked(field)
	a.mu.Unlock()

	change := Change{Account: a.id, Field: field, Old: old, New: value}
	for _, fn := range fns {
		fn(change)
	}
}

// Subscribe registers a listener for a single field.
func (a *Account) Subscribe(field string, fn Listener) error {
	if fn == nil {
		return ErrNilListener
	}
	if !knownFields[field] {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners[field] = append(a.listeners[field], fn)
	return nil
}

// SubscribeAll registers a listener for every field.
func (a *Account) SubscribeAll(fn Listener) error {
	if fn == nil {
		return ErrNilListener
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.allListeners = append(a.allListeners, fn)
	return nil
}

// listenersLocked returns the listeners to invoke for a field.
// Caller must hold a.mu.
func (a *Account) listenersLocked(field string) []Listener {
	fns := make([]Listener, 0, len(a.listeners[field])+len(a.allListeners))
	fns = append(fns, a.listeners[field]...)
	fns = append(fns, a.allListeners...)
	return fns
}

// Save persists both sections through their stores and clears the
// dirty flags.
func (a *Account) Save() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.credsStore.SaveCredentials(a.id, a.creds); err != nil {
		return fmt.Errorf("failed to save credentials for %s: %w", a.id, err)
	}
	a.credsDirty = false

	if err := a.optsStore.SaveOptions(a.id, a.opts); err != nil {
		return fmt.Errorf("failed to save options for %s: %w", a.id, err)
	}
	a.optsDirty = false

	return nil
}

// Delete removes both sections from their stores and resets the
// in-memory state to zero values.
func (a *Account) Delete() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.credsStore.DeleteCredentials(a.id); err != nil {
		return fmt.Errorf("failed to delete credentials for %s: %w", a.id, err)
	}
	if err := a.optsStore.DeleteOptions(a.id); err != nil {
		return fmt.Errorf("failed to delete options for %s: %w", a.id, err)
	}

	a.creds = Credentials{}
	a.opts = Options{}
	a.credsDirty = false
	a.optsDirty = false
	return nil
}

// Reload re-reads both sections from their stores, firing one change
// event per field whose persisted value differs from the in-memory
// value. Reloading clears the dirty flags.
func (a *Account) Reload() error {
	a.mu.Lock()

	c, _, err := a.credsStore.LoadCredentials(a.id)
	if err != nil {
		a.mu.Unlock()
		return fmt.Errorf("failed to reload credentials for %s: %w", a.id, err)
	}
	o, _, err := a.optsStore.LoadOptions(a.id)
	if err != nil {
		a.mu.Unlock()
		return fmt.Errorf("failed to reload options for %s: %w", a.id, err)
	}

	old := struct {
		creds Credentials
		opts  Options
	}{a.creds, a.opts}

	a.creds = c
	a.opts = o
	a.credsDirty = false
	a.optsDirty = false

	type pending struct {
		fns    []Listener
		change Change
	}
	var fire []pending
	diff := func(field, oldV, newV string) {
		if oldV == newV {
			return
		}
		fire = append(fire, pending{
			fns:    a.listenersLocked(field),
			change: Change{Account: a.id, Field: field, Old: oldV, New: newV},
		})
	}
	diff(FieldAccountName, old.creds.AccountName, c.AccountName)
	diff(FieldAccessKey, old.creds.AccessKey, c.AccessKey)
	diff(FieldSecretKey, old.creds.SecretKey, c.SecretKey)
	diff(FieldUserID, old.opts.UserID, o.UserID)
	diff(FieldPrivateKeyFile, old.opts.PrivateKeyFile, o.PrivateKeyFile)
	diff(FieldCertificateFile, old.opts.CertificateFile, o.CertificateFile)
	a.mu.Unlock()

	for _, p := range fire {
		for _, fn := range p.fns {
			fn(p.change)
		}
	}
	return nil
}

// Dirty reports whether either section holds unsaved modifications.
func (a *Account) Dirty() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.credsDirty || a.optsDirty
}

// Valid reports whether the credentials section is usable: both keys
// are set. No further validation is performed on the key material.
func (a *Account) Valid() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.creds.AccessKey != "" && a.creds.SecretKey != ""
}

// CertificateValid reports whether both certificate-related paths are
// set and exist on disk.
func (a *Account) CertificateValid() bool {
	a.mu.RLock()
	key, cert := a.opts.PrivateKeyFile, a.opts.CertificateFile
	a.mu.RUnlock()

	if key == "" || cert == "" {
		return false
	}
	if _, err := os.Stat(key); err != nil {
		return false
	}
	_, err := os.Stat(cert)
	return err == nil
}

// String returns a summary of the account with the secret key redacted.
func (a *Account) String() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	secret := ""
	if a.creds.SecretKey != "" {
		secret = "****"
	}
	return fmt.Sprintf("[%s]: accessKey=%s, secretKey=%s, userId=%s, certFile=%s, privateKey=%s",
		a.creds.AccountName, a.creds.AccessKey, secret,
		a.opts.UserID, a.opts.CertificateFile, a.opts.PrivateKeyFile)
}
