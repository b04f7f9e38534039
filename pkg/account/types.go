// Package account provides the mutable account-settings model for credwatch.
//
// An Account carries an immutable internal ID and two independent
// configuration sections: credentials (account name, access key, secret
// key) and options (user ID, key and certificate file paths). Sections
// persist through separate stores, so different backends can serve each.
//
// Every setter compares the old and new value and only mutates and
// notifies subscribed listeners when they differ.
package account

// Credentials holds the credential-related settings of an account.
type Credentials struct {
	AccountName string `json:"account_name"`
	AccessKey   string `json:"access_key"`
	SecretKey   string `json:"secret_key"`
}

// Options holds the optional settings of an account.
type Options struct {
	UserID          string `json:"user_id"`
	PrivateKeyFile  string `json:"private_key_file"`
	CertificateFile string `json:"certificate_file"`
}

// Field names carried by Change events.
const (
	FieldAccountName     = "account_name"
	FieldAccessKey       = "access_key"
	FieldSecretKey       = "secret_key"
	FieldUserID          = "user_id"
	FieldPrivateKeyFile  = "private_key_file"
	FieldCertificateFile = "certificate_file"
)

// Change describes a single mutation of an account field.
type Change struct {
	// Account is the internal ID of the mutated account.
	Account string

	// Field is one of the Field* constants.
	Field string

	// Old is the value before the mutation.
	Old string

	// New is the value after the mutation.
	New string
}

// Listener receives change events for subscribed fields.
type Listener func(Change)

// CredentialsStore persists the credentials section of an account.
type CredentialsStore interface {
	// LoadCredentials returns the stored credentials for the account.
	// The boolean is false when no record exists.
	LoadCredentials(id string) (Credentials, bool, error)

	// SaveCredentials writes the credentials for the account.
	SaveCredentials(id string, c Credentials) error

	// DeleteCredentials removes the stored credentials for the account.
	// Deleting a missing record is not an error.
	DeleteCredentials(id string) error
}

// OptionsStore persists the options section of an account.
type OptionsStore interface {
	// LoadOptions returns the stored options for the account.
	// The boolean is false when no record exists.
	LoadOptions(id string) (Options, bool, error)

	// SaveOptions writes the options for the account.
	SaveOptions(id string, o Options) error

	// DeleteOptions removes the stored options for the account.
	// Deleting a missing record is not an error.
	DeleteOptions(id string) error
}

// Store combines both section stores with enumeration and lifecycle.
type Store interface {
	CredentialsStore
	OptionsStore

	// List returns the IDs of all accounts with a stored record.
	List() ([]string, error)

	// Close releases the underlying storage.
	Close() error
}
