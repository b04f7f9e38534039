package account

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	t.Helper()

	store, err := OpenBoltStore(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	// Missing records load as not-found, without error.
	_, found, err := store.LoadCredentials("dev")
	require.NoError(t, err)
	assert.False(t, found)

	creds := Credentials{AccountName: "dev", AccessKey: "AK", SecretKey: "SK"}
	require.NoError(t, store.SaveCredentials("dev", creds))

	opts := Options{UserID: "u-1", PrivateKeyFile: "/keys/dev.pem"}
	require.NoError(t, store.SaveOptions("dev", opts))

	gotCreds, found, err := store.LoadCredentials("dev")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, creds, gotCreds)

	gotOpts, found, err := store.LoadOptions("dev")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, opts, gotOpts)
}

func TestBoltStoreDelete(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveCredentials("dev", Credentials{AccessKey: "AK"}))
	require.NoError(t, store.DeleteCredentials("dev"))

	_, found, err := store.LoadCredentials("dev")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing record is not an error.
	require.NoError(t, store.DeleteCredentials("ghost"))
	require.NoError(t, store.DeleteOptions("ghost"))
}

func TestBoltStoreList(t *testing.T) {
	store := openTestStore(t)

	ids, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.SaveCredentials("beta", Credentials{AccessKey: "b"}))
	require.NoError(t, store.SaveCredentials("alpha", Credentials{AccessKey: "a"}))
	// An account with only an options record still lists.
	require.NoError(t, store.SaveOptions("gamma", Options{UserID: "g"}))

	ids, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ids)
}

func TestBoltStoreClosed(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	_, _, err := store.LoadCredentials("dev")
	require.ErrorIs(t, err, ErrStoreClosed)

	require.ErrorIs(t, store.SaveCredentials("dev", Credentials{}), ErrStoreClosed)
	require.ErrorIs(t, store.DeleteOptions("dev"), ErrStoreClosed)

	_, err = store.List()
	require.ErrorIs(t, err, ErrStoreClosed)

	// Close is idempotent.
	require.NoError(t, store.Close())
}

func TestAccountWithBoltStore(t *testing.T) {
	store := openTestStore(t)

	acct, err := New("dev", store, store)
	require.NoError(t, err)

	acct.SetAccountName("dev")
	acct.SetAccessKey("AK")
	acct.SetSecretKey("SK")
	acct.SetUserID("u-1")
	require.NoError(t, acct.Save())

	// A second account instance over the same store sees the saved state.
	again, err := New("dev", store, store)
	require.NoError(t, err)
	assert.Equal(t, "AK", again.AccessKey())
	assert.Equal(t, "u-1", again.UserID())
	assert.True(t, again.Valid())
	assert.False(t, again.Dirty())
}
