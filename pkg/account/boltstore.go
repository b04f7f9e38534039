package account

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketCredentials = []byte("credentials") // ID -> Credentials JSON
	bucketOptions     = []byte("options")     // ID -> Options JSON
)

// boltStore implements Store using BoltDB.
type boltStore struct {
	db     *bolt.DB
	mu     sync.RWMutex
	closed bool
}

// NewBoltStore creates a BoltDB-based account store.
//
// Parameters:
//   - db: BoltDB database instance
//
// Returns:
//   - Configured Store
//   - Error if bucket initialization fails
func NewBoltStore(db *bolt.DB) (Store, error) {
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCredentials); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketOptions)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create account buckets: %w", err)
	}

	return &boltStore{
		db: db,
	}, nil
}

// OpenBoltStore opens (creating if necessary) the database file at path
// and returns a store over it. Close releases the database.
func OpenBoltStore(path string) (Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open account database %s: %w", path, err)
	}

	s, err := NewBoltStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// LoadCredentials implements CredentialsStore.LoadCredentials.
func (s *boltStore) LoadCredentials(id string) (Credentials, bool, error) {
	var c Credentials
	found, err := s.load(bucketCredentials, id, &c)
	return c, found, err
}

// SaveCredentials implements CredentialsStore.SaveCredentials.
func (s *boltStore) SaveCredentials(id string, c Credentials) error {
	return s.save(bucketCredentials, id, c)
}

// DeleteCredentials implements CredentialsStore.DeleteCredentials.
func (s *boltStore) DeleteCredentials(id string) error {
	return s.delete(bucketCredentials, id)
}

// LoadOptions implements OptionsStore.LoadOptions.
func (s *boltStore) LoadOptions(id string) (Options, bool, error) {
	var o Options
	found, err := s.load(bucketOptions, id, &o)
	return o, found, err
}

// SaveOptions implements OptionsStore.SaveOptions.
func (s *boltStore) SaveOptions(id string, o Options) error {
	return s.save(bucketOptions, id, o)
}

// DeleteOptions implements OptionsStore.DeleteOptions.
func (s *boltStore) DeleteOptions(id string) error {
	return s.delete(bucketOptions, id)
}

// List implements Store.List. An account is listed if either section
// has a record.
func (s *boltStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	seen := make(map[string]bool)
	err := s.db.View(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCredentials, bucketOptions} {
			b := tx.Bucket(bucket)
			if err := b.ForEach(func(k, _ []byte) error {
				seen[string(k)] = true
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close implements Store.Close.
func (s *boltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close account database: %w", err)
	}
	return nil
}

func (s *boltStore) load(bucket []byte, id string, out interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(id))
		if data == nil {
			return nil
		}
		if unmarshalErr := json.Unmarshal(data, out); unmarshalErr != nil {
			return fmt.Errorf("failed to unmarshal record: %w", unmarshalErr)
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *boltStore) save(bucket []byte, id string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(id), data)
	})
}

func (s *boltStore) delete(bucket []byte, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(id))
	})
}
