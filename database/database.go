// Package database provides typed record operations and snapshot-based
// transactions on top of a storage backend.
//
// A Database is an owning handle to exactly one backend. Record operations
// are generic package-level functions: types implementing record.Partitioned
// can use the short forms, types only implementing record.Record must use the
// WithPath variants.
package database

import (
	"errors"
	"fmt"

	"github.com/bluele/gcache"
	"github.com/tevino/abool"

	"github.com/sonicjhon1/lupabase/storage"
)

// Options configure a Database handle.
type Options struct {
	// CacheSize, if greater than zero, enables an in-memory read cache
	// holding the serialized collections of up to CacheSize paths. The
	// cache assumes all writes to the backend go through this handle.
	CacheSize int
}

// Database is an owning handle to one storage backend.
type Database struct {
	name    string
	storage storage.Interface
	cache   gcache.Cache
	closed  *abool.AtomicBool
}

// New creates a database handle with the given name on top of s. opts may be
// nil.
func New(name string, s storage.Interface, opts *Options) *Database {
	db := &Database{
		name:    name,
		storage: s,
		closed:  abool.New(),
	}
	if opts != nil && opts.CacheSize > 0 {
		db.cache = gcache.New(opts.CacheSize).LRU().Build()
	}
	return db
}

// Open creates a database handle on a newly started backend of the given
// registered storage type at location. opts may be nil.
func Open(name, storageType, location string, opts *Options) (*Database, error) {
	s, err := storage.StartDatabase(name, storageType, location)
	if err != nil {
		return nil, fmt.Errorf("database: failed to start storage %s: %w", storageType, err)
	}
	return New(name, s, opts), nil
}

// Name returns the database name.
func (db *Database) Name() string {
	return db.name
}

// Storage returns the underlying storage backend.
func (db *Database) Storage() storage.Interface {
	return db.storage
}

// Initialized reports whether path already holds a collection.
func (db *Database) Initialized(path string) (bool, error) {
	if db.closed.IsSet() {
		return false, ErrClosed
	}
	return db.storage.Exists(path)
}

// Close closes the underlying storage backend. Further operations on the
// handle return ErrClosed. Closing twice is a no-op.
func (db *Database) Close() error {
	if !db.closed.SetToIf(false, true) {
		return nil
	}
	if db.cache != nil {
		db.cache.Purge()
	}
	return db.storage.Close()
}

// getRaw returns the serialized value at path, consulting the read cache
// first. The returned bytes must not be modified.
func (db *Database) getRaw(path string) ([]byte, error) {
	if db.closed.IsSet() {
		return nil, ErrClosed
	}

	if db.cache != nil {
		cached, err := db.cache.Get(path)
		if err == nil {
			return cached.([]byte), nil
		}
	}

	data, err := db.storage.Get(path)
	if err != nil {
		return nil, err
	}

	if db.cache != nil {
		_ = db.cache.Set(path, data)
	}
	return data, nil
}

// putRaw writes the serialized value at path and keeps the read cache in
// sync.
func (db *Database) putRaw(path string, data []byte) error {
	if db.closed.IsSet() {
		return ErrClosed
	}

	err := db.storage.Put(path, data)
	if err != nil {
		if db.cache != nil {
			db.cache.Remove(path)
		}
		return err
	}

	if db.cache != nil {
		_ = db.cache.Set(path, data)
	}
	return nil
}

// evict removes path from the read cache, if one is configured.
func (db *Database) evict(path string) {
	if db.cache != nil {
		db.cache.Remove(path)
	}
}

// wrapNotFound converts the storage-level not-found error into the
// database-level not-initialized error.
func wrapNotFound(err error, path string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotInitialized, path)
	}
	return err
}
