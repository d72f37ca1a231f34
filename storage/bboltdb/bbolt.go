// Package bboltdb provides a storage backend on top of a single bbolt file.
// Storage paths map to keys in one bucket; values are CBOR encoded. Unlike
// the plain file backends, writes go through bbolt's own transactions and
// are crash safe.
package bboltdb

import (
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/sonicjhon1/lupabase/storage"
)

var bucketName = []byte{0}

// BBolt database made pluggable as a storage backend.
type BBolt struct {
	name string
	db   *bbolt.DB
}

func init() {
	_ = storage.Register("bbolt", NewBBolt)
}

// NewBBolt opens or creates a bbolt database at location.
func NewBBolt(name, location string) (storage.Interface, error) {
	db, err := bbolt.Open(filepath.Join(location, "db.bbolt"), 0o600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &BBolt{
		name: name,
		db:   db,
	}, nil
}

// Name returns the backend name.
func (b *BBolt) Name() string {
	return b.name
}

// Codec returns the encoding values are stored in.
func (b *BBolt) Codec() storage.Codec {
	return storage.CBOR
}

// Exists reports whether path holds a value.
func (b *BBolt) Exists(path string) (bool, error) {
	var exists bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket(bucketName).Get([]byte(path)) != nil
		return nil
	})
	return exists, err
}

// Get returns the serialized value at path.
func (b *BBolt) Get(path string) ([]byte, error) {
	var data []byte

	err := b.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket(bucketName).Get([]byte(path))
		if value == nil {
			return storage.ErrNotFound
		}

		// bbolt values are only valid within the view, copy.
		data = make([]byte, len(value))
		copy(data, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put stores the serialized value at path.
func (b *BBolt) Put(path string, data []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(path), data)
	})
}

// Close closes the underlying bbolt database.
func (b *BBolt) Close() error {
	return b.db.Close()
}
