// Package storage defines the contract every storage backend must satisfy
// and the codecs that translate values to and from a backend's encoding.
//
// A backend stores exactly one serialized value per storage path - typically
// an ordered collection of records, but the contract itself is value
// agnostic. Backends differ only in durability and encoding, never in
// semantics.
package storage

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/sonicjhon1/lupabase/log"
)

// Interface defines the raw storage backend API.
type Interface interface {
	// Name returns the name the backend was created with.
	Name() string

	// Codec returns the encoding this backend stores values in.
	Codec() Codec

	// Exists reports whether path currently holds a value.
	Exists(path string) (bool, error)

	// Get returns the raw serialized value at path. It returns
	// ErrNotFound if the path was never written to.
	Get(path string) ([]byte, error)

	// Put writes the raw serialized value at path, replacing any previous
	// value. The data must have been produced by this backend's codec.
	Put(path string, data []byte) error

	// Close releases any resources held by the backend.
	Close() error
}

// A Backer can save a copy of a path's current value aside, so it is not
// lost when the value is about to be overwritten or reported corrupt.
type Backer interface {
	// Backup copies the value at path to a backup location named after
	// reason and returns that location.
	Backup(path, reason string) (string, error)
}

// Store serializes v with the backend's codec and writes it at path.
func Store(s Interface, path string, v interface{}) error {
	data, err := s.Codec().Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrSerialization, path, err)
	}
	return s.Put(path, data)
}

// Retrieve reads the value at path and deserializes it into v, which must be
// a pointer. It returns ErrNotFound if the path holds no value and
// ErrCorrupt if the stored bytes cannot be decoded.
func Retrieve(s Interface, path string, v interface{}) error {
	data, err := s.Get(path)
	if err != nil {
		return err
	}
	return Decode(s, path, data, v)
}

// Decode deserializes data previously read from path into v. If decoding
// fails and the backend supports backups, the stored value is backed up
// before the error is returned, so a later write does not destroy the
// evidence.
func Decode(s Interface, path string, data []byte, v interface{}) error {
	err := s.Codec().Unmarshal(data, v)
	if err == nil {
		return nil
	}

	corrupt := fmt.Errorf("%w: %s: %s", ErrCorrupt, path, err)

	backer, ok := s.(Backer)
	if !ok {
		return corrupt
	}

	backupPath, backupErr := backer.Backup(path, "failed-decode")
	if backupErr != nil {
		return multierror.Append(corrupt, backupErr)
	}

	log.Warningf("storage: failed to decode %s, backed up to %s: %s", path, backupPath, err)
	return corrupt
}
