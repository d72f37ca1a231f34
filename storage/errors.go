package storage

import "errors"

// Errors for storage backends.
var (
	// ErrNotFound means the storage path holds no value.
	ErrNotFound = errors.New("storage path not found")

	// ErrCorrupt means the stored bytes could not be decoded as the
	// requested type.
	ErrCorrupt = errors.New("stored value corrupt")

	// ErrSerialization means a value could not be encoded for storage.
	ErrSerialization = errors.New("value could not be serialized")

	// ErrIO means the underlying read or write to persistent storage
	// failed.
	ErrIO = errors.New("storage io failure")

	// ErrInvalidPath means the storage path is malformed or escapes the
	// backend's root.
	ErrInvalidPath = errors.New("invalid storage path")
)
