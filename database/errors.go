package database

import "errors"

// Errors for database operations.
var (
	// ErrNotInitialized means the operation addressed a storage path that
	// was never initialized.
	ErrNotInitialized = errors.New("storage path not initialized")

	// ErrUnknownKey means an update addressed a record whose unique key
	// is not present in the collection.
	ErrUnknownKey = errors.New("no record with this unique key")

	// ErrDuplicateKey means the supplied records contain the same unique
	// key more than once.
	ErrDuplicateKey = errors.New("duplicate unique key in records")

	// ErrClosed means the database handle was closed.
	ErrClosed = errors.New("database is closed")

	// ErrTransactionDone means commit or rollback was called on an
	// already finalized transaction.
	ErrTransactionDone = errors.New("transaction already finalized")
)
