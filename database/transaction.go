package database

import (
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/sonicjhon1/lupabase/log"
	"github.com/sonicjhon1/lupabase/record"
)

type txState uint8

const (
	txOpen txState = iota
	txCommitted
	txRolledBack
)

func (s txState) String() string {
	switch s {
	case txOpen:
		return "open"
	case txCommitted:
		return "committed"
	case txRolledBack:
		return "rolled back"
	default:
		return "invalid"
	}
}

// Transaction provides rollback safety for one storage path.
//
// It holds a snapshot of the path's serialized bytes taken at Begin time.
// Mutations made through the database while the transaction is open are
// applied directly and visible to every reader - the transaction is an undo
// capability, not isolation. A single writer is assumed; a Transaction must
// not be shared across goroutines.
type Transaction struct {
	id       uuid.UUID
	db       *Database
	path     string
	snapshot []byte
	state    txState
}

// Begin starts a transaction on path, capturing the path's current
// serialized state as the snapshot. Fails if the path was never initialized.
func (db *Database) Begin(path string) (*Transaction, error) {
	data, err := db.getRaw(path)
	if err != nil {
		return nil, wrapNotFound(err, path)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("database: failed to generate transaction id: %w", err)
	}

	// The cache may hand out the live byte slice, snapshot a copy.
	snapshot := make([]byte, len(data))
	copy(snapshot, data)

	log.Debugf("database: transaction %s started on %s", id, path)
	return &Transaction{
		id:       id,
		db:       db,
		path:     path,
		snapshot: snapshot,
		state:    txOpen,
	}, nil
}

// BeginPartition starts a transaction on T's partition.
func BeginPartition[T record.Partitioned](db *Database) (*Transaction, error) {
	return db.Begin(partitionOf[T]())
}

// ID returns the transaction's id.
func (tx *Transaction) ID() uuid.UUID {
	return tx.id
}

// Path returns the storage path the transaction guards.
func (tx *Transaction) Path() string {
	return tx.path
}

// Commit finalizes the transaction, making whatever state the backend is in
// permanent. No data is moved. Committing an already finalized transaction
// fails with ErrTransactionDone.
func (tx *Transaction) Commit() error {
	if tx.state != txOpen {
		return fmt.Errorf("%w: cannot commit %s transaction %s", ErrTransactionDone, tx.state, tx.id)
	}

	tx.state = txCommitted
	tx.snapshot = nil
	log.Debugf("database: transaction %s committed on %s", tx.id, tx.path)
	return nil
}

// Rollback writes the snapshot back to the path, discarding every mutation
// made since Begin. If the underlying write fails, the transaction stays
// open and Rollback may be retried. Rolling back an already finalized
// transaction fails with ErrTransactionDone.
func (tx *Transaction) Rollback() error {
	if tx.state != txOpen {
		return fmt.Errorf("%w: cannot roll back %s transaction %s", ErrTransactionDone, tx.state, tx.id)
	}

	err := tx.db.putRaw(tx.path, tx.snapshot)
	if err != nil {
		return fmt.Errorf("database: rollback of transaction %s on %s failed: %w", tx.id, tx.path, err)
	}

	tx.state = txRolledBack
	tx.snapshot = nil
	log.Debugf("database: transaction %s rolled back on %s", tx.id, tx.path)
	return nil
}
