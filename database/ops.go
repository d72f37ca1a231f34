package database

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/sonicjhon1/lupabase/log"
	"github.com/sonicjhon1/lupabase/record"
	"github.com/sonicjhon1/lupabase/storage"
)

// partitionOf returns the default storage path of a partitioned record type.
func partitionOf[T record.Partitioned]() string {
	var zero T
	return zero.Partition()
}

// load reads and decodes the full collection at path.
func load[T record.Record](db *Database, path string) ([]T, error) {
	data, err := db.getRaw(path)
	if err != nil {
		return nil, wrapNotFound(err, path)
	}

	var records []T
	err = storage.Decode(db.storage, path, data, &records)
	if err != nil {
		db.evict(path)
		return nil, err
	}
	return records, nil
}

// save encodes and writes the full collection at path.
func save[T record.Record](db *Database, path string, records []T) error {
	data, err := db.storage.Codec().Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", storage.ErrSerialization, path, err)
	}
	return db.putRaw(path, data)
}

// indexByKey returns the position of the first record whose unique key
// equals key, or -1.
func indexByKey[T record.Record](records []T, key interface{}) int {
	for i, r := range records {
		if r.UniqueKey() == key {
			return i
		}
	}
	return -1
}

// Initialize creates the collection of T's partition with defaultRecords if
// the partition does not exist yet. If it already exists, its contents are
// validated and left untouched.
func Initialize[T record.Partitioned](db *Database, defaultRecords []T) error {
	return InitializeWithPath(db, partitionOf[T](), defaultRecords)
}

// InitializeWithPath creates the collection at path with defaultRecords if
// the path does not exist yet. If it already exists, its contents are
// validated and left untouched.
func InitializeWithPath[T record.Record](db *Database, path string, defaultRecords []T) error {
	data, err := db.getRaw(path)
	switch {
	case err == nil:
		var current []T
		err = storage.Decode(db.storage, path, data, &current)
		if err != nil {
			db.evict(path)
			return err
		}
		log.Tracef("database: %s already holds %s, leaving it untouched", db.name, path)
		return nil

	case errors.Is(err, storage.ErrNotFound):
		log.Warningf("database: couldn't find %s, populating %s with defaults", path, db.name)
		return save(db, path, defaultRecords)

	default:
		return err
	}
}

// GetAll returns the full collection of T's partition.
func GetAll[T record.Partitioned](db *Database) ([]T, error) {
	return GetAllWithPath[T](db, partitionOf[T]())
}

// GetAllWithPath returns the full collection at path.
func GetAllWithPath[T record.Record](db *Database, path string) ([]T, error) {
	return load[T](db, path)
}

// Insert writes newRecord into T's partition. If a record with the same
// unique key exists it is replaced in place, otherwise the record is
// appended. Fails if the partition was never initialized.
func Insert[T record.Partitioned](db *Database, newRecord T) error {
	return InsertWithPath(db, newRecord.Partition(), newRecord)
}

// InsertWithPath writes newRecord into the collection at path, replacing by
// unique key or appending. Fails if the path was never initialized.
func InsertWithPath[T record.Record](db *Database, path string, newRecord T) error {
	return InsertAllWithPath(db, path, []T{newRecord})
}

// InsertAll writes every record into T's partition with Insert semantics,
// persisting the collection once.
func InsertAll[T record.Partitioned](db *Database, newRecords []T) error {
	return InsertAllWithPath(db, partitionOf[T](), newRecords)
}

// InsertAllWithPath writes every record into the collection at path with
// Insert semantics, persisting the collection once.
func InsertAllWithPath[T record.Record](db *Database, path string, newRecords []T) error {
	records, err := load[T](db, path)
	if err != nil {
		return err
	}

	for _, r := range newRecords {
		if i := indexByKey(records, r.UniqueKey()); i >= 0 {
			records[i] = r
		} else {
			records = append(records, r)
		}
	}
	return save(db, path, records)
}

// Update replaces the record with updatedRecord's unique key in T's
// partition. Fails with ErrUnknownKey if no such record exists.
func Update[T record.Partitioned](db *Database, updatedRecord T) error {
	return UpdateWithPath(db, updatedRecord.Partition(), updatedRecord)
}

// UpdateWithPath replaces the record with updatedRecord's unique key in the
// collection at path. Fails with ErrUnknownKey if no such record exists.
func UpdateWithPath[T record.Record](db *Database, path string, updatedRecord T) error {
	return UpdateAllWithPath(db, path, []T{updatedRecord})
}

// UpdateAll replaces every matching record in T's partition. Fails with
// ErrUnknownKey if any key is not present; nothing is written in that case.
func UpdateAll[T record.Partitioned](db *Database, updatedRecords []T) error {
	return UpdateAllWithPath(db, partitionOf[T](), updatedRecords)
}

// UpdateAllWithPath replaces every matching record in the collection at
// path. Fails with ErrUnknownKey if any key is not present; nothing is
// written in that case.
func UpdateAllWithPath[T record.Record](db *Database, path string, updatedRecords []T) error {
	records, err := load[T](db, path)
	if err != nil {
		return err
	}

	missing := record.Difference(updatedRecords, records)
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrUnknownKey, path, spew.Sprintf("%v", record.Uniques(missing)))
	}

	for _, ur := range updatedRecords {
		records[indexByKey(records, ur.UniqueKey())] = ur
	}
	return save(db, path, records)
}

// ReplaceAll swaps T's partition for the provided collection.
func ReplaceAll[T record.Partitioned](db *Database, replacedRecords []T) error {
	return ReplaceAllWithPath(db, partitionOf[T](), replacedRecords)
}

// ReplaceAllWithPath swaps the collection at path for the provided records,
// initializing the path if it did not exist. Fails with ErrDuplicateKey if
// the provided records share a unique key.
func ReplaceAllWithPath[T record.Record](db *Database, path string, replacedRecords []T) error {
	seen := make(map[interface{}]struct{}, len(replacedRecords))
	for _, r := range replacedRecords {
		key := r.UniqueKey()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s: %s", ErrDuplicateKey, path, spew.Sprintf("%v", key))
		}
		seen[key] = struct{}{}
	}

	return save(db, path, replacedRecords)
}
