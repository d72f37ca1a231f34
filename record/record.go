// Package record defines the capabilities a type must provide in order to be
// stored in a database, plus utilities for working with collections of such
// records in memory.
package record

// Record is implemented by any type that can identify itself within a
// collection.
type Record interface {
	// UniqueKey returns the value that identifies this record within its
	// collection. The returned value must be comparable, must be derived
	// from the record alone and must not change over the record's
	// lifetime. Uniqueness across a collection is the caller's contract -
	// the store itself only guarantees last-write-wins per key.
	UniqueKey() interface{}
}

// Partitioned is a Record with a fixed default storage path.
//
// Types that only implement Record must use the WithPath variant of every
// database operation.
type Partitioned interface {
	Record

	// Partition returns the default storage path for records of this
	// type. It must return the same constant for every instance and must
	// be callable on the zero value.
	Partition() string
}
