package storage

import (
	"errors"
	"fmt"
	"sync"
)

// A Factory creates a new storage backend of its type.
type Factory func(name, location string) (Interface, error)

var (
	storages     = make(map[string]Factory)
	storagesLock sync.Mutex
)

// Register registers a new storage type. Backends call this from their init
// function.
func Register(storageType string, factory Factory) error {
	storagesLock.Lock()
	defer storagesLock.Unlock()

	_, ok := storages[storageType]
	if ok {
		return errors.New("factory for this storage type already exists")
	}

	storages[storageType] = factory
	return nil
}

// StartDatabase starts a new storage backend of the given type with the
// given name at location.
func StartDatabase(name, storageType, location string) (Interface, error) {
	storagesLock.Lock()
	defer storagesLock.Unlock()

	factory, ok := storages[storageType]
	if !ok {
		return nil, fmt.Errorf("storage of this type (%s) does not exist", storageType)
	}

	return factory(name, location)
}
