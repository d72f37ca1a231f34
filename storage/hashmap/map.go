// Package hashmap provides an in-memory storage backend. Data lives and dies
// with the backend instance and does not survive a process restart.
package hashmap

import (
	"sync"

	"github.com/sonicjhon1/lupabase/storage"
)

// HashMap storage. Values are kept in their serialized form so reads
// round-trip the exact bytes that were stored.
type HashMap struct {
	name   string
	db     map[string][]byte
	dbLock sync.RWMutex
}

func init() {
	_ = storage.Register("hashmap", NewHashMap)
}

// NewHashMap creates an in-memory backend. The location argument is ignored.
func NewHashMap(name, location string) (storage.Interface, error) {
	return &HashMap{
		name: name,
		db:   make(map[string][]byte),
	}, nil
}

// Name returns the backend name.
func (hm *HashMap) Name() string {
	return hm.name
}

// Codec returns the encoding values are stored in.
func (hm *HashMap) Codec() storage.Codec {
	return storage.CBOR
}

// Exists reports whether path holds a value.
func (hm *HashMap) Exists(path string) (bool, error) {
	hm.dbLock.RLock()
	defer hm.dbLock.RUnlock()

	_, ok := hm.db[path]
	return ok, nil
}

// Get returns the serialized value at path. The returned bytes must not be
// modified by the caller.
func (hm *HashMap) Get(path string) ([]byte, error) {
	hm.dbLock.RLock()
	defer hm.dbLock.RUnlock()

	data, ok := hm.db[path]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

// Put stores the serialized value at path.
func (hm *HashMap) Put(path string, data []byte) error {
	hm.dbLock.Lock()
	defer hm.dbLock.Unlock()

	hm.db[path] = data
	return nil
}

// Close is a no-op for the in-memory backend.
func (hm *HashMap) Close() error {
	return nil
}
