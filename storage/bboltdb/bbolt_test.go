package bboltdb

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sonicjhon1/lupabase/storage"
)

type testEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestBBolt(t *testing.T) {
	dir := t.TempDir()

	db, err := NewBBolt("test", dir)
	if err != nil {
		t.Fatal(err)
	}

	_, err = db.Get("entries")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	stored := []testEntry{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}
	err = storage.Store(db, "entries", stored)
	if err != nil {
		t.Fatal(err)
	}

	var loaded []testEntry
	err = storage.Retrieve(db, "entries", &loaded)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(stored, loaded) {
		t.Fatalf("mismatch, got %v", loaded)
	}

	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	// data survives a reopen
	db, err = NewBBolt("test", dir)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	loaded = nil
	err = storage.Retrieve(db, "entries", &loaded)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(stored, loaded) {
		t.Fatalf("mismatch after reopen, got %v", loaded)
	}

	exists, err := db.Exists("missing")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("missing path should not exist")
	}
}
