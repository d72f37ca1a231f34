package database_test

import (
	"fmt"
	"testing"

	"github.com/sonicjhon1/lupabase/database"
	_ "github.com/sonicjhon1/lupabase/storage/bboltdb"
	_ "github.com/sonicjhon1/lupabase/storage/fsfile"
	_ "github.com/sonicjhon1/lupabase/storage/hashmap"
)

// User is partitioned: it carries its own default storage path.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (u User) UniqueKey() interface{} {
	return u.ID
}

func (u User) Partition() string {
	return "users"
}

// Note is only unique-keyed, every operation must supply an explicit path.
type Note struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

func (n Note) UniqueKey() interface{} {
	return n.ID
}

var storageTypes = []string{"hashmap", "jsonfile", "cborfile", "yamlfile", "bbolt"}

// forEachBackend runs fn against a fresh database of every storage type.
func forEachBackend(t *testing.T, fn func(t *testing.T, db *database.Database)) {
	t.Helper()

	for _, storageType := range storageTypes {
		storageType := storageType
		t.Run(storageType, func(t *testing.T) {
			db, err := database.Open("Test", storageType, t.TempDir(), nil)
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = db.Close() }()

			fn(t, db)
		})
	}
}

func makeUsers(n, offset int) []User {
	users := make([]User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, User{ID: offset + i, Name: fmt.Sprintf("user-%d", offset+i)})
	}
	return users
}
