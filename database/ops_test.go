package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonicjhon1/lupabase/database"
	"github.com/sonicjhon1/lupabase/storage/hashmap"
)

func TestScenario(t *testing.T) {
	s, err := hashmap.NewHashMap("Test", "")
	require.NoError(t, err)
	db := database.New("Test", s, nil)

	defaults := []User{
		{ID: 0, Name: "Alice"},
		{ID: 1, Name: "Bob"},
	}
	require.NoError(t, database.Initialize(db, defaults))

	users, err := database.GetAll[User](db)
	require.NoError(t, err)
	assert.Equal(t, defaults, users)

	require.NoError(t, database.InitializeWithPath(db, "custom_path", []User{}))
	require.NoError(t, database.InsertWithPath(db, "custom_path", User{ID: 2, Name: "Lupa"}))

	custom, err := database.GetAllWithPath[User](db, "custom_path")
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, 2, custom[0].ID)

	// the default partition is untouched by the custom path
	users, err = database.GetAll[User](db)
	require.NoError(t, err)
	assert.Equal(t, defaults, users)
}

func TestInitializeIsIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *database.Database) {
		first := makeUsers(2, 0)
		require.NoError(t, database.Initialize(db, first))

		// a second initialize with different defaults must not win
		require.NoError(t, database.Initialize(db, makeUsers(5, 100)))

		users, err := database.GetAll[User](db)
		require.NoError(t, err)
		assert.Equal(t, first, users)

		ok, err := db.Initialized("users")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInsertReplaceByKey(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *database.Database) {
		require.NoError(t, database.Initialize(db, makeUsers(3, 0)))

		// new key appends
		require.NoError(t, database.Insert(db, User{ID: 3, Name: "new"}))
		users, err := database.GetAll[User](db)
		require.NoError(t, err)
		require.Len(t, users, 4)
		assert.Equal(t, User{ID: 3, Name: "new"}, users[3])

		// existing key replaces in place
		require.NoError(t, database.Insert(db, User{ID: 1, Name: "replaced"}))
		users, err = database.GetAll[User](db)
		require.NoError(t, err)
		require.Len(t, users, 4)
		assert.Equal(t, User{ID: 1, Name: "replaced"}, users[1])
		assert.Equal(t, 0, users[0].ID)
		assert.Equal(t, 2, users[2].ID)
	})
}

func TestInsertRequiresInitialization(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *database.Database) {
		err := database.Insert(db, User{ID: 1, Name: "orphan"})
		assert.ErrorIs(t, err, database.ErrNotInitialized)

		_, err = database.GetAll[User](db)
		assert.ErrorIs(t, err, database.ErrNotInitialized)
	})
}

func TestInsertAll(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *database.Database) {
		require.NoError(t, database.Initialize(db, makeUsers(2, 0)))

		batch := []User{
			{ID: 1, Name: "replaced"},
			{ID: 5, Name: "appended"},
		}
		require.NoError(t, database.InsertAll(db, batch))

		users, err := database.GetAll[User](db)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "replaced", users[1].Name)
		assert.Equal(t, 5, users[2].ID)
	})
}

func TestUpdate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *database.Database) {
		require.NoError(t, database.Initialize(db, makeUsers(3, 0)))

		require.NoError(t, database.Update(db, User{ID: 1, Name: "updated"}))
		users, err := database.GetAll[User](db)
		require.NoError(t, err)
		assert.Equal(t, "updated", users[1].Name)

		// unknown key fails without writing
		err = database.Update(db, User{ID: 42, Name: "nobody"})
		assert.ErrorIs(t, err, database.ErrUnknownKey)
		users, err = database.GetAll[User](db)
		require.NoError(t, err)
		require.Len(t, users, 3)
	})
}

func TestUpdateAllOutOfOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *database.Database) {
		require.NoError(t, database.Initialize(db, makeUsers(3, 0)))

		updates := []User{
			{ID: 2, Name: "two"},
			{ID: 0, Name: "zero"},
			{ID: 1, Name: "one"},
		}
		require.NoError(t, database.UpdateAll(db, updates))

		users, err := database.GetAll[User](db)
		require.NoError(t, err)
		assert.Equal(t, []User{
			{ID: 0, Name: "zero"},
			{ID: 1, Name: "one"},
			{ID: 2, Name: "two"},
		}, users)

		// one unknown key fails the whole batch
		err = database.UpdateAll(db, []User{
			{ID: 0, Name: "again"},
			{ID: 9, Name: "missing"},
		})
		assert.ErrorIs(t, err, database.ErrUnknownKey)
		users, err = database.GetAll[User](db)
		require.NoError(t, err)
		assert.Equal(t, "zero", users[0].Name)
	})
}

func TestReplaceAll(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *database.Database) {
		require.NoError(t, database.Initialize(db, makeUsers(3, 0)))

		replacement := makeUsers(2, 10)
		require.NoError(t, database.ReplaceAll(db, replacement))

		users, err := database.GetAll[User](db)
		require.NoError(t, err)
		assert.Equal(t, replacement, users)

		err = database.ReplaceAll(db, []User{
			{ID: 7, Name: "a"},
			{ID: 7, Name: "b"},
		})
		assert.ErrorIs(t, err, database.ErrDuplicateKey)
	})
}

func TestPathlessRecords(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *database.Database) {
		require.NoError(t, database.InitializeWithPath(db, "notes", []Note{}))
		require.NoError(t, database.InsertWithPath(db, "notes", Note{ID: 1, Text: "hello"}))

		notes, err := database.GetAllWithPath[Note](db, "notes")
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "hello", notes[0].Text)
	})
}

func TestCachedReads(t *testing.T) {
	s, err := hashmap.NewHashMap("Test", "")
	require.NoError(t, err)
	db := database.New("Test", s, &database.Options{CacheSize: 32})

	require.NoError(t, database.Initialize(db, makeUsers(2, 0)))

	// repeated reads and a write-through must stay coherent
	for i := 0; i < 3; i++ {
		users, err := database.GetAll[User](db)
		require.NoError(t, err)
		require.Len(t, users, 2)
	}
	require.NoError(t, database.Insert(db, User{ID: 2, Name: "cached"}))
	users, err := database.GetAll[User](db)
	require.NoError(t, err)
	require.Len(t, users, 3)
}

func TestClosedHandle(t *testing.T) {
	db, err := database.Open("Test", "hashmap", "", nil)
	require.NoError(t, err)
	require.NoError(t, database.Initialize(db, makeUsers(1, 0)))

	require.NoError(t, db.Close())
	require.NoError(t, db.Close()) // idempotent

	_, err = database.GetAll[User](db)
	assert.ErrorIs(t, err, database.ErrClosed)
	err = database.Insert(db, User{ID: 9, Name: "late"})
	assert.ErrorIs(t, err, database.ErrClosed)
}

func TestOpenUnknownStorageType(t *testing.T) {
	_, err := database.Open("Test", "no-such-backend", "", nil)
	require.Error(t, err)
}
