package store_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl/store"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "templates.db")

	store1, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	saved, err := store1.Save("greeting", []byte("persistent"))
	require.NoError(t, err)
	require.NoError(t, store1.Close())

	// reopen
	store2, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	data, err := store2.Load("greeting")
	require.NoError(t, err)
	assert.Equal(t, []byte("persistent"), data)

	info, err := store2.Stat("greeting")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, info.ID)
	assert.Equal(t, saved.Version, info.Version)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save("a", []byte("a"))
	require.NoError(t, err)
	_, err = s.Save("b", []byte("b"))
	require.NoError(t, err)

	infos, err := s.List()
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := store.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestSQLiteStore_CorruptTimestamp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "templates.db")

	s, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	saved, err := s.Save("greeting", []byte("hello"))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), saved.Timestamp, time.Minute)

	raw, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = raw.Exec(`UPDATE definitions SET timestamp = 'yesterday' WHERE name = ?`, "greeting")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	_, err = s.Stat("greeting")
	var parseErr *time.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "greeting")

	_, err = s.List()
	require.ErrorAs(t, err, &parseErr)

	// data is still readable and a new save repairs the row
	data, err := s.Load("greeting")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	info, err := s.Save("greeting", []byte("hello again"))
	require.NoError(t, err)
	assert.Equal(t, 2, info.Version)

	_, err = s.Stat("greeting")
	assert.NoError(t, err)
}
