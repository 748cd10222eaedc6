package store_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/strtmpl/pkg/strtmpl/store"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) store.Store

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Save_and_Load", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		data := []byte("name: greeting\nparts: [Hello]\n")
		info, err := s.Save("greeting", data)
		require.NoError(t, err)
		assert.Equal(t, "greeting", info.Name)
		assert.Equal(t, 1, info.Version)
		assert.Equal(t, int64(len(data)), info.Size)
		assert.NotEmpty(t, info.ID)
		assert.False(t, info.Timestamp.IsZero())

		loaded, err := s.Load("greeting")
		require.NoError(t, err)
		assert.Equal(t, data, loaded)
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Load("absent")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Stat("absent")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run(name+"/Save_EmptyName", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Save("", []byte("x"))
		assert.ErrorIs(t, err, store.ErrEmptyName)
	})

	t.Run(name+"/Save_Overwrite_BumpsVersion", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		first, err := s.Save("greeting", []byte("first"))
		require.NoError(t, err)

		second, err := s.Save("greeting", []byte("second!"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 2, second.Version)
		assert.Equal(t, int64(7), second.Size)

		loaded, err := s.Load("greeting")
		require.NoError(t, err)
		assert.Equal(t, []byte("second!"), loaded)

		stat, err := s.Stat("greeting")
		require.NoError(t, err)
		assert.Equal(t, second.ID, stat.ID)
		assert.Equal(t, 2, stat.Version)
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		infos, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run(name+"/List_OrderedByName", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		for _, n := range []string{"weather", "profile", "greeting"} {
			_, err := s.Save(n, []byte(n))
			require.NoError(t, err)
		}

		infos, err := s.List()
		require.NoError(t, err)
		require.Len(t, infos, 3)
		assert.Equal(t, "greeting", infos[0].Name)
		assert.Equal(t, "profile", infos[1].Name)
		assert.Equal(t, "weather", infos[2].Name)
		assert.Equal(t, int64(len("profile")), infos[1].Size)
	})

	t.Run(name+"/Distinct_IDs", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		a, err := s.Save("a", []byte("a"))
		require.NoError(t, err)
		b, err := s.Save("b", []byte("b"))
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Save("greeting", []byte("x"))
		require.NoError(t, err)
		require.NoError(t, s.Delete("greeting"))

		_, err = s.Load("greeting")
		assert.ErrorIs(t, err, store.ErrNotFound)

		// deleting again is not an error
		assert.NoError(t, s.Delete("greeting"))

		info, err := s.Save("greeting", []byte("y"))
		require.NoError(t, err)
		assert.Equal(t, 1, info.Version, "version restarts after delete")
	})

	t.Run(name+"/Closed", func(t *testing.T) {
		s := factory(t)
		require.NoError(t, s.Close())

		_, err := s.Save("a", []byte("a"))
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		_, err = s.Load("a")
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		_, err = s.Stat("a")
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		_, err = s.List()
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		assert.ErrorIs(t, s.Delete("a"), store.ErrStoreClosed)
		assert.NoError(t, s.Close(), "double close is safe")
	})

	t.Run(name+"/Concurrent", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				n := fmt.Sprintf("tmpl-%d", i%3)
				_, err := s.Save(n, []byte(n))
				assert.NoError(t, err)
				_, err = s.Load(n)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		infos, err := s.List()
		require.NoError(t, err)
		require.Len(t, infos, 3)

		total := 0
		for _, info := range infos {
			total += info.Version
		}
		assert.Equal(t, 10, total)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContractTest(t, "MemoryStore", func(t *testing.T) store.Store {
		return store.NewMemoryStore()
	})
}

func TestSQLiteStore_Contract(t *testing.T) {
	storeContractTest(t, "SQLiteStore", func(t *testing.T) store.Store {
		s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "templates.db"))
		require.NoError(t, err)
		return s
	})
}

func TestMemoryStore_CopiesData(t *testing.T) {
	s := store.NewMemoryStore()
	data := []byte("original")
	_, err := s.Save("a", data)
	require.NoError(t, err)

	data[0] = 'X'
	loaded, err := s.Load("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), loaded)

	loaded[0] = 'Y'
	again, err := s.Load("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_TimestampAdvances(t *testing.T) {
	s := store.NewMemoryStore()
	first, err := s.Save("a", []byte("1"))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Save("a", []byte("2"))
	require.NoError(t, err)
	assert.True(t, second.Timestamp.After(first.Timestamp))
}
