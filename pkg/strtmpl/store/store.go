// Package store persists template definition documents by name.
package store

import (
	"errors"
	"time"
)

// Store persists definition documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the document for name, replacing any previous version.
	// The first save assigns a stable ID; each save increments Version.
	Save(name string, data []byte) (Info, error)

	// Load retrieves the latest document for name.
	// Returns ErrNotFound if no document is stored under name.
	Load(name string) ([]byte, error)

	// Stat returns the metadata for name without loading the document.
	// Returns ErrNotFound if no document is stored under name.
	Stat(name string) (Info, error)

	// List returns metadata for every stored document, ordered by name.
	// Returns an empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes the document for name.
	// Returns nil if nothing is stored under name.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the document.
type Info struct {
	ID        string
	Name      string
	Version   int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no document is stored under a name.
	ErrNotFound = errors.New("definition not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("definition store closed")

	// ErrEmptyName indicates Save was called without a name.
	ErrEmptyName = errors.New("definition name is empty")
)
