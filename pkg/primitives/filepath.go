package primitives

import (
	"hash/fnv"
	"os"
	"path/filepath"
)

// Filepath is a type-safe wrapper around the file paths used throughout the
// storage layer: heap file paths, the handful of string paths a page.Store
// catalog holds. It exists to keep those call sites from passing around
// bare strings that could be mistaken for anything else.
type Filepath string

// Hash generates a TableID from the file path using FNV-1a hashing. Identity
// of a table is the hash of its absolute filesystem path, so two page.Stores
// opened against the same path agree on a table's identity without a shared
// registry.
//
// Example:
//
//	tablePath := primitives.Filepath("/data/users.dat")
//	tableID := tablePath.Hash()
func (f Filepath) Hash() TableID {
	h := fnv.New64a()
	h.Write([]byte(f))
	return TableID(h.Sum64())
}

// String converts the Filepath to a standard string.
func (f Filepath) String() string {
	return string(f)
}

// Join concatenates path elements to this path and returns a new Filepath.
//
// Example:
//
//	dataDir := primitives.Filepath("/data")
//	tablePath := dataDir.Join("tables", "users.dat")
//	// Returns Filepath("/data/tables/users.dat")
func (f Filepath) Join(elem ...string) Filepath {
	parts := append([]string{string(f)}, elem...)
	return Filepath(filepath.Join(parts...))
}

// Exists checks whether the file exists on the filesystem.
func (f Filepath) Exists() bool {
	_, err := os.Stat(string(f))
	return err == nil
}

// Remove deletes the file from the filesystem. Idempotent: succeeds if the
// file doesn't exist.
func (f Filepath) Remove() error {
	if !f.Exists() {
		return nil
	}
	return os.Remove(string(f))
}

// IsEmpty checks whether the filepath is an empty string.
//
// Example:
//
//	path := primitives.Filepath("")
//	if path.IsEmpty() {
//	    return errors.New("filepath cannot be empty")
//	}
func (f Filepath) IsEmpty() bool {
	return string(f) == ""
}
