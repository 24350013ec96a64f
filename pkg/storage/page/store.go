package page

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	dberr "latchdb/pkg/error"
	"latchdb/pkg/primitives"
)

// Store is the leaf of the storage stack: durable, byte-addressed page I/O
// against a catalog of table files. It knows nothing about transactions,
// locks, or caching — those are the coordinator's concerns.
//
// File handles are opened and closed per operation; Store holds no
// long-lived *os.File. This trades a little I/O overhead for a storage
// layer with no handle-lifecycle bugs and no behavior under concurrent
// Close/Read races.
type Store struct {
	mu     sync.RWMutex
	tables map[primitives.TableID]primitives.Filepath
}

// NewStore returns an empty Store. Tables are added with RegisterTable.
func NewStore() *Store {
	return &Store{tables: make(map[primitives.TableID]primitives.Filepath)}
}

// RegisterTable adds path to the catalog and returns its TableID, the hash
// of its absolute path. Registering the same path twice is idempotent and
// yields the same TableID both times.
func (s *Store) RegisterTable(path primitives.Filepath) (primitives.TableID, error) {
	if path.IsEmpty() {
		return 0, dberr.InvalidRequest("RegisterTable", "table path cannot be empty")
	}

	abs, err := filepath.Abs(string(path))
	if err != nil {
		return 0, dberr.Storage("RegisterTable", err)
	}
	path = primitives.Filepath(abs)
	id := path.Hash()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[id] = path
	return id, nil
}

func (s *Store) pathFor(tableID primitives.TableID) (primitives.Filepath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, ok := s.tables[tableID]
	if !ok {
		return "", dberr.InvalidRequest("pathFor", fmt.Sprintf("no table registered for id %d", tableID))
	}
	return path, nil
}

// NumPages reports the current extent of a table's file, in whole pages.
func (s *Store) NumPages(tableID primitives.TableID) (primitives.PageNumber, error) {
	path, err := s.pathFor(tableID)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(string(path))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, dberr.Storage("NumPages", err)
	}

	n := info.Size() / Size
	if info.Size()%Size != 0 {
		n++
	}
	return primitives.PageNumber(n), nil
}

// ReadPage reads the page named by id. If id.PageNo names a page beyond the
// file's current extent, the file is extended so that page id.PageNo exists,
// zero-filled, and an empty page image is returned; the table's page count
// becomes id.PageNo+1 (one more than before when id.PageNo is the first page
// past the extent).
func (s *Store) ReadPage(id ID) (*Page, error) {
	path, err := s.pathFor(id.TableID)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(string(path), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, dberr.Storage("ReadPage", err)
	}
	defer f.Close()

	numPages, err := extentOf(f)
	if err != nil {
		return nil, dberr.Storage("ReadPage", err)
	}

	if primitives.PageNumber(id.PageNo) >= numPages {
		if err := extend(f, id.PageNo); err != nil {
			return nil, dberr.Storage("ReadPage", err)
		}
		return New(id), nil
	}

	buf := make([]byte, Size)
	if _, err := f.ReadAt(buf, int64(id.PageNo)*Size); err != nil {
		return nil, dberr.Storage("ReadPage", err)
	}
	return NewFromBytes(id, buf), nil
}

// WritePage writes pg's image to the offset named by its identity. Truncate
// is never required: the file only ever grows.
func (s *Store) WritePage(pg *Page) error {
	path, err := s.pathFor(pg.ID().TableID)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(string(path), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return dberr.Storage("WritePage", err)
	}
	defer f.Close()

	if _, err := f.WriteAt(pg.Data(), int64(pg.ID().PageNo)*Size); err != nil {
		return dberr.Storage("WritePage", err)
	}
	return f.Sync()
}

func extentOf(f *os.File) (primitives.PageNumber, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	n := info.Size() / Size
	if info.Size()%Size != 0 {
		n++
	}
	return primitives.PageNumber(n), nil
}

// extend grows f so that page pageNo exists, zero-filled.
func extend(f *os.File, pageNo primitives.PageNumber) error {
	zero := make([]byte, Size)
	if _, err := f.WriteAt(zero, int64(pageNo)*Size); err != nil {
		return err
	}
	return f.Sync()
}
