package page

import (
	"path/filepath"
	"testing"

	"latchdb/pkg/primitives"
)

func tempTable(t *testing.T, name string) (*Store, primitives.TableID) {
	t.Helper()
	s := NewStore()
	path := primitives.Filepath(filepath.Join(t.TempDir(), name))
	id, err := s.RegisterTable(path)
	if err != nil {
		t.Fatalf("RegisterTable: %v", err)
	}
	return s, id
}

func TestRegisterTableRejectsEmptyPath(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterTable(""); err == nil {
		t.Error("registering an empty path should fail")
	}
}

func TestRegisterTableIsIdempotent(t *testing.T) {
	s := NewStore()
	path := primitives.Filepath(filepath.Join(t.TempDir(), "users.dat"))

	id1, err := s.RegisterTable(path)
	if err != nil {
		t.Fatalf("first RegisterTable: %v", err)
	}
	id2, err := s.RegisterTable(path)
	if err != nil {
		t.Fatalf("second RegisterTable: %v", err)
	}
	if id1 != id2 {
		t.Error("registering the same path twice should yield the same TableID")
	}
}

func TestReadPageBeyondExtentZeroFillsAndGrows(t *testing.T) {
	s, tableID := tempTable(t, "users.dat")

	n0, err := s.NumPages(tableID)
	if err != nil {
		t.Fatalf("NumPages: %v", err)
	}
	if n0 != 0 {
		t.Fatalf("expected an unbuilt file to report 0 pages, got %d", n0)
	}

	pg, err := s.ReadPage(ID{TableID: tableID, PageNo: 0})
	if err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	for _, b := range pg.Data() {
		if b != 0 {
			t.Fatal("reading beyond the extent should return a zero-filled page")
		}
	}

	n1, err := s.NumPages(tableID)
	if err != nil {
		t.Fatalf("NumPages after extend: %v", err)
	}
	if n1 != 1 {
		t.Errorf("expected the file to grow to 1 page, got %d", n1)
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	s, tableID := tempTable(t, "users.dat")
	id := ID{TableID: tableID, PageNo: 0}

	pg := New(id)
	pg.Data()[10] = 0x42

	if err := s.WritePage(pg); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	reread, err := s.ReadPage(id)
	if err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if reread.Data()[10] != 0x42 {
		t.Error("written byte did not survive a round trip through the store")
	}
}

func TestReadPageAgainstUnregisteredTableFails(t *testing.T) {
	s := NewStore()
	if _, err := s.ReadPage(ID{TableID: 999, PageNo: 0}); err == nil {
		t.Error("reading a page for an unregistered table should fail")
	}
}
