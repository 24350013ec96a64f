package primitives

import (
	"path/filepath"
	"testing"
)

func TestFilepathString(t *testing.T) {
	path := Filepath("/data/users.dat")
	if path.String() != "/data/users.dat" {
		t.Errorf("expected '/data/users.dat', got '%s'", path.String())
	}
}

func TestFilepathJoin(t *testing.T) {
	base := Filepath("/data")
	result := base.Join("tables", "users.dat")
	expected := filepath.Join("/data", "tables", "users.dat")
	if result.String() != expected {
		t.Errorf("expected '%s', got '%s'", expected, result.String())
	}
}

func TestFilepathIsEmpty(t *testing.T) {
	if !Filepath("").IsEmpty() {
		t.Error("empty filepath should report IsEmpty")
	}
	if Filepath("/data/users.dat").IsEmpty() {
		t.Error("non-empty filepath should not report IsEmpty")
	}
}

func TestFilepathHashIsStableAndPathSensitive(t *testing.T) {
	a1 := Filepath("/data/users.dat")
	a2 := Filepath("/data/users.dat")
	b := Filepath("/data/orders.dat")

	if a1.Hash() != a2.Hash() {
		t.Error("identical paths must hash to the same TableID")
	}
	if a1.Hash() == b.Hash() {
		t.Error("distinct paths should (overwhelmingly likely) hash to distinct TableIDs")
	}
}

func TestFilepathExistsAndRemove(t *testing.T) {
	dir := t.TempDir()
	path := Filepath(filepath.Join(dir, "table.dat"))

	if path.Exists() {
		t.Fatal("path should not exist before creation")
	}
	if err := path.Remove(); err != nil {
		t.Errorf("removing a nonexistent file should be a no-op, got %v", err)
	}
}
