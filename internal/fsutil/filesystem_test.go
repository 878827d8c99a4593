package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_CreateMakesParents(t *testing.T) {
	fsys := OSFileSystem{}
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")

	w, err := fsys.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := io.WriteString(w, "hello"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want hello", data)
	}

	r, err := fsys.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	got, _ := io.ReadAll(r)
	if string(got) != "hello" {
		t.Errorf("Open content = %q", got)
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	m := NewMemoryFileSystem()
	m.WriteFile("dir/../in.json", []byte(`{}`))

	data, err := m.ReadFile("in.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{}` {
		t.Errorf("content = %q", data)
	}

	data[0] = 'x'
	again, _ := m.ReadFile("in.json")
	if string(again) != `{}` {
		t.Error("ReadFile should return a copy")
	}
}

func TestMemoryFileSystem_CreateVisibleOnClose(t *testing.T) {
	m := NewMemoryFileSystem()
	w, err := m.Create("out/series.json")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, _ = io.WriteString(w, "partial")

	if data, _ := m.ReadFile("out/series.json"); len(data) != 0 {
		t.Errorf("data visible before close: %q", data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := m.ReadFile("out/series.json")
	if err != nil || string(data) != "partial" {
		t.Errorf("after close: %q, %v", data, err)
	}

	names := m.Names()
	if len(names) != 1 || names[0] != filepath.Clean("out/series.json") {
		t.Errorf("Names() = %v", names)
	}
}

func TestMemoryFileSystem_Missing(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := m.Open("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open: expected ErrNotExist, got %v", err)
	}
	if _, err := m.ReadFile("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile: expected ErrNotExist, got %v", err)
	}
}

var _ FileSystem = OSFileSystem{}
var _ FileSystem = (*MemoryFileSystem)(nil)
