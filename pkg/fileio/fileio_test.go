package fileio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pw.in")

	if err := os.WriteFile(path, []byte("stale content that is longer"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := WriteFile(path, " &control\n /"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != " &control\n /" {
		t.Errorf("file content = %q, want truncated new content", got)
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "pw.in")

	err := WriteFile(path, "x")
	if err == nil {
		t.Fatal("WriteFile() error = nil, want error")
	}

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error %T is not *IOError", err)
	}
	if ioErr.Op != "create" || ioErr.Path != path {
		t.Errorf("IOError = %+v, want create on %s", ioErr, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(err, fs.ErrNotExist) = false for %v", err)
	}
}
