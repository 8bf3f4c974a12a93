// Package fileio writes rendered input files to disk.
package fileio

import (
	"fmt"
	"os"
)

// IOError wraps a filesystem failure with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// WriteFile creates or truncates path and writes text to it. The file is
// closed on every exit path.
func WriteFile(path, text string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, err := file.WriteString(text); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
