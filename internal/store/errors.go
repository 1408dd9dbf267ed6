package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by ConfigStore.Load when nothing has been saved.
var ErrNotFound = errors.New("no saved config")

// FileNotFoundError reports a config file that does not exist.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// IOError reports a failed read or write of a config file.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
