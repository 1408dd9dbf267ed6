package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// ensureDir creates path unless a directory already exists there. It
// reports whether it created anything. The parent must exist.
func ensureDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", path)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := os.Mkdir(path, dirPerm); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", path, err)
	}
	return true, nil
}

// ensureFile writes content to path unless something already exists there.
// It reports whether it wrote the file.
func ensureFile(path string, content []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	// A partial file would be kept by later runs, so it goes on failure.
	if err := writeContent(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, fmt.Errorf("closing %s: %w", path, err)
	}
	return true, nil
}

var writeContent = func(f *os.File, content []byte) error {
	_, err := f.Write(content)
	return err
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
