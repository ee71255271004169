package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is an EEPROM image kept in a regular file. Every write is synced.
type File struct {
	f *os.File
}

// OpenFile opens or creates the image at path, creating parent directories.
func OpenFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}
	return &File{f: f}, nil
}

// ReadAt implements io.ReaderAt.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.f.ReadAt(p, off)
}

// WriteAt implements io.WriterAt.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	n, err := f.f.WriteAt(p, off)
	if err != nil {
		return n, err
	}
	return n, f.f.Sync()
}

// Close closes the file.
func (f *File) Close() error {
	return f.f.Close()
}
