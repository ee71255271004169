package store

import (
	"io"
	"sync"
)

// Memory is an in-memory EEPROM image. It counts physical writes so callers
// can check write wear.
type Memory struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

// NewMemory returns an erased (0xFF) image of size bytes.
func NewMemory(size int) *Memory {
	data := make([]byte, size)
	for i := range data {
		data[i] = 0xFF
	}
	return &Memory{data: data}
}

// ReadAt implements io.ReaderAt.
func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt.
func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if off+int64(len(p)) > int64(len(m.data)) {
		return 0, io.ErrShortWrite
	}
	m.writes++
	return copy(m.data[off:], p), nil
}

// Writes returns the number of physical writes so far.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
