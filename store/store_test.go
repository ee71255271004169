package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := New(NewMemory(8), 0)

	require.NoError(t, s.Save(true))
	open, err := s.Load()
	require.NoError(t, err)
	require.True(t, open)

	require.NoError(t, s.Save(false))
	open, err = s.Load()
	require.NoError(t, err)
	require.False(t, open)
}

func TestSaveSkipsUnchangedValue(t *testing.T) {
	t.Parallel()

	mem := NewMemory(8)
	s := New(mem, 3)

	require.NoError(t, s.Save(true))
	require.NoError(t, s.Save(true))
	require.Equal(t, 1, mem.Writes())

	require.NoError(t, s.Save(false))
	require.NoError(t, s.Save(false))
	require.Equal(t, 2, mem.Writes())
}

func TestLoadTreatsUnknownValuesAsClosed(t *testing.T) {
	t.Parallel()

	for _, v := range []byte{0x00, 0x02, 0x7F, 0xFF} {
		mem := NewMemory(4)
		_, err := mem.WriteAt([]byte{v}, 0)
		require.NoError(t, err)

		open, err := New(mem, 0).Load()
		require.NoError(t, err)
		require.False(t, open, "value %#x", v)
	}

	// Erased image on first boot.
	open, err := New(NewMemory(4), 0).Load()
	require.NoError(t, err)
	require.False(t, open)
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "eeprom.bin")

	f, err := OpenFile(path)
	require.NoError(t, err)

	s := New(f, 0)
	open, err := s.Load()
	require.NoError(t, err)
	require.False(t, open, "empty file reads as closed")

	require.NoError(t, s.Save(true))
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{ValueOpen}, raw)

	// Survives a reopen, as after a power cycle.
	f, err = OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	open, err = New(f, 0).Load()
	require.NoError(t, err)
	require.True(t, open)
}

func TestOpenConfig(t *testing.T) {
	t.Parallel()

	s, closer, err := Open(Config{Type: "file", Path: filepath.Join(t.TempDir(), "e.bin")})
	require.NoError(t, err)
	require.NoError(t, s.Save(true))
	require.NoError(t, closer.Close())

	_, _, err = Open(Config{Type: "flash"})
	require.Error(t, err)
}

func TestOpenMemoryFitsOffset(t *testing.T) {
	t.Parallel()

	for _, offset := range []int64{0, 15, 16, 100} {
		s, closer, err := Open(Config{Type: "memory", Offset: offset})
		require.NoError(t, err, offset)
		require.NoError(t, s.Save(true), offset)

		open, err := s.Load()
		require.NoError(t, err, offset)
		require.True(t, open, offset)
		require.NoError(t, closer.Close())
	}

	_, _, err := Open(Config{Type: "memory", Offset: -1})
	require.Error(t, err)
}

func TestAT24C(t *testing.T) {
	t.Parallel()

	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		// Load: random read of cell 0x0010.
		{Addr: AT24CAddr, W: []byte{0x00, 0x10}, R: []byte{0xFF}},
		// Save(true): read, then byte write.
		{Addr: AT24CAddr, W: []byte{0x00, 0x10}, R: []byte{0xFF}},
		{Addr: AT24CAddr, W: []byte{0x00, 0x10, ValueOpen}},
		// Save(true) again: read only.
		{Addr: AT24CAddr, W: []byte{0x00, 0x10}, R: []byte{ValueOpen}},
	}}

	s := New(NewAT24C(bus, AT24CAddr, at24c32Size), 0x10)

	open, err := s.Load()
	require.NoError(t, err)
	require.False(t, open)

	require.NoError(t, s.Save(true))
	require.NoError(t, s.Save(true))
	require.NoError(t, bus.Close())
}

func TestAT24COutOfRange(t *testing.T) {
	t.Parallel()

	e := NewAT24C(&i2ctest.Playback{DontPanic: true}, AT24CAddr, 16)
	_, err := e.ReadAt(make([]byte, 1), 16)
	require.Error(t, err)
	_, err = e.WriteAt([]byte{1}, -1)
	require.Error(t, err)
}
