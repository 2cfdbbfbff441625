package wal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/fileio"
)

func openTestWAL(t *testing.T, fileID uint64) (*WAL, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "0.wal")
	w, err := Open(fileID, path, 1, fileio.RWModeStdIO)
	require.NoError(t, err)
	return w, path
}

func TestWAL_OpenCreatesFile(t *testing.T) {
	_, path := openTestWAL(t, 0)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWAL_WriteAdvancesOffset(t *testing.T) {
	w, _ := openTestWAL(t, 0)
	defer w.Close()

	e1 := codec.NewEntry(nil, []byte("k1"), []byte("v1"), codec.OpPut, 0, codec.DataTypeString, 1)
	off1, err := w.Write(e1.Encode())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), off1)

	e2 := codec.NewEntry(nil, []byte("k2"), []byte("v2"), codec.OpPut, 0, codec.DataTypeString, 2)
	off2, err := w.Write(e2.Encode())
	require.NoError(t, err)
	assert.Equal(t, uint64(e1.Size()), off2)
}

func TestWAL_ReadAllReplaysEveryEntry(t *testing.T) {
	w, path := openTestWAL(t, 0)

	entries := []*codec.Entry{
		codec.NewEntry(nil, []byte("k1"), []byte("v1"), codec.OpPut, 0, codec.DataTypeString, 1),
		codec.NewEntry(nil, []byte("k2"), []byte("v2"), codec.OpPut, 0, codec.DataTypeString, 2),
		codec.NewEntry(nil, []byte("k1"), nil, codec.OpDel, 0, codec.DataTypeString, 3),
	}
	for _, e := range entries {
		_, err := w.Write(e.Encode())
		require.NoError(t, err)
	}
	require.NoError(t, w.Sync())
	w.Close()

	reopened, err := Open(0, path, 1, fileio.RWModeStdIO)
	require.NoError(t, err)
	defer reopened.Close()

	replayed, err := reopened.ReadAll()
	require.NoError(t, err)
	require.Len(t, replayed, 3)
	assert.Equal(t, []byte("k1"), replayed[0].Key)
	assert.Equal(t, uint16(codec.OpDel), replayed[2].Header.Operate)
}

func TestWAL_ReadAllStopsAtCorruptRecord(t *testing.T) {
	w, path := openTestWAL(t, 0)

	good := codec.NewEntry(nil, []byte("k1"), []byte("v1"), codec.OpPut, 0, codec.DataTypeString, 1)
	_, err := w.Write(good.Encode())
	require.NoError(t, err)

	corrupt := codec.NewEntry(nil, []byte("k2"), []byte("v2"), codec.OpPut, 0, codec.DataTypeString, 2)
	buf := corrupt.Encode()
	buf[codec.HeaderSize] ^= 0xFF
	_, err = w.Write(buf)
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	w.Close()

	reopened, err := Open(0, path, 1, fileio.RWModeStdIO)
	require.NoError(t, err)
	defer reopened.Close()

	replayed, err := reopened.ReadAll()
	require.NoError(t, err)
	require.Len(t, replayed, 1)
	assert.Equal(t, []byte("k1"), replayed[0].Key)
}
