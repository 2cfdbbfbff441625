package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/fileio"
)

func TestReadHintFile_ParsesDenseSequence(t *testing.T) {
	e1 := codec.NewEntry(nil, []byte("k1"), []byte("v1"), codec.OpPut, 0, codec.DataTypeString, 1)
	e2 := codec.NewEntry(nil, []byte("k2"), []byte("v2"), codec.OpPut, 0, codec.DataTypeString, 2)

	h1 := &codec.Hint{Key: e1.Key, FileID: 1, Offset: 0, Header: e1.Header}
	h2 := &codec.Hint{Key: e2.Key, FileID: 1, Offset: uint64(e1.Size()), Header: e2.Header}

	var buf []byte
	buf = append(buf, h1.Encode(nil)...)
	buf = append(buf, h2.Encode(nil)...)

	hints, err := ReadHintFile(buf)
	require.NoError(t, err)
	require.Len(t, hints, 2)
	assert.Equal(t, []byte("k1"), hints[0].Key)
	assert.Equal(t, []byte("k2"), hints[1].Key)
	assert.Equal(t, uint64(e1.Size()), hints[1].Offset)
}

func TestIndex_RebuildFromHints(t *testing.T) {
	dir := t.TempDir()
	factory := fileio.NewFactory(fileio.RWModeStdIO)
	path := filepath.Join(dir, "1.dat")
	f, err := factory.Open(path, 1)
	require.NoError(t, err)
	defer f.Release()

	e1 := codec.NewEntry(nil, []byte("k1"), []byte("v1"), codec.OpPut, 0, codec.DataTypeString, 1)
	_, err = f.Write(e1.Encode(), 0)
	require.NoError(t, err)
	require.NoError(t, f.Sync())

	h1 := &codec.Hint{Key: e1.Key, FileID: 1, Offset: 0, Header: e1.Header}

	idx := New()
	err = idx.RebuildFromHints([]*codec.Hint{h1}, func(fileID uint32) (fileio.Manager, error) {
		return factory.Open(path, 1)
	})
	require.NoError(t, err)

	r, ok := idx.Get("k1")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), r.Entry.Value)
}
