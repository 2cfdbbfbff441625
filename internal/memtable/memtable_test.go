package memtable

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/errs"
	"github.com/arrowdb/arrowdb/internal/fileio"
)

func openTestMemtable(t *testing.T, fileID uint64) *Memtable {
	t.Helper()
	path := filepath.Join(t.TempDir(), "0.wal")
	m, err := Open(fileID, path, 1, fileio.RWModeStdIO)
	require.NoError(t, err)
	return m
}

func TestMemtable_PutGetDel(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	require.NoError(t, m.Put([]byte("k1"), []byte("v1"), 0, 1))
	e, ok := m.Get([]byte("k1"))
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), e.Value)

	require.NoError(t, m.Del([]byte("k1"), 2))
	_, ok = m.Get([]byte("k1"))
	assert.False(t, ok)
}

func TestMemtable_GetExpiredIsAbsent(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	require.NoError(t, m.Put([]byte("k1"), []byte("v1"), 1, 1))
	e, ok := m.Get([]byte("k1"))
	require.True(t, ok)
	e.Header.Timestamp -= 10 // force expiry without sleeping

	_, ok = m.Get([]byte("k1"))
	assert.False(t, ok)
}

func TestMemtable_SealRejectsFurtherWrites(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	m.Seal()
	assert.True(t, m.Sealed())
	err := m.Put([]byte("k1"), []byte("v1"), 0, 1)
	require.Error(t, err)
}

func TestMemtable_LogOnlyRejectsMismatchedDataTypeOp(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	e := codec.NewEntry([]byte("L"), nil, []byte("v"), codec.OpPut, 0, codec.DataTypeList, 1)
	err := m.LogOnly(e)
	require.Error(t, err)
	var invalid *errs.EntryDataTypeOpInvalid
	assert.ErrorAs(t, err, &invalid)
}

func TestMemtable_IsFull(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	assert.False(t, m.IsFull(1<<30, 1024))
	require.NoError(t, m.Put([]byte("k1"), []byte("v1"), 0, 1))
	assert.True(t, m.IsFull(1, 1024), "key-count threshold")
	assert.True(t, m.IsFull(1<<30, 0), "size threshold of 0 is always crossed")
}

func TestMemtable_ListOperations(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	n, err := m.RPush([]byte("L"), [][]byte{[]byte("a"), []byte("b")}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = m.LPushX([]byte("missing"), [][]byte{[]byte("x")}, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	front, err := m.LPop([]byte("L"), 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), front.Value)
	assert.Equal(t, 1, m.LLen([]byte("L")))
}

func TestMemtable_SetOperations(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	added, err := m.SAdd([]byte("S"), []byte("x"), []byte("vx"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.True(t, m.SIsMember([]byte("S"), []byte("x")))

	removed, err := m.SRem([]byte("S"), [][]byte{[]byte("x")}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestMemtable_SortedSetOperations(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	added, err := m.ZAdd([]byte("Z"), "alice", 10, []byte("va"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	rank, ok := m.ZFindRank([]byte("Z"), "alice")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	e, err := m.ZRem([]byte("Z"), "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), e.Value)
}

func TestMemtable_OpenReplaysWAL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0.wal")

	m, err := Open(0, path, 1, fileio.RWModeStdIO)
	require.NoError(t, err)
	require.NoError(t, m.Put([]byte("k1"), []byte("v1"), 0, 1))
	_, err = m.RPush([]byte("L"), [][]byte{[]byte("a")}, 2)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	reopened, err := Open(0, path, 1, fileio.RWModeStdIO)
	require.NoError(t, err)
	defer reopened.Close()

	e, ok := reopened.Get([]byte("k1"))
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), e.Value)
	assert.Equal(t, 1, reopened.LLen([]byte("L")))
}

func TestMemtable_Snapshot(t *testing.T) {
	m := openTestMemtable(t, 0)
	defer m.Close()

	require.NoError(t, m.Put([]byte("k1"), []byte("v1"), 0, 1))
	_, err := m.RPush([]byte("L"), [][]byte{[]byte("a")}, 2)
	require.NoError(t, err)
	_, err = m.SAdd([]byte("S"), []byte("x"), []byte("vx"), 3)
	require.NoError(t, err)
	_, err = m.ZAdd([]byte("Z"), "alice", 10, []byte("va"), 4)
	require.NoError(t, err)

	items := m.Snapshot()
	assert.Len(t, items, 4)
}
