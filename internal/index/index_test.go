package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowdb/arrowdb/internal/codec"
)

func newRecord(bucket, key, value []byte, op codec.Operate, dtype codec.DataType) *codec.Record {
	e := codec.NewEntry(bucket, key, value, op, 0, dtype, 1)
	h := &codec.Hint{Key: key, FileID: 1, Offset: 0, Header: e.Header}
	return &codec.Record{Hint: h, Entry: e}
}

func TestIndex_PutGetDel(t *testing.T) {
	idx := New()
	r := newRecord(nil, []byte("k1"), []byte("v1"), codec.OpPut, codec.DataTypeString)
	idx.Put("k1", r)

	got, ok := idx.Get("k1")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got.Entry.Value)

	idx.Del("k1")
	_, ok = idx.Get("k1")
	assert.False(t, ok)
}

func TestIndex_RangeScan(t *testing.T) {
	idx := New()
	for _, k := range []string{"a", "b", "c", "d"} {
		idx.Put(k, newRecord(nil, []byte(k), []byte("v"), codec.OpPut, codec.DataTypeString))
	}
	got := idx.RangeScan("b", "c")
	require.Len(t, got, 2)
	assert.Equal(t, []byte("b"), got[0].Entry.Key)
	assert.Equal(t, []byte("c"), got[1].Entry.Key)
}

func TestIndex_ListOperations(t *testing.T) {
	idx := New()
	idx.RPush("L", newRecord([]byte("L"), nil, []byte("a"), codec.OpLRpush, codec.DataTypeList))
	idx.RPush("L", newRecord([]byte("L"), nil, []byte("b"), codec.OpLRpush, codec.DataTypeList))
	assert.Equal(t, 2, idx.LLen("L"))

	r, err := idx.LIndex("L", 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), r.Entry.Value)

	ok := idx.LSet("L", 1, newRecord([]byte("L"), nil, []byte("z"), codec.OpLSet, codec.DataTypeList))
	assert.True(t, ok)

	rs, err := idx.LRange("L", 0, -1)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, []byte("z"), rs[1].Entry.Value)

	popped, err := idx.LPop("L")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), popped.Entry.Value)
	assert.Equal(t, 1, idx.LLen("L"))
}

func TestIndex_SetOperations(t *testing.T) {
	idx := New()
	idx.SAdd("S1", "a", newRecord([]byte("S1"), []byte("a"), []byte("va"), codec.OpSAdd, codec.DataTypeSet))
	idx.SAdd("S1", "b", newRecord([]byte("S1"), []byte("b"), []byte("vb"), codec.OpSAdd, codec.DataTypeSet))
	idx.SAdd("S2", "b", newRecord([]byte("S2"), []byte("b"), []byte("vb"), codec.OpSAdd, codec.DataTypeSet))

	assert.Equal(t, 2, idx.SCard("S1"))
	assert.True(t, idx.SIsMember("S1", "a"))

	diff, err := idx.SDiff("S1", "S2")
	require.NoError(t, err)
	require.Len(t, diff, 1)
	assert.Equal(t, []byte("va"), diff[0].Entry.Value)

	removed := idx.SRem("S1", []string{"a"})
	assert.Equal(t, 1, removed)
}

func TestIndex_SortedSetOperations(t *testing.T) {
	idx := New()
	idx.ZAdd("Z", "alice", 10, newRecord([]byte("Z"), []byte("alice"), []byte("va"), codec.OpZPut, codec.DataTypeZSet))
	idx.ZAdd("Z", "bob", 20, newRecord([]byte("Z"), []byte("bob"), []byte("vb"), codec.OpZPut, codec.DataTypeZSet))

	rank, ok := idx.ZFindRank("Z", "alice")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	revRank, ok := idx.ZFindRevRank("Z", "alice")
	require.True(t, ok)
	assert.Equal(t, 2, revRank)

	r, err := idx.ZGetByKey("Z", "bob")
	require.NoError(t, err)
	assert.Equal(t, []byte("vb"), r.Entry.Value)

	rs, err := idx.ZGetByScoreRange("Z", 0, 100, 0, false, false)
	require.NoError(t, err)
	assert.Len(t, rs, 2)

	removedRecord, err := idx.ZRem("Z", "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), removedRecord.Entry.Value)
}

func TestIndex_KeyType(t *testing.T) {
	idx := New()
	idx.Put("s", newRecord(nil, []byte("s"), []byte("v"), codec.OpPut, codec.DataTypeString))
	idx.RPush("l", newRecord([]byte("l"), nil, []byte("a"), codec.OpLRpush, codec.DataTypeList))
	idx.SAdd("set", "m", newRecord([]byte("set"), []byte("m"), []byte("v"), codec.OpSAdd, codec.DataTypeSet))
	idx.ZAdd("z", "m", 1, newRecord([]byte("z"), []byte("m"), []byte("v"), codec.OpZPut, codec.DataTypeZSet))

	dt, ok := idx.KeyType("s")
	require.True(t, ok)
	assert.Equal(t, codec.DataTypeString, dt)

	dt, ok = idx.KeyType("l")
	require.True(t, ok)
	assert.Equal(t, codec.DataTypeList, dt)

	dt, ok = idx.KeyType("set")
	require.True(t, ok)
	assert.Equal(t, codec.DataTypeSet, dt)

	dt, ok = idx.KeyType("z")
	require.True(t, ok)
	assert.Equal(t, codec.DataTypeZSet, dt)

	_, ok = idx.KeyType("missing")
	assert.False(t, ok)
}
