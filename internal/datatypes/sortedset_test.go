package datatypes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedSet_PutNewAndUpdate(t *testing.T) {
	z := NewSortedSet()
	assert.Equal(t, 1, z.Put("alice", []byte("a"), 10))
	assert.Equal(t, 1, z.Put("alice", []byte("a2"), 10), "same score updates in place")
	assert.Equal(t, 1, z.Len())

	node, ok := z.GetByKey("alice")
	require.True(t, ok)
	assert.Equal(t, []byte("a2"), node.Value)
}

func TestSortedSet_PutRescoresOnChange(t *testing.T) {
	z := NewSortedSet()
	z.Put("alice", []byte("a"), 10)
	assert.Equal(t, 0, z.Put("alice", []byte("a"), 20), "different score still returns 0 (not newly added)")
	assert.Equal(t, 1, z.Len())

	node, ok := z.GetByKey("alice")
	require.True(t, ok)
	assert.Equal(t, 20.0, node.Score)
}

func TestSortedSet_RankOrderingByScoreThenKey(t *testing.T) {
	z := NewSortedSet()
	z.Put("bob", nil, 10)
	z.Put("alice", nil, 10)
	z.Put("carol", nil, 5)

	nodes := z.GetByRankRange(1, 3, false)
	require.Len(t, nodes, 3)
	assert.Equal(t, "carol", nodes[0].Key)
	assert.Equal(t, "alice", nodes[1].Key, "ties broken by member key ascending")
	assert.Equal(t, "bob", nodes[2].Key)
}

func TestSortedSet_FindRankAndRevRank(t *testing.T) {
	z := NewSortedSet()
	z.Put("a", nil, 1)
	z.Put("b", nil, 2)
	z.Put("c", nil, 3)

	rank, ok := z.FindRank("b")
	require.True(t, ok)
	assert.Equal(t, 2, rank)

	revRank, ok := z.FindRevRank("b")
	require.True(t, ok)
	assert.Equal(t, 2, revRank)

	_, ok = z.FindRank("missing")
	assert.False(t, ok)
}

func TestSortedSet_Remove(t *testing.T) {
	z := NewSortedSet()
	z.Put("a", []byte("va"), 1)
	z.Put("b", []byte("vb"), 2)

	value, ok := z.Remove("a")
	require.True(t, ok)
	assert.Equal(t, []byte("va"), value)
	assert.Equal(t, 1, z.Len())

	_, ok = z.Remove("a")
	assert.False(t, ok)
}

func TestSortedSet_GetByScoreRangeInclusiveAndExclusive(t *testing.T) {
	z := NewSortedSet()
	for i, k := range []string{"a", "b", "c", "d", "e"} {
		z.Put(k, nil, float64(i+1))
	}

	nodes := z.GetByScoreRange(2, 4, 0, false, false)
	require.Len(t, nodes, 3)
	assert.Equal(t, "b", nodes[0].Key)
	assert.Equal(t, "d", nodes[2].Key)

	nodes = z.GetByScoreRange(2, 4, 0, true, true)
	require.Len(t, nodes, 1)
	assert.Equal(t, "c", nodes[0].Key)
}

func TestSortedSet_GetByScoreRangeReversed(t *testing.T) {
	z := NewSortedSet()
	for i, k := range []string{"a", "b", "c"} {
		z.Put(k, nil, float64(i+1))
	}

	nodes := z.GetByScoreRange(3, 1, 0, false, false)
	require.Len(t, nodes, 3)
	assert.Equal(t, "c", nodes[0].Key, "reversed range returns descending order")
	assert.Equal(t, "a", nodes[2].Key)
}

func TestSortedSet_GetByScoreRangeLimit(t *testing.T) {
	z := NewSortedSet()
	for i, k := range []string{"a", "b", "c", "d"} {
		z.Put(k, nil, float64(i+1))
	}

	nodes := z.GetByScoreRange(1, 4, 2, false, false)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].Key)
	assert.Equal(t, "b", nodes[1].Key)
}

func TestSortedSet_GetByRankRangeWithRemove(t *testing.T) {
	z := NewSortedSet()
	for i, k := range []string{"a", "b", "c"} {
		z.Put(k, nil, float64(i+1))
	}

	removed := z.GetByRankRange(1, 2, true)
	require.Len(t, removed, 2)
	assert.Equal(t, 1, z.Len())

	_, ok := z.GetByKey("a")
	assert.False(t, ok)
	_, ok = z.GetByKey("c")
	assert.True(t, ok)
}

func TestSortedSet_ManyInsertsPreserveOrder(t *testing.T) {
	z := NewSortedSet()
	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("key%03d", i)
		score := float64((i * 37) % 200)
		z.Put(key, nil, score)
	}

	nodes := z.GetByRankRange(1, z.Len(), false)
	for i := 1; i < len(nodes); i++ {
		assert.LessOrEqual(t, nodes[i-1].Score, nodes[i].Score)
	}
}
