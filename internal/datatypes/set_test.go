package datatypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_SAddReturnsNewlyAddedCount(t *testing.T) {
	s := NewSet()
	added := s.SAdd("S", [][2][]byte{{[]byte("a"), []byte("va")}, {[]byte("b"), []byte("vb")}})
	assert.Equal(t, 2, added)

	added = s.SAdd("S", [][2][]byte{{[]byte("a"), []byte("va2")}, {[]byte("c"), []byte("vc")}})
	assert.Equal(t, 1, added, "re-adding a present member doesn't count, but updates its payload")
	assert.Equal(t, 3, s.SCard("S"))
}

func TestSet_SRemAndEmptyKeyCleanup(t *testing.T) {
	s := NewSet()
	s.SAdd("S", [][2][]byte{{[]byte("a"), []byte("va")}})

	removed := s.SRem("S", [][]byte{[]byte("a"), []byte("missing")})
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.SCard("S"))
	assert.Equal(t, 0, len(s.Keys()))
}

func TestSet_SIsMember(t *testing.T) {
	s := NewSet()
	s.SAdd("S", [][2][]byte{{[]byte("a"), []byte("va")}})

	assert.True(t, s.SIsMember("S", []byte("a")))
	assert.False(t, s.SIsMember("S", []byte("b")))
	assert.False(t, s.SIsMember("missing", []byte("a")))
}

func TestSet_UnionTreatsMissingKeyAsEmpty(t *testing.T) {
	s := NewSet()
	s.SAdd("S1", [][2][]byte{{[]byte("a"), []byte("va")}})

	union := s.SUnion("S1", "missing")
	assert.Len(t, union, 1)
}

func TestSet_InterWithMissingKeyIsEmpty(t *testing.T) {
	s := NewSet()
	s.SAdd("S1", [][2][]byte{{[]byte("a"), []byte("va")}})

	inter := s.SInter("S1", "missing")
	assert.Empty(t, inter)
}

func TestSet_DiffExcludesMembersPresentElsewhere(t *testing.T) {
	s := NewSet()
	s.SAdd("S1", [][2][]byte{{[]byte("a"), []byte("va")}, {[]byte("b"), []byte("vb")}})
	s.SAdd("S2", [][2][]byte{{[]byte("b"), []byte("vb")}})

	diff := s.SDiff("S1", "S2")
	assert.Len(t, diff, 1)
	assert.Equal(t, []byte("va"), diff[0])
}
