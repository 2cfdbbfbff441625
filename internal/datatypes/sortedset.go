package datatypes

import "math/rand"

// Skiplist tuning constants (spec §4.4.3).
const (
	skiplistMaxLevel = 32
	skiplistP        = 0.25
)

// zslLevel is one level of a skiplist node: a forward pointer and the
// span (number of level-0 edges) it skips.
type zslLevel struct {
	forward *zslNode
	span    int
}

// zslNode is one element of the sorted set, ordered by (score,
// member-key).
type zslNode struct {
	key      string
	value    []byte
	score    float64
	backward *zslNode
	level    []zslLevel
}

// SortedSet is a probabilistic skiplist implementing an order
// statistic multimap keyed by (score, member-key), with a per-key
// dictionary for O(1) existence checks (spec §4.4.3). This is a
// genuine skiplist — not the teacher's map+sort.Slice stand-in —
// grounded node-for-node on
// original_source/src/datatypes/sortedset.rs, rewritten in the
// teacher's Go idiom. Every mutation here assumes it runs under a
// single outer write lock held by the caller (the index), per spec
// §9's "outer-lock discipline" design note; SortedSet itself is not
// safe for concurrent use.
type SortedSet struct {
	header *zslNode
	tail   *zslNode
	length int
	level  int
	dict   map[string]*zslNode
}

// NewSortedSet creates an empty sorted set.
func NewSortedSet() *SortedSet {
	header := &zslNode{level: make([]zslLevel, skiplistMaxLevel)}
	return &SortedSet{
		header: header,
		level:  1,
		dict:   make(map[string]*zslNode),
	}
}

func newZslNode(level int, score float64, key string, value []byte) *zslNode {
	return &zslNode{
		key:   key,
		value: value,
		score: score,
		level: make([]zslLevel, level),
	}
}

func randomLevel() int {
	level := 1
	for rand.Float64() < skiplistP && level < skiplistMaxLevel {
		level++
	}
	return level
}

// Len returns the number of members.
func (s *SortedSet) Len() int { return s.length }

// Put inserts or updates key with value at score. Returns 1 if key
// was newly added or updated in place at the same score, 0 if a
// different score forced a delete-and-reinsert (spec §4.4.3: "If key
// present with same score, update value only (return 1)").
func (s *SortedSet) Put(key string, value []byte, score float64) int {
	if node, ok := s.dict[key]; ok {
		if node.score == score {
			node.value = value
			return 1
		}
		s.deleteNode(key, node.score)
		s.insert(key, value, score)
		return 0
	}
	s.insert(key, value, score)
	return 1
}

func (s *SortedSet) insert(key string, value []byte, score float64) *zslNode {
	update := make([]*zslNode, skiplistMaxLevel)
	rank := make([]int, skiplistMaxLevel)

	x := s.header
	for i := s.level - 1; i >= 0; i-- {
		if i == s.level-1 {
			rank[i] = 0
		} else {
			rank[i] = rank[i+1]
		}
		for x.level[i].forward != nil &&
			(x.level[i].forward.score < score ||
				(x.level[i].forward.score == score && x.level[i].forward.key < key)) {
			rank[i] += x.level[i].span
			x = x.level[i].forward
		}
		update[i] = x
	}

	newLevel := randomLevel()
	if newLevel > s.level {
		for i := s.level; i < newLevel; i++ {
			rank[i] = 0
			update[i] = s.header
			update[i].level[i].span = s.length
		}
		s.level = newLevel
	}

	x = newZslNode(newLevel, score, key, value)
	for i := 0; i < newLevel; i++ {
		x.level[i].forward = update[i].level[i].forward
		update[i].level[i].forward = x
		x.level[i].span = update[i].level[i].span - (rank[0] - rank[i])
		update[i].level[i].span = (rank[0] - rank[i]) + 1
	}
	for i := newLevel; i < s.level; i++ {
		update[i].level[i].span++
	}

	if update[0] != s.header {
		x.backward = update[0]
	}
	if x.level[0].forward != nil {
		x.level[0].forward.backward = x
	} else {
		s.tail = x
	}
	s.length++
	s.dict[key] = x
	return x
}

// Remove deletes key. Returns the removed value and true, or
// (nil, false) if key was absent.
func (s *SortedSet) Remove(key string) ([]byte, bool) {
	node, ok := s.dict[key]
	if !ok {
		return nil, false
	}
	value := node.value
	s.deleteNode(key, node.score)
	return value, true
}

func (s *SortedSet) deleteNode(key string, score float64) {
	update := make([]*zslNode, skiplistMaxLevel)
	x := s.header
	for i := s.level - 1; i >= 0; i-- {
		for x.level[i].forward != nil &&
			(x.level[i].forward.score < score ||
				(x.level[i].forward.score == score && x.level[i].forward.key < key)) {
			x = x.level[i].forward
		}
		update[i] = x
	}

	target := x.level[0].forward
	if target != nil && target.score == score && target.key == key {
		s.deleteSortedSetNode(target, update)
	}
}

func (s *SortedSet) deleteSortedSetNode(x *zslNode, update []*zslNode) {
	for i := 0; i < s.level; i++ {
		if update[i].level[i].forward == x {
			update[i].level[i].span += x.level[i].span - 1
			update[i].level[i].forward = x.level[i].forward
		} else {
			update[i].level[i].span--
		}
	}
	if x.level[0].forward != nil {
		x.level[0].forward.backward = x.backward
	} else {
		s.tail = x.backward
	}
	for s.level > 1 && s.header.level[s.level-1].forward == nil {
		s.level--
	}
	s.length--
	delete(s.dict, x.key)
}

// GetByRankRange returns the nodes with 1-based rank in [start, end],
// inclusive. start < 1 clamps to 1; end < start clamps to start
// (spec §4.4.3). If remove is true, every visited node is deleted
// using the same precomputed update stack (spec's invariant: deletion
// while walking must not recompute the stack per node).
func (s *SortedSet) GetByRankRange(start, end int, remove bool) []ZslNode {
	if start < 1 {
		start = 1
	}
	if end < start {
		end = start
	}

	update := make([]*zslNode, skiplistMaxLevel)
	traversed := 0
	x := s.header
	for i := s.level - 1; i >= 0; i-- {
		for x.level[i].forward != nil && traversed+x.level[i].span < start {
			traversed += x.level[i].span
			x = x.level[i].forward
		}
		update[i] = x
	}

	traversed++
	x = x.level[0].forward

	var result []ZslNode
	for x != nil && traversed <= end {
		next := x.level[0].forward
		result = append(result, x.View())
		if remove {
			s.deleteSortedSetNode(x, update)
		}
		x = next
		traversed++
	}
	return result
}

// GetByRank is the single-element specialization of GetByRankRange.
func (s *SortedSet) GetByRank(rank int, remove bool) (ZslNode, bool) {
	nodes := s.GetByRankRange(rank, rank, remove)
	if len(nodes) == 0 {
		return ZslNode{}, false
	}
	return nodes[0], true
}

// GetByKey returns the node for key, or (ZslNode{}, false) if absent
// (O(1) via the dictionary).
func (s *SortedSet) GetByKey(key string) (ZslNode, bool) {
	node, ok := s.dict[key]
	if !ok {
		return ZslNode{}, false
	}
	return node.View(), true
}

// FindRank returns the 1-based rank of key from the head, or
// (0, false) if absent.
func (s *SortedSet) FindRank(key string) (int, bool) {
	target, ok := s.dict[key]
	if !ok {
		return 0, false
	}
	rank := 0
	x := s.header
	for i := s.level - 1; i >= 0; i-- {
		for x.level[i].forward != nil &&
			(x.level[i].forward.score < target.score ||
				(x.level[i].forward.score == target.score && x.level[i].forward.key <= key)) {
			rank += x.level[i].span
			x = x.level[i].forward
		}
		if x == target {
			return rank, true
		}
	}
	return 0, false
}

// FindRevRank returns the 1-based rank of key from the tail.
func (s *SortedSet) FindRevRank(key string) (int, bool) {
	rank, ok := s.FindRank(key)
	if !ok {
		return 0, false
	}
	return s.length - rank + 1, true
}

// GetByScoreRange returns nodes with score in [start, end] (or
// (end, start) reversed if start > end — spec §4.4.3: "forward scan
// when start ≤ end; if start > end swap the bounds and reverse the
// result"), honoring exclusive bounds and an optional result limit
// (0 = unlimited).
func (s *SortedSet) GetByScoreRange(start, end float64, limit int, excludeStart, excludeEnd bool) []ZslNode {
	if start > end {
		nodes := s.searchForward(end, start, limit, excludeEnd, excludeStart)
		reverse(nodes)
		return nodes
	}
	return s.searchForward(start, end, limit, excludeStart, excludeEnd)
}

func (s *SortedSet) searchForward(min, max float64, limit int, excludeMin, excludeMax bool) []ZslNode {
	x := s.header
	for i := s.level - 1; i >= 0; i-- {
		for x.level[i].forward != nil {
			forward := x.level[i].forward
			skip := forward.score < min || (excludeMin && forward.score == min)
			if !skip {
				break
			}
			x = forward
		}
	}
	x = x.level[0].forward

	var result []ZslNode
	for x != nil {
		if x.score > max || (excludeMax && x.score == max) {
			break
		}
		result = append(result, x.View())
		if limit > 0 && len(result) >= limit {
			break
		}
		x = x.level[0].forward
	}
	return result
}

func reverse(nodes []ZslNode) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}

// ZslNode exposes the read-only view of a skiplist node callers need
// (key, value, score) without leaking the internal forward/backward
// pointer graph.
type ZslNode struct {
	Key   string
	Value []byte
	Score float64
}

// View converts an internal node to its exported read-only form.
func (n *zslNode) View() ZslNode {
	return ZslNode{Key: n.key, Value: n.value, Score: n.score}
}
