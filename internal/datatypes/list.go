// Package datatypes implements the in-memory collection semantics for
// lists, sets and sorted sets (spec §4.4). Values stored are opaque
// byte slices — callers (the index, the memtable) are responsible for
// wrapping/unwrapping the encoded Record envelope.
package datatypes

// List is a mapping from key to a deque of byte values, preserving
// insertion order at both ends (spec §4.4.1). Grounded on the
// teacher's internal/store/list.go for Go idiom and naming, but
// backed by a ring-buffer deque instead of a plain slice so push/pop
// at either end stays O(1) amortized, matching
// original_source/src/datatypes/list.rs's VecDeque semantics.
type List struct {
	deques map[string]*deque
}

// NewList creates an empty List.
func NewList() *List {
	return &List{deques: make(map[string]*deque)}
}

// Keys returns every container key currently holding a non-empty list,
// in unspecified order. Used by the memtable/engine layer to snapshot
// resident lists for flushing.
func (l *List) Keys() []string {
	keys := make([]string, 0, len(l.deques))
	for k := range l.deques {
		keys = append(keys, k)
	}
	return keys
}

// LPush inserts values one at a time at the front, in the given
// order — so LPush("L", [v1,v2,v3]) leaves the deque v3,v2,v1 front to
// back (spec §8 scenario 11).
func (l *List) LPush(key string, values [][]byte) int {
	d := l.deques[key]
	if d == nil {
		d = newDeque()
		l.deques[key] = d
	}
	for _, v := range values {
		d.pushFront(v)
	}
	return d.len()
}

// LPushX pushes only if the key already exists (spec §9 Open
// Question #3: datatype semantics win, no auto-create). Returns 0 if
// the key is absent.
func (l *List) LPushX(key string, values [][]byte) int {
	d, ok := l.deques[key]
	if !ok {
		return 0
	}
	for _, v := range values {
		d.pushFront(v)
	}
	return d.len()
}

// RPush inserts values one at a time at the back.
func (l *List) RPush(key string, values [][]byte) int {
	d := l.deques[key]
	if d == nil {
		d = newDeque()
		l.deques[key] = d
	}
	for _, v := range values {
		d.pushBack(v)
	}
	return d.len()
}

// RPushX pushes only if the key already exists.
func (l *List) RPushX(key string, values [][]byte) int {
	d, ok := l.deques[key]
	if !ok {
		return 0
	}
	for _, v := range values {
		d.pushBack(v)
	}
	return d.len()
}

// LPop removes and returns the front value, or nil if the key is
// absent or empty. The key is deleted once its deque is drained.
func (l *List) LPop(key string) []byte {
	d, ok := l.deques[key]
	if !ok {
		return nil
	}
	v, ok := d.popFront()
	if !ok {
		return nil
	}
	if d.len() == 0 {
		delete(l.deques, key)
	}
	return v
}

// RPop removes and returns the back value.
func (l *List) RPop(key string) []byte {
	d, ok := l.deques[key]
	if !ok {
		return nil
	}
	v, ok := d.popBack()
	if !ok {
		return nil
	}
	if d.len() == 0 {
		delete(l.deques, key)
	}
	return v
}

// LLen returns 0 for a missing key (spec: llen returns 0, not an
// absent marker).
func (l *List) LLen(key string) int {
	d, ok := l.deques[key]
	if !ok {
		return 0
	}
	return d.len()
}

// LIndex returns the value at index (0-based), or nil if the key is
// absent or the index is out of range. Negative indices count from
// the end.
func (l *List) LIndex(key string, index int) []byte {
	d, ok := l.deques[key]
	if !ok {
		return nil
	}
	idx, ok := resolveIndex(index, d.len())
	if !ok {
		return nil
	}
	v, _ := d.at(idx)
	return v
}

// LPos returns the 0-based index of the first occurrence of value,
// or -1 if not found.
func (l *List) LPos(key string, value []byte) int {
	d, ok := l.deques[key]
	if !ok {
		return -1
	}
	return d.indexOf(value)
}

// LSet replaces the value at index. It is a no-op (returns false)
// when the key is absent or index is out of range (spec §4.4.1).
func (l *List) LSet(key string, index int, value []byte) bool {
	d, ok := l.deques[key]
	if !ok {
		return false
	}
	idx, ok := resolveIndex(index, d.len())
	if !ok {
		return false
	}
	d.set(idx, value)
	return true
}

// LRange returns values in [start, end], inclusive at both ends,
// zero-based, clipped to [0, len) (spec §4.4.1). Negative indices
// count from the end, as in LIndex, so LRange(key, 0, -1) returns the
// whole list. start > end returns an empty slice (spec §8 property 7).
func (l *List) LRange(key string, start, end int) [][]byte {
	d, ok := l.deques[key]
	if !ok {
		return nil
	}
	n := d.len()
	if n == 0 {
		return nil
	}
	if start < 0 {
		start = n + start
	}
	if end < 0 {
		end = n + end
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end || start >= n {
		return nil
	}

	result := make([][]byte, 0, end-start+1)
	for i := start; i <= end; i++ {
		v, _ := d.at(i)
		result = append(result, v)
	}
	return result
}

func resolveIndex(index, n int) (int, bool) {
	if index < 0 {
		index = n + index
	}
	if index < 0 || index >= n {
		return 0, false
	}
	return index, true
}
