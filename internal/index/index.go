// Package index implements the authoritative in-memory directory over
// flushed data (spec §4.5): an ordered key→Record map plus list/set/
// sorted-set sub-indexes, all storing the encoded Record envelope so
// values can be reconstructed without external state. Grounded on
// original_source/src/index/mod.rs.
package index

import (
	"sort"
	"sync"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/datatypes"
)

// Index is the primary index: one multi-reader/single-writer lock
// guards all four substructures (spec §5: "the primary index is
// guarded by one multi-reader/single-writer lock").
type Index struct {
	mu sync.RWMutex

	kvs        map[string]*codec.Record
	orderedKey []string // kept sorted; supports RangeScan

	lists *datatypes.List
	sets  *datatypes.Set
	zsets *datatypes.ZSets
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		kvs:   make(map[string]*codec.Record),
		lists: datatypes.NewList(),
		sets:  datatypes.NewSet(),
		zsets: datatypes.NewZSets(),
	}
}

// Get returns the Record for key, if present (spec §3.6: "every read
// path queries the memtable first, the index second" — the memtable
// layer is responsible for that ordering; Index only serves its own
// layer).
func (idx *Index) Get(key string) (*codec.Record, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	r, ok := idx.kvs[key]
	return r, ok
}

// Put inserts or overwrites the Record for key (spec §3.6: "after the
// index worker applies a Put for key K, kvs[K] is the most recent
// Record for K").
func (idx *Index) Put(key string, record *codec.Record) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.kvs[key]; !exists {
		idx.insertSortedKey(key)
	}
	idx.kvs[key] = record
}

// Del removes key from the ordered map.
func (idx *Index) Del(key string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.kvs[key]; !exists {
		return
	}
	delete(idx.kvs, key)
	idx.removeSortedKey(key)
}

// RangeScan returns every Record whose key is in [start, end]
// (inclusive), in ascending key order.
func (idx *Index) RangeScan(start, end string) []*codec.Record {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	lo := sort.SearchStrings(idx.orderedKey, start)
	var result []*codec.Record
	for i := lo; i < len(idx.orderedKey); i++ {
		k := idx.orderedKey[i]
		if k > end {
			break
		}
		result = append(result, idx.kvs[k])
	}
	return result
}

func (idx *Index) insertSortedKey(key string) {
	i := sort.SearchStrings(idx.orderedKey, key)
	idx.orderedKey = append(idx.orderedKey, "")
	copy(idx.orderedKey[i+1:], idx.orderedKey[i:])
	idx.orderedKey[i] = key
}

func (idx *Index) removeSortedKey(key string) {
	i := sort.SearchStrings(idx.orderedKey, key)
	if i < len(idx.orderedKey) && idx.orderedKey[i] == key {
		idx.orderedKey = append(idx.orderedKey[:i], idx.orderedKey[i+1:]...)
	}
}

// --- List sub-index ---

// LPush encodes record and pushes it to the front of key's list.
func (idx *Index) LPush(key string, record *codec.Record) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.lists.LPush(key, [][]byte{record.Encode()})
}

// LPushX only pushes if key already has a list.
func (idx *Index) LPushX(key string, record *codec.Record) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.lists.LPushX(key, [][]byte{record.Encode()})
}

// RPush encodes record and pushes it to the back of key's list.
func (idx *Index) RPush(key string, record *codec.Record) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.lists.RPush(key, [][]byte{record.Encode()})
}

// RPushX only pushes if key already has a list.
func (idx *Index) RPushX(key string, record *codec.Record) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.lists.RPushX(key, [][]byte{record.Encode()})
}

// LPop removes and decodes the front record of key's list.
func (idx *Index) LPop(key string) (*codec.Record, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	b := idx.lists.LPop(key)
	if b == nil {
		return nil, nil
	}
	return codec.DecodeRecord(b)
}

// RPop removes and decodes the back record of key's list.
func (idx *Index) RPop(key string) (*codec.Record, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	b := idx.lists.RPop(key)
	if b == nil {
		return nil, nil
	}
	return codec.DecodeRecord(b)
}

// LLen returns the length of key's list (0 if absent).
func (idx *Index) LLen(key string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lists.LLen(key)
}

// LIndex decodes the record at index in key's list.
func (idx *Index) LIndex(key string, index int) (*codec.Record, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	b := idx.lists.LIndex(key, index)
	if b == nil {
		return nil, nil
	}
	return codec.DecodeRecord(b)
}

// LSet overwrites the record at index (auxIndex from the index
// worker's task tuple, spec §4.7).
func (idx *Index) LSet(key string, index int, record *codec.Record) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.lists.LSet(key, index, record.Encode())
}

// LRange decodes every record in [start, end] of key's list.
func (idx *Index) LRange(key string, start, end int) ([]*codec.Record, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	raw := idx.lists.LRange(key, start, end)
	result := make([]*codec.Record, 0, len(raw))
	for _, b := range raw {
		r, err := codec.DecodeRecord(b)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// --- Set sub-index ---

// SAdd adds member to key's set, storing record's encoding as its
// payload.
func (idx *Index) SAdd(key, member string, record *codec.Record) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.sets.SAdd(key, [][2][]byte{{[]byte(member), record.Encode()}})
}

// SRem removes members from key's set.
func (idx *Index) SRem(key string, members []string) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	raw := make([][]byte, len(members))
	for i, m := range members {
		raw[i] = []byte(m)
	}
	return idx.sets.SRem(key, raw)
}

// SCard returns the cardinality of key's set.
func (idx *Index) SCard(key string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.sets.SCard(key)
}

// SIsMember reports whether member is in key's set.
func (idx *Index) SIsMember(key, member string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.sets.SIsMember(key, []byte(member))
}

// SMembers decodes every record in key's set.
func (idx *Index) SMembers(key string) ([]*codec.Record, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return decodeAll(idx.sets.SMembers(key))
}

// SUnion decodes every record in the union of key's set with others.
func (idx *Index) SUnion(key string, others ...string) ([]*codec.Record, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return decodeAll(idx.sets.SUnion(key, others...))
}

// SInter decodes every record in the intersection of key's set with
// others.
func (idx *Index) SInter(key string, others ...string) ([]*codec.Record, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return decodeAll(idx.sets.SInter(key, others...))
}

// SDiff decodes every record in key's set that is absent from others.
func (idx *Index) SDiff(key string, others ...string) ([]*codec.Record, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return decodeAll(idx.sets.SDiff(key, others...))
}

func decodeAll(raw [][]byte) ([]*codec.Record, error) {
	result := make([]*codec.Record, 0, len(raw))
	for _, b := range raw {
		r, err := codec.DecodeRecord(b)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// --- Sorted-set sub-index ---

// ZAdd inserts or updates member in key's sorted set at score,
// storing record's encoding as the node's payload.
func (idx *Index) ZAdd(key, member string, score float64, record *codec.Record) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.zsets.GetOrCreate(key).Put(member, record.Encode(), score)
}

// ZRem removes member from key's sorted set.
func (idx *Index) ZRem(key, member string) (*codec.Record, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	z := idx.zsets.Get(key)
	if z == nil {
		return nil, nil
	}
	payload, ok := z.Remove(member)
	idx.zsets.DeleteIfEmpty(key)
	if !ok {
		return nil, nil
	}
	return codec.DecodeRecord(payload)
}

// ZGetByRankRange decodes the records with rank in [start, end].
func (idx *Index) ZGetByRankRange(key string, start, end int, remove bool) ([]*codec.Record, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	z := idx.zsets.Get(key)
	if z == nil {
		return nil, nil
	}
	nodes := z.GetByRankRange(start, end, remove)
	if remove {
		idx.zsets.DeleteIfEmpty(key)
	}
	return decodeNodes(nodes)
}

// ZGetByRank decodes the single record at rank.
func (idx *Index) ZGetByRank(key string, rank int, remove bool) (*codec.Record, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	z := idx.zsets.Get(key)
	if z == nil {
		return nil, nil
	}
	node, ok := z.GetByRank(rank, remove)
	if remove {
		idx.zsets.DeleteIfEmpty(key)
	}
	if !ok {
		return nil, nil
	}
	return codec.DecodeRecord(node.Value)
}

// ZGetByKey decodes the record for member in key's sorted set.
func (idx *Index) ZGetByKey(key, member string) (*codec.Record, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	z := idx.zsets.Get(key)
	if z == nil {
		return nil, nil
	}
	node, ok := z.GetByKey(member)
	if !ok {
		return nil, nil
	}
	return codec.DecodeRecord(node.Value)
}

// ZFindRank returns the 1-based rank of member from the head.
func (idx *Index) ZFindRank(key, member string) (int, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	z := idx.zsets.Get(key)
	if z == nil {
		return 0, false
	}
	return z.FindRank(member)
}

// ZFindRevRank returns the 1-based rank of member from the tail.
func (idx *Index) ZFindRevRank(key, member string) (int, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	z := idx.zsets.Get(key)
	if z == nil {
		return 0, false
	}
	return z.FindRevRank(member)
}

// ZGetByScoreRange decodes the records with score in [start, end]
// (or the reversed range if start > end).
func (idx *Index) ZGetByScoreRange(key string, start, end float64, limit int, excludeStart, excludeEnd bool) ([]*codec.Record, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	z := idx.zsets.Get(key)
	if z == nil {
		return nil, nil
	}
	nodes := z.GetByScoreRange(start, end, limit, excludeStart, excludeEnd)
	return decodeNodes(nodes)
}

func decodeNodes(nodes []datatypes.ZslNode) ([]*codec.Record, error) {
	result := make([]*codec.Record, 0, len(nodes))
	for _, n := range nodes {
		r, err := codec.DecodeRecord(n.Value)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// KeyType reports which substructure holds key, for callers that
// need to validate an operation before dispatching (spec §4.6:
// EntryDataTypeOpInvalid). Checked in a fixed priority order since
// the four substructures share one namespace only by convention, not
// by construction.
func (idx *Index) KeyType(key string) (codec.DataType, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if _, ok := idx.kvs[key]; ok {
		return codec.DataTypeString, true
	}
	if idx.lists.LLen(key) > 0 {
		return codec.DataTypeList, true
	}
	if idx.sets.SCard(key) > 0 {
		return codec.DataTypeSet, true
	}
	if z := idx.zsets.Get(key); z != nil && z.Len() > 0 {
		return codec.DataTypeZSet, true
	}
	return 0, false
}
