// Package memtable implements the WAL-first in-memory write buffer
// (spec §4.6): every mutation is encoded as a codec.Entry, appended to
// the owning WAL, and only then applied to the in-memory substructure
// matching its data type. Grounded on
// original_source/src/memtable/mod.rs, restructured onto this
// module's codec/wal/datatypes packages instead of the Rust crate's
// own types.
//
// For list/set/sorted-set operations, an Entry's bucket field carries
// the container's key (the list/set/sorted-set name) and its key
// field carries the member identifier — mirroring how the original
// splits "bucket" (container) from "key" (element) in
// original_source/src/memtable/mod.rs, but collapsed to the single
// flat namespace spec §3.4 describes (no separate bucket-of-buckets).
// String Put/Del have no container, so they use key directly and
// leave bucket empty.
package memtable

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/datatypes"
	"github.com/arrowdb/arrowdb/internal/errs"
	"github.com/arrowdb/arrowdb/internal/fileio"
	"github.com/arrowdb/arrowdb/internal/wal"
)

// Memtable is one WAL-backed write buffer. A DB holds several: one
// mutable (accepting writes) and zero or more sealed immutable ones
// awaiting flush (spec §4.6: "sealing").
type Memtable struct {
	mu sync.RWMutex

	wal *wal.WAL

	kvs        map[string]*codec.Entry
	orderedKey []string

	lists *datatypes.List
	sets  *datatypes.Set
	zsets *datatypes.ZSets

	keyCount  int
	sizeBytes uint64
	sealed    bool
}

// New wraps an already-open WAL in a fresh, empty, mutable Memtable.
func New(w *wal.WAL) *Memtable {
	return &Memtable{
		wal:   w,
		kvs:   make(map[string]*codec.Entry),
		lists: datatypes.NewList(),
		sets:  datatypes.NewSet(),
		zsets: datatypes.NewZSets(),
	}
}

// Open opens (or creates) the WAL at path and replays every valid
// Entry from it into a fresh Memtable, stopping at the first
// CRC-invalid or truncated record (spec §9 Open Question #1;
// SPEC_FULL.md §12: "WAL replay on open"). The returned Memtable is
// ready to accept further writes at the WAL's post-replay cursor.
func Open(fileID uint64, path string, fileSizeMB uint64, rwMode fileio.RWMode) (*Memtable, error) {
	w, err := wal.Open(fileID, path, fileSizeMB, rwMode)
	if err != nil {
		return nil, err
	}
	m := New(w)

	entries, err := w.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		m.applyReplayed(e)
	}
	return m, nil
}

// applyReplayed re-applies an already-durable Entry to the in-memory
// substructures, bypassing the WAL write every live mutation goes
// through (the entry is already on disk).
func (m *Memtable) applyReplayed(e *codec.Entry) {
	if err := validateDataTypeOp(e); err != nil {
		log.Printf("memtable: skipping replayed entry with invalid data_type/operate: %v", err)
		return
	}

	key := string(e.Key)
	bucket := string(e.Bucket)
	raw := e.Encode()

	switch codec.Operate(e.Header.Operate) {
	case codec.OpPut:
		if _, exists := m.kvs[key]; !exists {
			m.insertSortedKey(key)
		}
		m.kvs[key] = e
	case codec.OpDel:
		if _, exists := m.kvs[key]; exists {
			delete(m.kvs, key)
			m.removeSortedKey(key)
		}
	case codec.OpLLpush, codec.OpLLpushx:
		m.lists.LPush(bucket, [][]byte{raw})
	case codec.OpLRpush, codec.OpLRpushx:
		m.lists.RPush(bucket, [][]byte{raw})
	case codec.OpLLpop:
		m.lists.LPop(bucket)
	case codec.OpLRpop:
		m.lists.RPop(bucket)
	case codec.OpSAdd:
		m.sets.SAdd(bucket, [][2][]byte{{e.Key, raw}})
	case codec.OpSRem:
		m.sets.SRem(bucket, [][]byte{e.Key})
	case codec.OpZPut:
		member, score := splitZSetKey(e.Key)
		m.zsets.GetOrCreate(bucket).Put(member, raw, score)
	case codec.OpZRem:
		member, _ := splitZSetKey(e.Key)
		if z := m.zsets.Get(bucket); z != nil {
			z.Remove(member)
			m.zsets.DeleteIfEmpty(bucket)
		}
	}

	m.keyCount++
	m.sizeBytes += uint64(len(raw))
}

// splitZSetKey recovers member and score from an entry key of the
// form "<member>|<score>". An unparsable score becomes 0.0 (spec §6).
func splitZSetKey(entryKey []byte) (member string, score float64) {
	s := string(entryKey)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == codec.ZESTKeyValSplitChar {
			member = s[:i]
			fmt.Sscanf(s[i+1:], "%g", &score)
			return member, score
		}
	}
	return s, 0.0
}

// FileID returns the id of the backing WAL file.
func (m *Memtable) FileID() uint64 { return m.wal.FileID }

// LogOnly appends an already-built Entry to the WAL for durability
// without touching any in-memory substructure. The engine uses this
// for datatypes whose authoritative readable state it keeps in the
// index rather than in the memtable (container types) — the WAL entry
// still exists for crash
// recovery, it's just not re-derived from this memtable's own buffer.
func (m *Memtable) LogOnly(e *codec.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeEntry(e)
}

// Close flushes and releases the memtable's WAL handle. The in-memory
// substructures are simply dropped; durability is already guaranteed
// by the WAL (spec §5: "flush WALs, release FDs" at engine shutdown).
func (m *Memtable) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.wal.Sync(); err != nil {
		return err
	}
	m.wal.Close()
	return nil
}

// Seal marks the memtable immutable: once sealed, no further writes
// are accepted and it becomes a candidate for the flush worker (spec
// §4.6).
func (m *Memtable) Seal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sealed = true
}

// Sealed reports whether the memtable has stopped accepting writes.
func (m *Memtable) Sealed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sealed
}

// IsFull reports whether the memtable has crossed either configured
// threshold and should be sealed: a key-count cap (maxKeys) or a byte
// size (maxSizeMB, spec §6's memtable_size_mb).
func (m *Memtable) IsFull(maxKeys int, maxSizeMB uint64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.keyCount >= maxKeys || m.sizeBytes >= maxSizeMB*1024*1024
}

// legalDataTypeOps maps each DataType to the set of Operate tags that
// may mutate it (spec §4.6 step 3: "dispatch by (data_type, operate)
// to the matching in-memory substructure; if the combination is
// invalid, fail EntryDataTypeOpInvalid"). Only write-side operations
// appear here — pure reads (LLen, SCard, ZFindRank, ...) never build
// an Entry and so never reach writeEntry.
var legalDataTypeOps = map[codec.DataType]map[codec.Operate]bool{
	codec.DataTypeString: {codec.OpPut: true, codec.OpDel: true},
	codec.DataTypeList: {
		codec.OpLLpush: true, codec.OpLLpushx: true,
		codec.OpLRpush: true, codec.OpLRpushx: true,
		codec.OpLLpop: true, codec.OpLRpop: true,
		codec.OpLSet: true,
	},
	codec.DataTypeSet:  {codec.OpSAdd: true, codec.OpSRem: true},
	codec.DataTypeZSet: {codec.OpZPut: true, codec.OpZRem: true},
}

// validateDataTypeOp reports whether e's (data_type, operate) pair is
// one a substructure actually understands.
func validateDataTypeOp(e *codec.Entry) error {
	dataType := codec.DataType(e.Header.DataType)
	op := codec.Operate(e.Header.Operate)
	if legalDataTypeOps[dataType][op] {
		return nil
	}
	return &errs.EntryDataTypeOpInvalid{
		Bucket:   string(e.Bucket),
		Key:      string(e.Key),
		Op:       e.Header.Operate,
		DataType: e.Header.DataType,
	}
}

// writeEntry appends e to the WAL and accounts for its size. It is
// the single choke point every mutating operation passes through, so
// that "WAL write failed ⇒ in-memory state unchanged" (spec §4.6)
// always holds: callers must not touch their substructure before
// calling this.
func (m *Memtable) writeEntry(e *codec.Entry) error {
	if m.sealed {
		return &errs.OtherError{Cause: fmt.Errorf("memtable: write to sealed memtable")}
	}
	if err := validateDataTypeOp(e); err != nil {
		return err
	}
	b := e.Encode()
	if _, err := m.wal.Write(b); err != nil {
		return err
	}
	if err := m.wal.Sync(); err != nil {
		return err
	}
	m.keyCount++
	m.sizeBytes += uint64(len(b))
	return nil
}

// --- strings ---

// Put writes key=value with the given ttl (0 = no expiry).
func (m *Memtable) Put(key, value []byte, ttl uint32, txID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := codec.NewEntry(nil, key, value, codec.OpPut, ttl, codec.DataTypeString, txID)
	if err := m.writeEntry(e); err != nil {
		return err
	}
	k := string(key)
	if _, exists := m.kvs[k]; !exists {
		m.insertSortedKey(k)
	}
	m.kvs[k] = e
	return nil
}

// Del removes key.
func (m *Memtable) Del(key []byte, txID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := codec.NewEntry(nil, key, nil, codec.OpDel, 0, codec.DataTypeString, txID)
	if err := m.writeEntry(e); err != nil {
		return err
	}
	k := string(key)
	if _, exists := m.kvs[k]; exists {
		delete(m.kvs, k)
		m.removeSortedKey(k)
	}
	return nil
}

// Get returns the live entry for key. An expired entry is reported as
// absent, not as an error (spec §4.6).
func (m *Memtable) Get(key []byte) (*codec.Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.kvs[string(key)]
	if !ok || e.IsExpired() {
		return nil, false
	}
	return e, true
}

// RangeScan returns every live entry whose key is in [start, end]
// (inclusive), in ascending key order, so a caller can merge it with
// the index's own range scan over already-flushed keys.
func (m *Memtable) RangeScan(start, end string) []*codec.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lo := sort.SearchStrings(m.orderedKey, start)
	var result []*codec.Entry
	for i := lo; i < len(m.orderedKey); i++ {
		k := m.orderedKey[i]
		if k > end {
			break
		}
		if e := m.kvs[k]; !e.IsExpired() {
			result = append(result, e)
		}
	}
	return result
}

func (m *Memtable) insertSortedKey(key string) {
	i := sort.SearchStrings(m.orderedKey, key)
	m.orderedKey = append(m.orderedKey, "")
	copy(m.orderedKey[i+1:], m.orderedKey[i:])
	m.orderedKey[i] = key
}

func (m *Memtable) removeSortedKey(key string) {
	i := sort.SearchStrings(m.orderedKey, key)
	if i < len(m.orderedKey) && m.orderedKey[i] == key {
		m.orderedKey = append(m.orderedKey[:i], m.orderedKey[i+1:]...)
	}
}

// --- lists ---

// LPush appends value entries to the front of key's list.
func (m *Memtable) LPush(key []byte, values [][]byte, txID uint64) (int, error) {
	return m.pushList(key, values, codec.OpLLpush, txID, false, true)
}

// LPushX is LPush, but only if key already holds a list.
func (m *Memtable) LPushX(key []byte, values [][]byte, txID uint64) (int, error) {
	return m.pushList(key, values, codec.OpLLpushx, txID, true, true)
}

// RPush appends value entries to the back of key's list.
func (m *Memtable) RPush(key []byte, values [][]byte, txID uint64) (int, error) {
	return m.pushList(key, values, codec.OpLRpush, txID, false, false)
}

// RPushX is RPush, but only if key already holds a list.
func (m *Memtable) RPushX(key []byte, values [][]byte, txID uint64) (int, error) {
	return m.pushList(key, values, codec.OpLRpushx, txID, true, false)
}

func (m *Memtable) pushList(key []byte, values [][]byte, op codec.Operate, txID uint64, requireExisting, front bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if requireExisting && m.lists.LLen(string(key)) == 0 {
		return 0, nil
	}

	encoded := make([][]byte, len(values))
	for i, v := range values {
		e := codec.NewEntry(key, nil, v, op, 0, codec.DataTypeList, txID)
		if err := m.writeEntry(e); err != nil {
			return 0, err
		}
		encoded[i] = e.Encode()
	}
	if front {
		return m.lists.LPush(string(key), encoded), nil
	}
	return m.lists.RPush(string(key), encoded), nil
}

// LPop removes and decodes the front entry of key's list.
func (m *Memtable) LPop(key []byte, txID uint64) (*codec.Entry, error) {
	return m.popList(key, codec.OpLLpop, txID, true)
}

// RPop removes and decodes the back entry of key's list.
func (m *Memtable) RPop(key []byte, txID uint64) (*codec.Entry, error) {
	return m.popList(key, codec.OpLRpop, txID, false)
}

func (m *Memtable) popList(key []byte, op codec.Operate, txID uint64, front bool) (*codec.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var raw []byte
	if front {
		raw = m.lists.LPop(string(key))
	} else {
		raw = m.lists.RPop(string(key))
	}
	if raw == nil {
		return nil, nil
	}
	popped, err := codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	e := codec.NewEntry(key, nil, popped.Value, op, 0, codec.DataTypeList, txID)
	if err := m.writeEntry(e); err != nil {
		return nil, err
	}
	return popped, nil
}

// LLen returns the length of key's list.
func (m *Memtable) LLen(key []byte) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lists.LLen(string(key))
}

// LIndex decodes the entry at index in key's list.
func (m *Memtable) LIndex(key []byte, index int) (*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw := m.lists.LIndex(string(key), index)
	if raw == nil {
		return nil, nil
	}
	return codec.Decode(raw)
}

// LSet overwrites the entry at index.
func (m *Memtable) LSet(key []byte, index int, value []byte, txID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := codec.NewEntry(key, nil, value, codec.OpLSet, 0, codec.DataTypeList, txID)
	if err := m.writeEntry(e); err != nil {
		return false, err
	}
	return m.lists.LSet(string(key), index, e.Encode()), nil
}

// LRange decodes every entry in [start, end] of key's list.
func (m *Memtable) LRange(key []byte, start, end int) ([]*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raws := m.lists.LRange(string(key), start, end)
	result := make([]*codec.Entry, 0, len(raws))
	for _, raw := range raws {
		e, err := codec.Decode(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

// --- sets ---

// SAdd adds member to key's set. Returns the number of members newly
// added.
func (m *Memtable) SAdd(key, member, value []byte, txID uint64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := codec.NewEntry(key, member, value, codec.OpSAdd, 0, codec.DataTypeSet, txID)
	if err := m.writeEntry(e); err != nil {
		return 0, err
	}
	return m.sets.SAdd(string(key), [][2][]byte{{member, e.Encode()}}), nil
}

// SRem removes members from key's set.
func (m *Memtable) SRem(key []byte, members [][]byte, txID uint64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, member := range members {
		e := codec.NewEntry(key, member, nil, codec.OpSRem, 0, codec.DataTypeSet, txID)
		if err := m.writeEntry(e); err != nil {
			return 0, err
		}
	}
	return m.sets.SRem(string(key), members), nil
}

// SCard returns the cardinality of key's set.
func (m *Memtable) SCard(key []byte) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sets.SCard(string(key))
}

// SIsMember reports whether member is in key's set.
func (m *Memtable) SIsMember(key, member []byte) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sets.SIsMember(string(key), member)
}

// SMembers decodes every entry in key's set.
func (m *Memtable) SMembers(key []byte) ([]*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeAll(m.sets.SMembers(string(key)))
}

// SUnion decodes every entry in the union of key's set with others.
func (m *Memtable) SUnion(key []byte, others ...string) ([]*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeAll(m.sets.SUnion(string(key), others...))
}

// SInter decodes every entry in the intersection of key's set with
// others.
func (m *Memtable) SInter(key []byte, others ...string) ([]*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeAll(m.sets.SInter(string(key), others...))
}

// SDiff decodes every entry of key's set absent from others.
func (m *Memtable) SDiff(key []byte, others ...string) ([]*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeAll(m.sets.SDiff(string(key), others...))
}

func decodeAll(raws [][]byte) ([]*codec.Entry, error) {
	result := make([]*codec.Entry, 0, len(raws))
	for _, raw := range raws {
		e, err := codec.Decode(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

// --- sorted sets ---

// ZAdd inserts or updates member in key's sorted set at score. The
// WAL entry's key is "<member>|<score>" (spec §6:
// ZESTKeyValSplitChar) so replay can recover both fields; bucket
// carries the sorted set's own name.
func (m *Memtable) ZAdd(key []byte, member string, score float64, value []byte, txID uint64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entryKey := zsetEntryKey(member, score)
	e := codec.NewEntry(key, entryKey, value, codec.OpZPut, 0, codec.DataTypeZSet, txID)
	if err := m.writeEntry(e); err != nil {
		return 0, err
	}
	return m.zsets.GetOrCreate(string(key)).Put(member, e.Encode(), score), nil
}

// ZRem removes member from key's sorted set.
func (m *Memtable) ZRem(key []byte, member string, txID uint64) (*codec.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	z := m.zsets.Get(string(key))
	if z == nil {
		return nil, nil
	}
	node, ok := z.GetByKey(member)
	if !ok {
		return nil, nil
	}
	e := codec.NewEntry(key, zsetEntryKey(member, node.Score), nil, codec.OpZRem, 0, codec.DataTypeZSet, txID)
	if err := m.writeEntry(e); err != nil {
		return nil, err
	}
	payload, _ := z.Remove(member)
	m.zsets.DeleteIfEmpty(string(key))
	return codec.Decode(payload)
}

// ZGetByRankRange decodes the entries with rank in [start, end].
func (m *Memtable) ZGetByRankRange(key []byte, start, end int) ([]*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z := m.zsets.Get(string(key))
	if z == nil {
		return nil, nil
	}
	return decodeNodes(z.GetByRankRange(start, end, false))
}

// ZGetByRank decodes the single entry at rank.
func (m *Memtable) ZGetByRank(key []byte, rank int) (*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z := m.zsets.Get(string(key))
	if z == nil {
		return nil, nil
	}
	node, ok := z.GetByRank(rank, false)
	if !ok {
		return nil, nil
	}
	return codec.Decode(node.Value)
}

// ZGetByKey decodes the entry for member.
func (m *Memtable) ZGetByKey(key []byte, member string) (*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z := m.zsets.Get(string(key))
	if z == nil {
		return nil, nil
	}
	node, ok := z.GetByKey(member)
	if !ok {
		return nil, nil
	}
	return codec.Decode(node.Value)
}

// ZFindRank returns member's 1-based rank from the head.
func (m *Memtable) ZFindRank(key []byte, member string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z := m.zsets.Get(string(key))
	if z == nil {
		return 0, false
	}
	return z.FindRank(member)
}

// ZFindRevRank returns member's 1-based rank from the tail.
func (m *Memtable) ZFindRevRank(key []byte, member string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z := m.zsets.Get(string(key))
	if z == nil {
		return 0, false
	}
	return z.FindRevRank(member)
}

// ZGetByScoreRange decodes the entries with score in [start, end].
func (m *Memtable) ZGetByScoreRange(key []byte, start, end float64, limit int, excludeStart, excludeEnd bool) ([]*codec.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z := m.zsets.Get(string(key))
	if z == nil {
		return nil, nil
	}
	return decodeNodes(z.GetByScoreRange(start, end, limit, excludeStart, excludeEnd))
}

// SnapshotItem is one resident mutation recovered from a memtable's
// in-memory substructures, in a form the engine can hand to the flush
// and index workers as if it were a freshly-applied Record (spec
// §4.7's hand-off protocol, run once per memtable reopened when the
// engine starts instead of once per live mutation).
type SnapshotItem struct {
	Op     codec.Operate
	Bucket []byte // container key for list/set/sorted-set; nil for strings
	Entry  *codec.Entry
}

// Snapshot returns every live entry currently resident in the
// memtable, re-expressed as the operation that would recreate it
// against an empty substructure (Put for strings, RPush for list
// elements in front-to-back order, SAdd for set members, ZPut for
// sorted-set members). Expired string entries are omitted.
func (m *Memtable) Snapshot() []SnapshotItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []SnapshotItem

	for _, k := range m.orderedKey {
		e := m.kvs[k]
		if e.IsExpired() {
			continue
		}
		items = append(items, SnapshotItem{Op: codec.OpPut, Entry: e})
	}

	for _, key := range m.lists.Keys() {
		for _, raw := range m.lists.LRange(key, 0, 1<<30) {
			e, err := codec.Decode(raw)
			if err != nil {
				continue
			}
			items = append(items, SnapshotItem{Op: codec.OpLRpush, Bucket: []byte(key), Entry: e})
		}
	}

	for _, key := range m.sets.Keys() {
		for _, raw := range m.sets.SMembers(key) {
			e, err := codec.Decode(raw)
			if err != nil {
				continue
			}
			items = append(items, SnapshotItem{Op: codec.OpSAdd, Bucket: []byte(key), Entry: e})
		}
	}

	for _, key := range m.zsets.Keys() {
		z := m.zsets.Get(key)
		if z == nil {
			continue
		}
		for _, node := range z.GetByRankRange(1, z.Len(), false) {
			e, err := codec.Decode(node.Value)
			if err != nil {
				continue
			}
			items = append(items, SnapshotItem{Op: codec.OpZPut, Bucket: []byte(key), Entry: e})
		}
	}

	return items
}

func decodeNodes(nodes []datatypes.ZslNode) ([]*codec.Entry, error) {
	result := make([]*codec.Entry, 0, len(nodes))
	for _, n := range nodes {
		e, err := codec.Decode(n.Value)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

func zsetEntryKey(member string, score float64) []byte {
	return []byte(fmt.Sprintf("%s%c%v", member, codec.ZESTKeyValSplitChar, score))
}
