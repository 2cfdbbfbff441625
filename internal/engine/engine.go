// Package engine ties the WAL-backed memtable, the flushed-data index
// and the background worker harness into one storage handle (spec
// §4.8 "engine glue"). Grounded on the teacher's
// internal/engine/engine.go for overall lifecycle shape (New/recover,
// atomic stats counters, fmt.Errorf-wrapped failures, a mutex-guarded
// Close) — the original engine's hotkey/timeseries/CDC/snapshot
// subsystems have no counterpart here (see DESIGN.md).
//
// Container types (lists, sets, sorted sets) are read exclusively
// from the index: every mutation applies to it synchronously, in the
// same call that durs the WAL entry, so a read never has to decide
// which of several memtable generations holds the authoritative copy.
// Strings keep the full "memtable first, index second" read path
// spec §3.6 describes, since a string's Entry lives wholly in exactly
// one memtable's kvs map until it is flushed. See DESIGN.md for the
// longer rationale.
package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arrowdb/arrowdb/internal/bgworkers"
	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/errs"
	"github.com/arrowdb/arrowdb/internal/fileio"
	"github.com/arrowdb/arrowdb/internal/index"
	"github.com/arrowdb/arrowdb/internal/memtable"
)

// maxMemtableKeys bounds IsFull's key-count threshold. The engine
// only configures a size-based seal (MemtableSizeMB); a caller-tunable
// key cap isn't part of spec §6, so this is fixed high enough that
// the byte threshold always binds first.
const maxMemtableKeys = 1 << 30

// Engine is the top-level storage handle. One Engine owns one
// directory's worth of WAL files, data files and the in-memory index
// rebuilt from them.
type Engine struct {
	opts    Options
	factory *fileio.Factory

	mu        sync.RWMutex
	active    *memtable.Memtable
	immutable []*memtable.Memtable
	nextFileID uint64

	idx *index.Index

	workersMu    sync.Mutex
	flushWorkers map[uint64]*bgworkers.FlushWorker
	indexWorker  *bgworkers.IndexWorker

	cursorMu    sync.Mutex
	writeCursor map[uint64]uint64

	nextTxID atomic.Uint64

	totalCommands atomic.Int64
	totalReads    atomic.Int64
	totalWrites   atomic.Int64
	startTime     time.Time
}

// New opens (or creates) an engine rooted at opts.Dir, replaying every
// WAL file found there into the index before accepting new writes
// (spec §9 Open Question #1).
func New(opts Options) (*Engine, error) {
	if opts.Dir == "" {
		return nil, &errs.OtherError{Cause: fmt.Errorf("engine: Dir must not be empty")}
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, &errs.IOError{Cause: err}
	}
	if err := fileio.InitFDManager(opts.FDCacheSize); err != nil {
		log.Printf("engine: %v; reusing the process-wide FD cache already in place", err)
	}

	e := &Engine{
		opts:         opts,
		factory:      fileio.NewFactory(opts.RWMode),
		idx:          index.New(),
		flushWorkers: make(map[uint64]*bgworkers.FlushWorker),
		writeCursor:  make(map[uint64]uint64),
		startTime:    time.Now(),
	}
	e.indexWorker = bgworkers.NewIndexWorker(e.idx)
	e.nextTxID.Store(1)

	fileIDs, err := discoverMemtableFileIDs(opts.Dir)
	if err != nil {
		return nil, err
	}
	if len(fileIDs) == 0 {
		fileIDs = []uint64{0}
	}

	for i, id := range fileIDs {
		mt, err := e.openMemtable(id)
		if err != nil {
			return nil, fmt.Errorf("engine: opening memtable %d: %w", id, err)
		}
		e.absorbOnOpen(mt)
		if i == len(fileIDs)-1 {
			e.active = mt
		} else {
			mt.Seal()
			e.immutable = append(e.immutable, mt)
		}
	}
	e.nextFileID = fileIDs[len(fileIDs)-1]
	return e, nil
}

func (e *Engine) openMemtable(id uint64) (*memtable.Memtable, error) {
	path := filepath.Join(e.opts.Dir, fmt.Sprintf("%d.wal", id))
	return memtable.Open(id, path, e.opts.DatFileSizeMB, e.opts.RWMode)
}

// discoverMemtableFileIDs lists every "{id}.wal" file under dir, in
// ascending id order. A missing dir is treated as empty, not an error
// (spec: a fresh directory is a legitimate starting state).
func discoverMemtableFileIDs(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &errs.IOError{Cause: err}
	}

	var ids []uint64
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if !strings.HasSuffix(name, ".wal") {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimSuffix(name, ".wal"), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// absorbOnOpen reconciles the index with everything a just-opened
// memtable's WAL already proved durable. Only called during New,
// since the index starts empty on every process start and the live
// write path keeps it current from then on (see the package doc).
func (e *Engine) absorbOnOpen(mt *memtable.Memtable) {
	fw := e.flushWorkerFor(mt.FileID())
	for _, item := range mt.Snapshot() {
		record := e.assignRecord(mt.FileID(), item.Entry)
		if fw != nil {
			fw.Send(record)
		}
		e.indexWorker.Do(bgworkers.IndexTask{Op: item.Op, Record: record})
	}
}

func (e *Engine) flushWorkerFor(fileID uint64) *bgworkers.FlushWorker {
	e.workersMu.Lock()
	defer e.workersMu.Unlock()
	if fw, ok := e.flushWorkers[fileID]; ok {
		return fw
	}
	fw, err := bgworkers.NewFlushWorker(e.opts.Dir, uint32(fileID), e.opts.DatFileSizeMB, e.factory)
	if err != nil {
		log.Printf("engine: failed to start flush worker for file %d: %v", fileID, err)
		return nil
	}
	e.flushWorkers[fileID] = fw
	return fw
}

// assignRecord allocates the next offset in fileID's data file for
// entry and wraps it as a Record, ready to hand to the flush and
// index workers.
func (e *Engine) assignRecord(fileID uint64, entry *codec.Entry) *codec.Record {
	e.cursorMu.Lock()
	offset := e.writeCursor[fileID]
	e.writeCursor[fileID] = offset + uint64(entry.Size())
	e.cursorMu.Unlock()

	hint := &codec.Hint{Key: entry.Key, FileID: uint32(fileID), Offset: offset, Header: entry.Header}
	return &codec.Record{Hint: hint, Entry: entry}
}

func (e *Engine) recordRead() {
	e.totalReads.Add(1)
	e.totalCommands.Add(1)
}

func (e *Engine) recordWrite() {
	e.totalWrites.Add(1)
	e.totalCommands.Add(1)
}

// maybeSeal seals the active memtable and opens a fresh one once the
// configured threshold is crossed (spec §4.6). Sealed memtables are
// kept resident for the lifetime of the engine: strings still consult
// them on read (see the package doc), and there is no flush-completion
// acknowledgment protocol that would let the engine safely drop one.
func (e *Engine) maybeSeal() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active.IsFull(maxMemtableKeys, e.opts.MemtableSizeMB) {
		return
	}

	sealed := e.active
	sealed.Seal()
	e.immutable = append(e.immutable, sealed)
	if len(e.immutable)+1 > e.opts.MaxMemtableNums {
		log.Printf("engine: %d memtables resident (max_memtable_nums=%d); flush is falling behind",
			len(e.immutable)+1, e.opts.MaxMemtableNums)
	}

	e.nextFileID++
	mt, err := e.openMemtable(e.nextFileID)
	if err != nil {
		log.Printf("engine: failed to open memtable %d after seal: %v", e.nextFileID, err)
		e.nextFileID--
		return
	}
	e.active = mt
}

// --- strings ---

// Put writes key=value with the given ttl (0 = no expiry).
func (e *Engine) Put(key, value []byte, ttl uint32) error {
	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	if err := active.Put(key, value, ttl, txID); err != nil {
		return err
	}
	e.recordWrite()

	entry := codec.NewEntry(nil, key, value, codec.OpPut, ttl, codec.DataTypeString, txID)
	record := e.assignRecord(active.FileID(), entry)
	if fw := e.flushWorkerFor(active.FileID()); fw != nil {
		fw.Send(record)
	}
	e.indexWorker.Send(bgworkers.IndexTask{Op: codec.OpPut, Record: record})

	e.maybeSeal()
	return nil
}

// Get returns key's value. It checks the active memtable, then each
// sealed memtable from most to least recent, then the index — the
// order spec §3.6 describes for strings.
func (e *Engine) Get(key []byte) ([]byte, bool) {
	e.recordRead()

	e.mu.RLock()
	active := e.active
	immutable := append([]*memtable.Memtable(nil), e.immutable...)
	e.mu.RUnlock()

	if entry, ok := active.Get(key); ok {
		return entry.Value, true
	}
	for i := len(immutable) - 1; i >= 0; i-- {
		if entry, ok := immutable[i].Get(key); ok {
			return entry.Value, true
		}
	}
	if record, ok := e.idx.Get(string(key)); ok {
		if record.Entry.IsExpired() {
			return nil, false
		}
		return record.Entry.Value, true
	}
	return nil, false
}

// Del removes key.
func (e *Engine) Del(key []byte) error {
	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	if err := active.Del(key, txID); err != nil {
		return err
	}
	e.recordWrite()

	entry := codec.NewEntry(nil, key, nil, codec.OpDel, 0, codec.DataTypeString, txID)
	record := e.assignRecord(active.FileID(), entry)
	if fw := e.flushWorkerFor(active.FileID()); fw != nil {
		fw.Send(record)
	}
	e.indexWorker.Do(bgworkers.IndexTask{Op: codec.OpDel, Record: record})

	e.maybeSeal()
	return nil
}

// Expire rewrites key with a new ttl, reusing the Put path. There is
// no dedicated OpTTL replay case in the memtable, so a bare TTL
// mutation is expressed as the Put it would take to recreate the same
// state (value unchanged, ttl updated).
func (e *Engine) Expire(key []byte, ttlSeconds uint32) (bool, error) {
	value, ok := e.Get(key)
	if !ok {
		return false, nil
	}
	return true, e.Put(key, value, ttlSeconds)
}

// --- lists ---

func (e *Engine) pushList(key []byte, values [][]byte, op codec.Operate, requireExisting, front bool) (int, error) {
	if requireExisting && e.idx.LLen(string(key)) == 0 {
		return 0, nil
	}

	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	last := e.idx.LLen(string(key))
	for _, v := range values {
		entry := codec.NewEntry(key, nil, v, op, 0, codec.DataTypeList, txID)
		if err := active.LogOnly(entry); err != nil {
			return 0, err
		}
		record := e.assignRecord(active.FileID(), entry)
		if fw := e.flushWorkerFor(active.FileID()); fw != nil {
			fw.Send(record)
		}
		result := e.indexWorker.Do(bgworkers.IndexTask{Op: op, Record: record})
		if result.Err != nil {
			return 0, result.Err
		}
		last = result.Count
	}
	if len(values) > 0 {
		e.recordWrite()
	}
	e.maybeSeal()
	return last, nil
}

// LPush inserts values one at a time at the front (spec §8 scenario
// 11: LPush("L", [v1,v2,v3]) leaves the list v3,v2,v1 front to back).
func (e *Engine) LPush(key []byte, values [][]byte) (int, error) {
	return e.pushList(key, values, codec.OpLLpush, false, true)
}

// LPushX is LPush, but only if key already holds a list (spec §9 Open
// Question #3: no auto-create).
func (e *Engine) LPushX(key []byte, values [][]byte) (int, error) {
	return e.pushList(key, values, codec.OpLLpushx, true, true)
}

// RPush inserts values one at a time at the back.
func (e *Engine) RPush(key []byte, values [][]byte) (int, error) {
	return e.pushList(key, values, codec.OpLRpush, false, false)
}

// RPushX is RPush, but only if key already holds a list.
func (e *Engine) RPushX(key []byte, values [][]byte) (int, error) {
	return e.pushList(key, values, codec.OpLRpushx, true, false)
}

func (e *Engine) popList(key []byte, op codec.Operate, front bool) ([]byte, bool, error) {
	popOp := codec.OpLLpop
	if !front {
		popOp = codec.OpLRpop
	}
	result := e.indexWorker.Do(bgworkers.IndexTask{
		Op:     popOp,
		Record: &codec.Record{Entry: &codec.Entry{Bucket: key}},
	})
	if result.Err != nil {
		return nil, false, result.Err
	}
	record := result.Record
	if record == nil {
		return nil, false, nil
	}

	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	entry := codec.NewEntry(key, nil, record.Entry.Value, op, 0, codec.DataTypeList, txID)
	if err := active.LogOnly(entry); err != nil {
		return nil, false, err
	}
	e.recordWrite()
	e.maybeSeal()
	return record.Entry.Value, true, nil
}

// LPop removes and returns the front value of key's list.
func (e *Engine) LPop(key []byte) ([]byte, bool, error) { return e.popList(key, codec.OpLLpop, true) }

// RPop removes and returns the back value of key's list.
func (e *Engine) RPop(key []byte) ([]byte, bool, error) { return e.popList(key, codec.OpLRpop, false) }

// LLen returns the length of key's list (0 if absent).
func (e *Engine) LLen(key []byte) int {
	e.recordRead()
	return e.idx.LLen(string(key))
}

// LIndex returns the value at index, or false if out of range.
func (e *Engine) LIndex(key []byte, index int) ([]byte, bool, error) {
	e.recordRead()
	r, err := e.idx.LIndex(string(key), index)
	if err != nil {
		return nil, false, err
	}
	if r == nil {
		return nil, false, nil
	}
	return r.Entry.Value, true, nil
}

// LSet overwrites the value at index. Returns false if key is absent
// or index is out of range.
func (e *Engine) LSet(key []byte, index int, value []byte) (bool, error) {
	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	entry := codec.NewEntry(key, nil, value, codec.OpLSet, 0, codec.DataTypeList, txID)
	record := e.assignRecord(active.FileID(), entry)
	result := e.indexWorker.Do(bgworkers.IndexTask{Op: codec.OpLSet, Record: record, Aux: index})
	if !result.Bool {
		return false, nil
	}
	if err := active.LogOnly(entry); err != nil {
		return false, err
	}
	if fw := e.flushWorkerFor(active.FileID()); fw != nil {
		fw.Send(record)
	}
	e.recordWrite()
	e.maybeSeal()
	return true, nil
}

// LRange returns the values in [start, end] of key's list, inclusive,
// clipped to the list's bounds.
func (e *Engine) LRange(key []byte, start, end int) ([][]byte, error) {
	e.recordRead()
	records, err := e.idx.LRange(string(key), start, end)
	if err != nil {
		return nil, err
	}
	return valuesOf(records), nil
}

// --- sets ---

// SAdd adds member with the given payload to key's set. Returns the
// number of members newly added (spec §9 Open Question #4).
func (e *Engine) SAdd(key, member, value []byte) (int, error) {
	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	entry := codec.NewEntry(key, member, value, codec.OpSAdd, 0, codec.DataTypeSet, txID)
	if err := active.LogOnly(entry); err != nil {
		return 0, err
	}
	record := e.assignRecord(active.FileID(), entry)
	if fw := e.flushWorkerFor(active.FileID()); fw != nil {
		fw.Send(record)
	}
	result := e.indexWorker.Do(bgworkers.IndexTask{Op: codec.OpSAdd, Record: record})
	if result.Err != nil {
		return 0, result.Err
	}
	e.recordWrite()
	e.maybeSeal()
	return result.Count, nil
}

// SRem removes members from key's set. Returns the number actually
// removed.
func (e *Engine) SRem(key []byte, members [][]byte) (int, error) {
	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	removed := 0
	for _, m := range members {
		entry := codec.NewEntry(key, m, nil, codec.OpSRem, 0, codec.DataTypeSet, txID)
		if err := active.LogOnly(entry); err != nil {
			return 0, err
		}
		result := e.indexWorker.Do(bgworkers.IndexTask{
			Op:     codec.OpSRem,
			Record: &codec.Record{Entry: &codec.Entry{Bucket: key, Key: m}},
		})
		if result.Err != nil {
			return 0, result.Err
		}
		removed += result.Count
	}
	if len(members) > 0 {
		e.recordWrite()
	}
	e.maybeSeal()
	return removed, nil
}

// SCard returns the cardinality of key's set.
func (e *Engine) SCard(key []byte) int {
	e.recordRead()
	return e.idx.SCard(string(key))
}

// SIsMember reports whether member is in key's set.
func (e *Engine) SIsMember(key, member []byte) bool {
	e.recordRead()
	return e.idx.SIsMember(string(key), string(member))
}

// SMembers returns the payload of every member of key's set.
func (e *Engine) SMembers(key []byte) ([][]byte, error) {
	e.recordRead()
	records, err := e.idx.SMembers(string(key))
	if err != nil {
		return nil, err
	}
	return valuesOf(records), nil
}

// SUnion returns the payloads of the union of key's set with others.
func (e *Engine) SUnion(key []byte, others ...string) ([][]byte, error) {
	e.recordRead()
	records, err := e.idx.SUnion(string(key), others...)
	if err != nil {
		return nil, err
	}
	return valuesOf(records), nil
}

// SInter returns the payloads of the intersection of key's set with
// others.
func (e *Engine) SInter(key []byte, others ...string) ([][]byte, error) {
	e.recordRead()
	records, err := e.idx.SInter(string(key), others...)
	if err != nil {
		return nil, err
	}
	return valuesOf(records), nil
}

// SDiff returns the payloads of members of key's set absent from
// others.
func (e *Engine) SDiff(key []byte, others ...string) ([][]byte, error) {
	e.recordRead()
	records, err := e.idx.SDiff(string(key), others...)
	if err != nil {
		return nil, err
	}
	return valuesOf(records), nil
}

// --- sorted sets ---

// ZAdd inserts or updates member in key's sorted set at score.
func (e *Engine) ZAdd(key []byte, member string, score float64, value []byte) (int, error) {
	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	entry := codec.NewEntry(key, zsetEntryKey(member, score), value, codec.OpZPut, 0, codec.DataTypeZSet, txID)
	if err := active.LogOnly(entry); err != nil {
		return 0, err
	}
	record := e.assignRecord(active.FileID(), entry)
	if fw := e.flushWorkerFor(active.FileID()); fw != nil {
		fw.Send(record)
	}
	result := e.indexWorker.Do(bgworkers.IndexTask{Op: codec.OpZPut, Record: record})
	if result.Err != nil {
		return 0, result.Err
	}
	e.recordWrite()
	e.maybeSeal()
	return result.Count, nil
}

// ZRem removes member from key's sorted set, returning its entry if
// it was present.
func (e *Engine) ZRem(key []byte, member string) (*codec.Entry, error) {
	result := e.indexWorker.Do(bgworkers.IndexTask{
		Op:     codec.OpZRem,
		Record: &codec.Record{Entry: &codec.Entry{Bucket: key, Key: []byte(member)}},
	})
	if result.Err != nil {
		return nil, result.Err
	}
	record := result.Record
	if record == nil {
		return nil, nil
	}

	txID := e.nextTxID.Add(1)
	e.mu.RLock()
	active := e.active
	e.mu.RUnlock()

	entry := codec.NewEntry(key, record.Entry.Key, nil, codec.OpZRem, 0, codec.DataTypeZSet, txID)
	if err := active.LogOnly(entry); err != nil {
		return nil, err
	}
	e.recordWrite()
	e.maybeSeal()
	return record.Entry, nil
}

// ZGetByRankRange returns the entries with rank in [start, end].
func (e *Engine) ZGetByRankRange(key []byte, start, end int) ([]*codec.Entry, error) {
	e.recordRead()
	records, err := e.idx.ZGetByRankRange(string(key), start, end, false)
	if err != nil {
		return nil, err
	}
	return entriesOf(records), nil
}

// ZGetByRank returns the single entry at rank.
func (e *Engine) ZGetByRank(key []byte, rank int) (*codec.Entry, error) {
	e.recordRead()
	r, err := e.idx.ZGetByRank(string(key), rank, false)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return r.Entry, nil
}

// ZGetByKey returns the entry for member in key's sorted set.
func (e *Engine) ZGetByKey(key []byte, member string) (*codec.Entry, error) {
	e.recordRead()
	r, err := e.idx.ZGetByKey(string(key), member)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return r.Entry, nil
}

// ZFindRank returns member's 1-based rank from the head.
func (e *Engine) ZFindRank(key []byte, member string) (int, bool) {
	e.recordRead()
	return e.idx.ZFindRank(string(key), member)
}

// ZFindRevRank returns member's 1-based rank from the tail.
func (e *Engine) ZFindRevRank(key []byte, member string) (int, bool) {
	e.recordRead()
	return e.idx.ZFindRevRank(string(key), member)
}

// ZGetByScoreRange returns the entries with score in [start, end] (or
// the reversed range if start > end), honoring exclusive bounds and a
// result limit.
func (e *Engine) ZGetByScoreRange(key []byte, start, end float64, limit int, excludeStart, excludeEnd bool) ([]*codec.Entry, error) {
	e.recordRead()
	records, err := e.idx.ZGetByScoreRange(string(key), start, end, limit, excludeStart, excludeEnd)
	if err != nil {
		return nil, err
	}
	return entriesOf(records), nil
}

func zsetEntryKey(member string, score float64) []byte {
	return []byte(fmt.Sprintf("%s%c%v", member, codec.ZESTKeyValSplitChar, score))
}

func valuesOf(records []*codec.Record) [][]byte {
	out := make([][]byte, 0, len(records))
	for _, r := range records {
		out = append(out, r.Entry.Value)
	}
	return out
}

func entriesOf(records []*codec.Record) []*codec.Entry {
	out := make([]*codec.Entry, 0, len(records))
	for _, r := range records {
		out = append(out, r.Entry)
	}
	return out
}

// maxScanKey bounds RangeScan/Compact's upper end. Any key built from
// printable or typical binary data sorts below a run of 0xFF bytes
// this long; Compact is a manually-triggered, best-effort operation
// (spec §1: compaction policy is out of scope), not a correctness-
// critical path, so this approximation is acceptable.
const maxScanKey = "\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff"

// Compact mechanically rewrites every live string record into a fresh
// data file numbered fileID, retargeting the index to the new
// locations (spec §4.7). Compaction *candidate selection* (the
// configured live-key and merge-overlap ratios) is out of scope; this
// is the rewrite step a caller-driven policy would invoke once it has
// picked a fileID.
func (e *Engine) Compact(fileID uint32) error {
	cw, err := bgworkers.NewCompactionWorker(e.opts.Dir, fileID, e.opts.DatFileSizeMB, e.factory, func(r *codec.Record) {
		e.idx.Put(string(r.Entry.Key), r)
	})
	if err != nil {
		return err
	}
	defer cw.Stop()

	for _, r := range e.idx.RangeScan("", maxScanKey) {
		cw.Send(r)
	}
	return nil
}

// Stats is a snapshot of the engine's running counters.
type Stats struct {
	TotalCommands int64
	TotalReads    int64
	TotalWrites   int64
	StartTime     time.Time
	MemtableCount int
}

// GetStats returns a snapshot of the engine's running counters.
func (e *Engine) GetStats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		TotalCommands: e.totalCommands.Load(),
		TotalReads:    e.totalReads.Load(),
		TotalWrites:   e.totalWrites.Load(),
		StartTime:     e.startTime,
		MemtableCount: len(e.immutable) + 1,
	}
}

// Close signals every background worker to stop, then syncs and
// releases every memtable's WAL handle. It does not wait for the
// workers to exit, so tasks still queued on a worker may be dropped.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.indexWorker.Stop()
	e.workersMu.Lock()
	for _, fw := range e.flushWorkers {
		fw.Stop()
	}
	e.workersMu.Unlock()

	var firstErr error
	if err := e.active.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	for _, mt := range e.immutable {
		if err := mt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
