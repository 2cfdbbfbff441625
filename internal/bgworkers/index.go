package bgworkers

import (
	"fmt"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/index"
)

// IndexTask is the unit the index worker applies: an operation tag,
// the flushed record, and an auxiliary int used only by LSet (the
// position being overwritten). Grounded on
// original_source/src/bgworkers/index.rs, whose task tuple is
// (EntryOperate, Record, usize). reply, when non-nil, receives the
// task's IndexResult once applied — Do uses it to make a mutation
// synchronous without leaving the single worker goroutine that
// applies every task in channel order (spec §5: "the index worker
// applies mutations in channel order").
type IndexTask struct {
	Op     codec.Operate
	Record *codec.Record
	Aux    int
	reply  chan<- IndexResult
}

// IndexResult is what applying one IndexTask produced, shaped loosely
// enough to cover every operation the worker supports: a count (push/
// sadd/srem/zadd), a bool (lset), a record (pop/zrem), or an error.
type IndexResult struct {
	Count  int
	Bool   bool
	Record *codec.Record
	Err    error
}

// IndexWorker applies flushed records to the authoritative Index
// under its own write lock, keyed by the entry's operate tag (spec
// §4.7).
type IndexWorker struct {
	*Worker[IndexTask]
}

// Do sends task to the worker and blocks until it has been applied,
// returning its result. Every list/set/sorted-set mutation the engine
// makes goes through Do rather than calling the Index directly, so
// those datatypes' container state (the engine's sole source of truth
// for them) is never touched outside the index worker's goroutine —
// the same hand-off protocol spec §2/§4.7 describes for flushed
// records, just invoked synchronously so the engine's API can still
// return the mutation's outcome to its caller.
func (w *IndexWorker) Do(task IndexTask) IndexResult {
	reply := make(chan IndexResult)
	task.reply = reply
	w.Send(task)
	return <-reply
}

// NewIndexWorker starts an IndexWorker writing into idx. For
// list/set/sorted-set operations, the container's key lives in the
// entry's bucket field and the element identifier (if any) in its key
// field (see internal/memtable's doc comment); string Put/Del use the
// entry's key field directly, since they have no container.
func NewIndexWorker(idx *index.Index) *IndexWorker {
	apply := func(t IndexTask) error {
		result := IndexResult{}
		bucket := string(t.Record.Entry.Bucket)

		switch t.Op {
		case codec.OpPut:
			idx.Put(string(t.Record.Entry.Key), t.Record)
		case codec.OpDel:
			idx.Del(string(t.Record.Entry.Key))
		case codec.OpLLpush:
			result.Count = idx.LPush(bucket, t.Record)
		case codec.OpLLpushx:
			result.Count = idx.LPushX(bucket, t.Record)
		case codec.OpLRpush:
			result.Count = idx.RPush(bucket, t.Record)
		case codec.OpLRpushx:
			result.Count = idx.RPushX(bucket, t.Record)
		case codec.OpLLpop:
			result.Record, result.Err = idx.LPop(bucket)
		case codec.OpLRpop:
			result.Record, result.Err = idx.RPop(bucket)
		case codec.OpLSet:
			result.Bool = idx.LSet(bucket, t.Aux, t.Record)
		case codec.OpSAdd:
			result.Count = idx.SAdd(bucket, string(t.Record.Entry.Key), t.Record)
		case codec.OpSRem:
			result.Count = idx.SRem(bucket, []string{string(t.Record.Entry.Key)})
		case codec.OpZPut:
			member, score := splitZSetKey(t.Record.Entry.Key)
			result.Count = idx.ZAdd(bucket, member, score, t.Record)
		case codec.OpZRem:
			result.Record, result.Err = idx.ZRem(bucket, string(t.Record.Entry.Key))
		default:
			result.Err = fmt.Errorf("bgworkers: index worker received unsupported operate %d", t.Op)
		}

		if t.reply != nil {
			t.reply <- result
		}
		return result.Err
	}
	return &IndexWorker{Worker: NewWorker("index", apply)}
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
