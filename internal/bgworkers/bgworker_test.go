package bgworkers

import (
	"bytes"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/fileio"
	"github.com/arrowdb/arrowdb/internal/index"
)

func TestWorker_SendProcessesTasks(t *testing.T) {
	var calls atomic.Int64
	w := NewWorker("test", func(n int) error {
		calls.Add(int64(n))
		return nil
	})
	defer w.Stop()

	w.Send(1)
	w.Send(2)
	w.Send(3)

	assert.Eventually(t, func() bool { return calls.Load() == 6 }, time.Second, time.Millisecond)
}

func TestWorker_StopIsIdempotent(t *testing.T) {
	w := NewWorker("test", func(int) error { return nil })
	w.Stop()
	w.Stop()
}

func newTestRecord(bucket, key, value []byte, op codec.Operate, dtype codec.DataType, offset uint64) *codec.Record {
	e := codec.NewEntry(bucket, key, value, op, 0, dtype, 1)
	h := &codec.Hint{Key: key, FileID: 1, Offset: offset, Header: e.Header}
	return &codec.Record{Hint: h, Entry: e}
}

func TestFlushWorker_WritesAtHintOffset(t *testing.T) {
	dir := t.TempDir()
	factory := fileio.NewFactory(fileio.RWModeStdIO)

	fw, err := NewFlushWorker(dir, 1, 1, factory)
	require.NoError(t, err)
	defer fw.Stop()

	r := newTestRecord(nil, []byte("k1"), []byte("v1"), codec.OpPut, codec.DataTypeString, 0)
	fw.Send(r)

	path := filepath.Join(dir, "1.dat")
	assert.Eventually(t, func() bool {
		f, err := factory.Open(path, 1)
		if err != nil {
			return false
		}
		defer f.Release()
		buf := make([]byte, r.Entry.Size())
		n, err := f.Read(buf, 0)
		return err == nil && n == len(buf) && bytes.Equal(buf, r.Entry.Encode())
	}, time.Second, 5*time.Millisecond)
}

func TestIndexWorker_AppliesPutAndDel(t *testing.T) {
	idx := index.New()
	iw := NewIndexWorker(idx)
	defer iw.Stop()

	r := newTestRecord(nil, []byte("k1"), []byte("v1"), codec.OpPut, codec.DataTypeString, 0)
	iw.Send(IndexTask{Op: codec.OpPut, Record: r})

	assert.Eventually(t, func() bool {
		_, ok := idx.Get("k1")
		return ok
	}, time.Second, 5*time.Millisecond)

	iw.Send(IndexTask{Op: codec.OpDel, Record: r})
	assert.Eventually(t, func() bool {
		_, ok := idx.Get("k1")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestIndexWorker_AppliesListAndSet(t *testing.T) {
	idx := index.New()
	iw := NewIndexWorker(idx)
	defer iw.Stop()

	lr := newTestRecord([]byte("L"), nil, []byte("a"), codec.OpLRpush, codec.DataTypeList, 0)
	iw.Send(IndexTask{Op: codec.OpLRpush, Record: lr})

	sr := newTestRecord([]byte("S"), []byte("m"), []byte("vm"), codec.OpSAdd, codec.DataTypeSet, 0)
	iw.Send(IndexTask{Op: codec.OpSAdd, Record: sr})

	assert.Eventually(t, func() bool { return idx.LLen("L") == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return idx.SCard("S") == 1 }, time.Second, 5*time.Millisecond)
}

func TestIndexWorker_DoBlocksUntilApplied(t *testing.T) {
	idx := index.New()
	iw := NewIndexWorker(idx)
	defer iw.Stop()

	lr := newTestRecord([]byte("L"), nil, []byte("a"), codec.OpLRpush, codec.DataTypeList, 0)
	result := iw.Do(IndexTask{Op: codec.OpLRpush, Record: lr})
	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 1, idx.LLen("L"))

	popped := iw.Do(IndexTask{Op: codec.OpLRpop, Record: &codec.Record{Entry: &codec.Entry{Bucket: []byte("L")}}})
	require.NoError(t, popped.Err)
	require.NotNil(t, popped.Record)
	assert.Equal(t, []byte("a"), popped.Record.Entry.Value)
	assert.Equal(t, 0, idx.LLen("L"))
}

func TestCompactionWorker_RewritesAndInvokesCallback(t *testing.T) {
	dir := t.TempDir()
	factory := fileio.NewFactory(fileio.RWModeStdIO)

	var rewritten atomic.Int64
	cw, err := NewCompactionWorker(dir, 2, 1, factory, func(r *codec.Record) {
		rewritten.Add(1)
	})
	require.NoError(t, err)
	defer cw.Stop()

	r1 := newTestRecord(nil, []byte("k1"), []byte("v1"), codec.OpPut, codec.DataTypeString, 999)
	r2 := newTestRecord(nil, []byte("k2"), []byte("v2"), codec.OpPut, codec.DataTypeString, 999)
	cw.Send(r1)
	cw.Send(r2)

	assert.Eventually(t, func() bool { return rewritten.Load() == 2 }, time.Second, 5*time.Millisecond)
}
