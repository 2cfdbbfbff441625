package codec

import (
	"encoding/binary"

	"github.com/arrowdb/arrowdb/internal/errs"
)

// Record is {Hint, Entry}, the unit passed between memtable, flush
// worker and index worker (spec §3.3). Its on-disk form lets
// list/set/sorted-set values be re-materialized without knowing sizes
// in advance: an 8-byte little-endian prefix records where the entry
// payload begins.
type Record struct {
	Hint  *Hint
	Entry *Entry
}

// Encode serializes the record: an 8-byte value_start_index prefix,
// the encoded hint, then the encoded entry.
func (r *Record) Encode() []byte {
	hintBytes := r.Hint.Encode(r.Entry.Bucket)
	entryBytes := r.Entry.Encode()

	buf := make([]byte, 8+len(hintBytes)+len(entryBytes))
	binary.LittleEndian.PutUint64(buf[0:8], uint64(len(hintBytes)))
	copy(buf[8:8+len(hintBytes)], hintBytes)
	copy(buf[8+len(hintBytes):], entryBytes)
	return buf
}

// DecodeRecord parses a Record from its value_start_index-prefixed
// envelope.
func DecodeRecord(buf []byte) (*Record, error) {
	if len(buf) < 8 {
		return nil, &errs.EntryDecodeError{Msg: "record buffer shorter than value_start_index"}
	}
	valueStart := binary.LittleEndian.Uint64(buf[0:8])
	hintBuf := buf[8:]
	if uint64(len(hintBuf)) < valueStart {
		return nil, &errs.EntryDecodeError{Msg: "value_start_index overruns buffer"}
	}

	hint, bucket, err := DecodeHint(hintBuf[:valueStart])
	if err != nil {
		return nil, err
	}
	entry, err := Decode(hintBuf[valueStart:])
	if err != nil {
		return nil, err
	}
	if len(entry.Bucket) == 0 {
		entry.Bucket = bucket
	}
	return &Record{Hint: hint, Entry: entry}, nil
}
