package codec

import (
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/arrowdb/arrowdb/internal/errs"
)

// castagnoliTable is the CRC-32C polynomial table (spec §3.1, §6: "CRC
// is CRC-32C"). This is a named constant in the standard library, not
// a third-party choice — see SPEC_FULL.md §11.
var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// Entry is the unit of durability: a header plus bucket, key and
// value payloads (spec §3.1).
type Entry struct {
	Bucket []byte
	Key    []byte
	Value  []byte
	Header Header
	CRC    uint32
}

// NewEntry builds an Entry with the header sizes derived from the
// supplied payloads and the timestamp set to now.
func NewEntry(bucket, key, value []byte, op Operate, ttl uint32, dataType DataType, txID uint64) *Entry {
	return &Entry{
		Bucket: bucket,
		Key:    key,
		Value:  value,
		Header: Header{
			Timestamp:  time.Now().Unix(),
			KeySize:    uint32(len(key)),
			ValueSize:  uint32(len(value)),
			Operate:    uint16(op),
			TTL:        ttl,
			BucketSize: uint32(len(bucket)),
			Status:     uint16(StatusCommitted),
			DataType:   uint16(dataType),
			TxID:       txID,
		},
	}
}

// Size returns the total encoded length of the entry.
func (e *Entry) Size() int {
	return HeaderSize + int(e.Header.BucketSize) + int(e.Header.KeySize) + int(e.Header.ValueSize)
}

// IsExpired reports whether the entry's TTL has elapsed as of now.
// ttl == 0 means "never expires" (spec §3.1).
func (e *Entry) IsExpired() bool {
	if e.Header.TTL == 0 {
		return false
	}
	return e.Header.Timestamp+int64(e.Header.TTL) <= time.Now().Unix()
}

// Encode serializes the entry to its on-disk form, computing the
// CRC-32C over everything after the CRC field itself (spec §4.1:
// "CRC at offset 0 ... computed over everything after itself").
func (e *Entry) Encode() []byte {
	buf := make([]byte, e.Size())
	putHeaderTail(buf, e.Header)

	off := HeaderSize
	copy(buf[off:off+len(e.Bucket)], e.Bucket)
	off += len(e.Bucket)
	copy(buf[off:off+len(e.Key)], e.Key)
	off += len(e.Key)
	copy(buf[off:off+len(e.Value)], e.Value)

	crc := crc32.Checksum(buf[4:], castagnoliTable)
	binary.LittleEndian.PutUint32(buf[0:4], crc)
	return buf
}

// Decode parses an Entry from buf. It never trusts length fields
// beyond the supplied buffer and verifies the CRC-32C before
// returning (spec §4.1).
func Decode(buf []byte) (*Entry, error) {
	if len(buf) < HeaderSize {
		return nil, &errs.EntryDecodeError{Msg: "buffer shorter than header"}
	}

	h := parseHeaderTail(buf)
	wantLen := HeaderSize + int(h.BucketSize) + int(h.KeySize) + int(h.ValueSize)
	if wantLen < HeaderSize || wantLen > len(buf) {
		return nil, &errs.EntryDecodeError{Msg: "size fields overrun buffer"}
	}

	crc := binary.LittleEndian.Uint32(buf[0:4])
	if crc32.Checksum(buf[4:wantLen], castagnoliTable) != crc {
		return nil, &errs.EntryCRCInvalid{}
	}

	off := HeaderSize
	bucket := append([]byte(nil), buf[off:off+int(h.BucketSize)]...)
	off += int(h.BucketSize)
	key := append([]byte(nil), buf[off:off+int(h.KeySize)]...)
	off += int(h.KeySize)
	value := append([]byte(nil), buf[off:off+int(h.ValueSize)]...)

	return &Entry{Bucket: bucket, Key: key, Value: value, Header: h, CRC: crc}, nil
}
