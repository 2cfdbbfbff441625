// Package codec implements the on-disk binary layout of Entry, Hint
// and Record, byte-exact with spec §3.1-§3.3: little-endian fields,
// a fixed 42-byte entry header, and CRC-32C (Castagnoli) integrity
// checking. Grounded on original_source/src/data/{entry.rs,meta.rs}
// and original_source/src/index/{hint.rs,mod.rs}.
package codec

import "encoding/binary"

// HeaderSize is the fixed size, in bytes, of an Entry header
// (spec §3.1): crc(4) + the 38-byte tail shared with Hint.
const HeaderSize = 42

// headerTailSize is the length of the fields shared byte-for-byte
// between an Entry header (bytes [4:42]) and a Hint header (bytes
// [4:42], with file_id standing in for the CRC slot at [0:4]).
const headerTailSize = HeaderSize - 4

// Header holds the metadata fields common to Entry and Hint: the
// bucket/key/value sizes, timestamp, TTL, operation tag, status and
// data type, and the owning transaction id.
type Header struct {
	Timestamp  int64
	KeySize    uint32
	ValueSize  uint32
	Operate    uint16
	TTL        uint32
	BucketSize uint32
	Status     uint16
	DataType   uint16
	TxID       uint64
}

// putHeaderTail writes the 38-byte shared tail at buf[4:42].
func putHeaderTail(buf []byte, h Header) {
	b := buf[4:HeaderSize]
	binary.LittleEndian.PutUint64(b[0:8], uint64(h.Timestamp))
	binary.LittleEndian.PutUint32(b[8:12], h.KeySize)
	binary.LittleEndian.PutUint32(b[12:16], h.ValueSize)
	binary.LittleEndian.PutUint16(b[16:18], h.Operate)
	binary.LittleEndian.PutUint32(b[18:22], h.TTL)
	binary.LittleEndian.PutUint32(b[22:26], h.BucketSize)
	binary.LittleEndian.PutUint16(b[26:28], h.Status)
	binary.LittleEndian.PutUint16(b[28:30], h.DataType)
	binary.LittleEndian.PutUint64(b[30:38], h.TxID)
}

// parseHeaderTail reads the 38-byte shared tail from buf[4:42].
func parseHeaderTail(buf []byte) Header {
	b := buf[4:HeaderSize]
	return Header{
		Timestamp:  int64(binary.LittleEndian.Uint64(b[0:8])),
		KeySize:    binary.LittleEndian.Uint32(b[8:12]),
		ValueSize:  binary.LittleEndian.Uint32(b[12:16]),
		Operate:    binary.LittleEndian.Uint16(b[16:18]),
		TTL:        binary.LittleEndian.Uint32(b[18:22]),
		BucketSize: binary.LittleEndian.Uint32(b[22:26]),
		Status:     binary.LittleEndian.Uint16(b[26:28]),
		DataType:   binary.LittleEndian.Uint16(b[28:30]),
		TxID:       binary.LittleEndian.Uint64(b[30:38]),
	}
}
