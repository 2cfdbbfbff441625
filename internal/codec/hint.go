package codec

import "encoding/binary"

// Hint is the in-memory (and optionally on-disk) locator for an
// Entry: where it lives (file_id, offset) plus enough of its header
// to avoid re-reading the data file (spec §3.2).
type Hint struct {
	Key    []byte
	FileID uint32
	Offset uint64
	Header Header
}

// Size returns the encoded length of the hint.
func (h *Hint) Size() int {
	return headerTailSize + int(h.Header.BucketSize) + int(h.Header.KeySize) + 4 + 8
}

// Encode serializes the hint. The header's tail occupies the same
// byte range as an Entry's (spec §3.2: "38 bytes identical to
// entry[4..42]"); the would-be CRC slot at [0:4] instead carries
// file_id since hints don't need their own checksum.
func (h *Hint) Encode(bucket []byte) []byte {
	buf := make([]byte, h.Size())
	putHeaderTail(buf, h.Header)
	binary.LittleEndian.PutUint32(buf[0:4], h.FileID)

	off := HeaderSize
	copy(buf[off:off+len(bucket)], bucket)
	off += len(bucket)
	copy(buf[off:off+len(h.Key)], h.Key)
	off += len(h.Key)
	binary.LittleEndian.PutUint64(buf[off:off+8], h.Offset)
	return buf
}

// DecodeHint parses a Hint from buf, returning the bucket bytes
// alongside it since Hint itself only keeps the key.
func DecodeHint(buf []byte) (hint *Hint, bucket []byte, err error) {
	header := parseHeaderTail(buf)
	fileID := binary.LittleEndian.Uint32(buf[0:4])

	off := HeaderSize
	bucket = append([]byte(nil), buf[off:off+int(header.BucketSize)]...)
	off += int(header.BucketSize)
	key := append([]byte(nil), buf[off:off+int(header.KeySize)]...)
	off += int(header.KeySize)
	offset := binary.LittleEndian.Uint64(buf[off : off+8])

	return &Hint{Key: key, FileID: fileID, Offset: offset, Header: header}, bucket, nil
}
