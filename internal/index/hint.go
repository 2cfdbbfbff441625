package index

import (
	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/errs"
	"github.com/arrowdb/arrowdb/internal/fileio"
)

// ReadHintFile parses a dense sequence of encoded Hints from a
// materialized hint file (spec §6: "Hint files (if materialized):
// dense sequence of encoded Hints"; SPEC_FULL.md §12). Each hint's
// length is derived from its own header-tail fields, exactly as
// internal/wal.ReadAll derives an Entry's length, since Hint shares
// the same 38-byte tail layout.
func ReadHintFile(data []byte) ([]*codec.Hint, error) {
	var hints []*codec.Hint
	var offset int

	for offset < len(data) {
		if len(data)-offset < codec.HeaderSize {
			break
		}
		head := data[offset : offset+codec.HeaderSize]
		bucketSize, keySize, _ := peekHeaderSizes(head)
		total := codec.HeaderSize + bucketSize + keySize + 8 // + u64 offset field
		if offset+total > len(data) {
			break
		}
		hint, _, err := codec.DecodeHint(data[offset : offset+total])
		if err != nil {
			return hints, err
		}
		hints = append(hints, hint)
		offset += total
	}
	return hints, nil
}

func peekHeaderSizes(head []byte) (bucketSize, keySize, valueSize int) {
	le32 := func(b []byte) uint32 {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
	keySize = int(le32(head[12:16]))
	valueSize = int(le32(head[16:20]))
	bucketSize = int(le32(head[26:30]))
	return bucketSize, keySize, valueSize
}

// RebuildFromHints reconstructs kvs by reading each string-typed
// hint's backing Entry out of its data file, without re-scanning the
// full data file for record boundaries (spec §6, §9: recovery may use
// materialized hints as a shortcut). dataFile resolves a hint's
// file_id to an open Manager. Only string-typed entries are restored
// this way; list/set/sorted-set containers are rebuilt by the index
// worker replaying memtable flushes instead.
func (idx *Index) RebuildFromHints(hints []*codec.Hint, dataFile func(fileID uint32) (fileio.Manager, error)) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, hint := range hints {
		if codec.DataType(hint.Header.DataType) != codec.DataTypeString {
			continue
		}
		file, err := dataFile(hint.FileID)
		if err != nil {
			return err
		}
		entryLen := codec.HeaderSize + int(hint.Header.BucketSize) + int(hint.Header.KeySize) + int(hint.Header.ValueSize)
		buf := make([]byte, entryLen)
		if _, err := file.Read(buf, hint.Offset); err != nil {
			return err
		}
		entry, err := codec.Decode(buf)
		if err != nil {
			return &errs.EntryDecodeError{Key: string(hint.Key), Msg: "hint-guided recovery: " + err.Error()}
		}

		key := string(entry.Key)
		record := &codec.Record{Hint: hint, Entry: entry}
		if _, exists := idx.kvs[key]; !exists {
			idx.insertSortedKey(key)
		}
		idx.kvs[key] = record
	}
	return nil
}
