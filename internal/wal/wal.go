// Package wal implements the write-ahead log: a thin, append-only
// wrapper over the fileio layer (spec §4.3). Grounded on
// original_source/src/wal/mod.rs; the teacher's internal/wal/wal.go
// is restructured onto the new fileio.Manager abstraction and CRC-32C
// codec instead of its own ad hoc record format.
package wal

import (
	"sync"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/errs"
	"github.com/arrowdb/arrowdb/internal/fileio"
)

// WAL is the durable append-only record stream backing one memtable.
// It is created open at write_at = 0 (spec §4.3).
type WAL struct {
	mu      sync.Mutex
	FileID  uint64
	writeAt uint64
	file    fileio.Manager
}

// Open creates or reopens the WAL at path, pre-sized to
// fileSizeMB*MiB.
func Open(fileID uint64, path string, fileSizeMB uint64, rwMode fileio.RWMode) (*WAL, error) {
	file, err := fileio.NewFactory(rwMode).Open(path, fileSizeMB)
	if err != nil {
		return nil, err
	}
	return &WAL{FileID: fileID, file: file}, nil
}

// Write appends b at the current write cursor and advances it by the
// written length. Durability beyond "written to the OS" is the
// caller's responsibility — memtable calls Sync before surfacing
// success on a committed operation (spec §4.3).
func (w *WAL) Write(b []byte) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	offset := w.writeAt
	n, err := w.file.Write(b, offset)
	if err != nil {
		return 0, err
	}
	w.writeAt += uint64(n)
	return offset, nil
}

// Sync flushes pending writes to stable storage.
func (w *WAL) Sync() error {
	return w.file.Sync()
}

// Close releases the underlying file handle.
func (w *WAL) Close() bool {
	return w.file.Release()
}

// ReadAll replays every valid Entry from the start of the WAL,
// stopping at the first CRC-invalid or truncated record (spec §9
// Open Question #1: "replay every valid Entry in order, stopping at
// the first CRC-invalid record").
func (w *WAL) ReadAll() ([]*codec.Entry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var entries []*codec.Entry
	var offset uint64

	for {
		head := make([]byte, codec.HeaderSize)
		n, err := w.file.Read(head, offset)
		if err != nil {
			if _, ok := err.(*errs.OffsetOutOfRange); ok {
				break
			}
			return entries, err
		}
		if n < codec.HeaderSize {
			break
		}

		// Peek the header's size fields directly (without verifying
		// the CRC yet) to learn the full record length before reading
		// the payload.
		bucketSize, keySize, valueSize := peekSizes(head)
		total := codec.HeaderSize + bucketSize + keySize + valueSize
		if total == codec.HeaderSize {
			break
		}
		full := make([]byte, total)
		if _, err := w.file.Read(full, offset); err != nil {
			break
		}

		entry, err := codec.Decode(full)
		if err != nil {
			break
		}
		entries = append(entries, entry)
		offset += uint64(total)
	}

	w.writeAt = offset
	return entries, nil
}

func peekSizes(head []byte) (bucketSize, keySize, valueSize int) {
	if len(head) < codec.HeaderSize {
		return 0, 0, 0
	}
	// Mirrors the field offsets in codec.Header without requiring a
	// successful CRC check, so recovery can size the next read even
	// when the header belongs to a zero-filled tail of the file.
	keySize = int(leUint32(head[12:16]))
	valueSize = int(leUint32(head[16:20]))
	bucketSize = int(leUint32(head[26:30]))
	return bucketSize, keySize, valueSize
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
