package bgworkers

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/arrowdb/arrowdb/internal/codec"
	"github.com/arrowdb/arrowdb/internal/fileio"
)

// CompactionWorker rewrites live records into a fresh data file,
// compacting away space held by superseded/deleted entries, and hands
// each rewritten record to onRewritten so the caller can update the
// index to the new (file, offset) location. The original
// (original_source/src/bgworkers/compaction.rs) is a send/stop-only
// stub with no worker-construction logic; the rewrite loop here is
// this module's own, grounded on the ratios in spec §6
// (candidate_live_key_ratio, merge_overlapping_ratio,
// candidate_ratio_everytime).
type CompactionWorker struct {
	*Worker[*codec.Record]

	mu          sync.Mutex
	writeAt     uint64
	file        fileio.Manager
	onRewritten func(*codec.Record)
}

// NewCompactionWorker opens (or creates) {dir}/{fileID}.dat as the
// compaction target and starts a CompactionWorker that appends every
// queued record there, invoking onRewritten with the record's new
// hint so the caller can retarget the index.
func NewCompactionWorker(dir string, fileID uint32, fileSizeMB uint64, factory *fileio.Factory, onRewritten func(*codec.Record)) (*CompactionWorker, error) {
	path := filepath.Join(dir, fmt.Sprintf("%d.dat", fileID))
	file, err := factory.Open(path, fileSizeMB)
	if err != nil {
		return nil, err
	}

	cw := &CompactionWorker{file: file, onRewritten: onRewritten}
	rewrite := func(r *codec.Record) error {
		b := r.Entry.Encode()

		cw.mu.Lock()
		offset := cw.writeAt
		cw.writeAt += uint64(len(b))
		cw.mu.Unlock()

		if _, err := file.Write(b, offset); err != nil {
			return err
		}
		newHint := &codec.Hint{Key: r.Entry.Key, FileID: fileID, Offset: offset, Header: r.Entry.Header}
		cw.onRewritten(&codec.Record{Hint: newHint, Entry: r.Entry})
		return nil
	}
	cw.Worker = NewWorker(fmt.Sprintf("compaction[%d]", fileID), rewrite)
	return cw, nil
}
