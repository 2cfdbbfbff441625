// Package engine provides the storage engine handle that coordinates
// the WAL-backed memtable, the flushed-data index and the background
// worker harness (spec §4.8 "engine glue"). Grounded on the teacher's
// internal/engine/engine.go for lifecycle shape (New/recover/Close,
// atomic stats counters) and on original_source/src/db/mod.rs and
// original_source/src/option/mod.rs for the options struct held by
// the engine handle.
package engine

import "github.com/arrowdb/arrowdb/internal/fileio"

// Options configures an Engine (spec §6's option table).
type Options struct {
	// Dir is the base directory for WAL files, data files and hint
	// files.
	Dir string

	// DatFileSizeMB is the size each data file is truncated to.
	DatFileSizeMB uint64

	// RWMode selects StdIO or MMap file access for data files.
	RWMode fileio.RWMode

	// WriteSyncImmediately is carried for config-surface parity; the
	// engine does not read it. Every WAL append is synced before the
	// mutation is acknowledged, whatever this is set to.
	WriteSyncImmediately bool

	// FDCacheSize is the LRU capacity of the process-wide file
	// descriptor cache.
	FDCacheSize int

	// IndexMode selects how much of each entry's payload the index
	// keeps resident: KeysInRAM, KeysValuesInRAM or SparseKeysInRAM.
	// Carried forward for config-surface parity; this implementation
	// always keeps full Records resident, whatever the mode.
	IndexMode string

	// MaxMemtableNums caps the number of immutable+active memtables
	// this engine keeps before logging a backlog warning.
	MaxMemtableNums int

	// MemtableSizeMB is the sealing threshold for the active memtable.
	MemtableSizeMB uint64

	// CandidateLiveKeyRatio is the compaction trigger ratio. Carried
	// for config-surface parity; compaction *policy* is out of scope
	// (spec §1) and is not evaluated automatically by this engine.
	CandidateLiveKeyRatio float64

	// MergeOverlappingRatio is the compaction merging trigger ratio.
	MergeOverlappingRatio float64

	// CandidateRatioEverytime is the fraction of candidates compacted
	// per pass.
	CandidateRatioEverytime float64
}

// DefaultOptions returns the spec §6 defaults, rooted at dir.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:                     dir,
		DatFileSizeMB:           256,
		RWMode:                  fileio.RWModeStdIO,
		WriteSyncImmediately:    false,
		FDCacheSize:             128,
		IndexMode:               "KeysInRAM",
		MaxMemtableNums:         5,
		MemtableSizeMB:          1024,
		CandidateLiveKeyRatio:   0.1,
		MergeOverlappingRatio:   0.1,
		CandidateRatioEverytime: 0.5,
	}
}
