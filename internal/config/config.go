// Package config provides configuration management for arrowdb.
package config

import (
	"encoding/json"
	"os"

	"github.com/arrowdb/arrowdb/internal/fileio"
)

// Config holds the storage engine's configuration (spec §6's option
// table), trimmed of the teacher's server-only fields (addr, max
// clients, read/write timeouts) since this repo has no network
// listener.
type Config struct {
	// DataDir is the base directory for data files, the WAL and hint
	// files.
	DataDir string `json:"data_dir"`

	// LogLevel is carried forward from the teacher's Config for
	// textural parity; the engine does not filter log output by it
	// (SPEC_FULL.md §10.1).
	LogLevel string `json:"log_level"`

	// DatFileSizeMB is the size each data file is truncated to.
	DatFileSizeMB uint64 `json:"dat_file_size_mb"`

	// RWMode selects StdIO or MMap file access.
	RWMode fileio.RWMode `json:"rw_mode"`

	// WriteSyncImmediately controls whether every WAL append fsyncs.
	WriteSyncImmediately bool `json:"write_sync_immediately"`

	// FDCacheSize is the LRU capacity for open file handles.
	FDCacheSize int `json:"fd_cache_size"`

	// IndexMode selects how much of each entry's payload the index
	// keeps resident (spec §6): KeysInRAM, KeysValuesInRAM or
	// SparseKeysInRAM.
	IndexMode string `json:"index_mode"`

	// MaxMemtableNums is the number of immutable+active memtables
	// beyond which the engine logs a backlog warning; writes do not
	// wait on a flush.
	MaxMemtableNums int `json:"max_memtable_nums"`

	// MemtableSizeMB is the sealing threshold for the active
	// memtable.
	MemtableSizeMB uint64 `json:"memtable_size_mb"`

	// CandidateLiveKeyRatio is the compaction trigger: a data file is
	// a compaction candidate once its live-key ratio falls below this.
	CandidateLiveKeyRatio float64 `json:"candidate_live_key_ratio"`

	// MergeOverlappingRatio is the compaction merging trigger.
	MergeOverlappingRatio float64 `json:"merge_overlapping_ratio"`

	// CandidateRatioEverytime is the fraction of candidates compacted
	// per pass.
	CandidateRatioEverytime float64 `json:"candidate_ratio_everytime"`
}

// DefaultConfig returns the default configuration (defaults match the
// parenthesized values in spec §6's option table).
func DefaultConfig() *Config {
	return &Config{
		DataDir:                 "data",
		LogLevel:                "info",
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

// Load loads configuration from a JSON file, falling back to
// DefaultConfig if path does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to a JSON file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
