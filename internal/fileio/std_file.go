package fileio

import (
	"sync"

	"github.com/arrowdb/arrowdb/internal/errs"
)

// stdFile implements Manager using positioned reads/writes
// (pread/pwrite semantics), per spec §4.2. It is guarded by its own
// multi-reader/single-writer lock (spec §4.2, §5).
type stdFile struct {
	mu         sync.RWMutex
	path       string
	fileSizeMB uint64
	fds        *FDManager
}

func (s *stdFile) Write(b []byte, offset uint64) (int, error) {
	if offset >= s.fileSizeMB*mb {
		return 0, &errs.OffsetOutOfRange{Method: "write", Offset: offset}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.fds.get(s.path, s.fileSizeMB)
	if err != nil {
		return 0, err
	}
	n, err := f.WriteAt(b, int64(offset))
	if err != nil {
		return n, &errs.IOError{Cause: err}
	}
	return n, nil
}

func (s *stdFile) Read(b []byte, offset uint64) (int, error) {
	if offset >= s.fileSizeMB*mb {
		return 0, &errs.OffsetOutOfRange{Method: "read", Offset: offset}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := s.fds.get(s.path, s.fileSizeMB)
	if err != nil {
		return 0, err
	}
	n, err := f.ReadAt(b, int64(offset))
	if err != nil {
		return n, &errs.IOError{Cause: err}
	}
	return n, nil
}

func (s *stdFile) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.fds.get(s.path, s.fileSizeMB)
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return &errs.IOError{Cause: err}
	}
	return nil
}

func (s *stdFile) Release() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fds.release(s.path)
}
