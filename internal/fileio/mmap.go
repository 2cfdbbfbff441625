package fileio

import (
	"os"
	"sync"
	"syscall"

	"github.com/arrowdb/arrowdb/internal/errs"
)

// mmapFile implements Manager over a whole-file read-write memory
// mapping (spec §4.2). Unlike the pack's read-only mmap helpers
// (golang.org/x/exp/mmap, used for immutable blob readers elsewhere
// in the corpus), this engine mutates the mapping in place, so it
// wraps syscall.Mmap directly instead of an ecosystem package built
// around read-only semantics — see DESIGN.md.
type mmapFile struct {
	mu         sync.RWMutex
	path       string
	fileSizeMB uint64
	fds        *FDManager
	data       []byte
}

func newMMapFile(path string, fileSizeMB uint64, file *os.File, fds *FDManager) (*mmapFile, error) {
	data, err := syscall.Mmap(int(file.Fd()), 0, int(fileSizeMB*mb), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, &errs.IOError{Cause: err}
	}
	return &mmapFile{path: path, fileSizeMB: fileSizeMB, fds: fds, data: data}, nil
}

func (m *mmapFile) Write(b []byte, offset uint64) (int, error) {
	if offset >= m.fileSizeMB*mb {
		return 0, &errs.OffsetOutOfRange{Method: "write", Offset: offset}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return 0, &errs.IOError{Cause: os.ErrClosed}
	}
	n := copy(m.data[offset:], b)
	return n, nil
}

func (m *mmapFile) Read(b []byte, offset uint64) (int, error) {
	if offset >= m.fileSizeMB*mb {
		return 0, &errs.OffsetOutOfRange{Method: "read", Offset: offset}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return 0, &errs.IOError{Cause: os.ErrClosed}
	}
	end := offset + uint64(len(b))
	if end > uint64(len(m.data)) {
		end = uint64(len(m.data))
	}
	n := copy(b, m.data[offset:end])
	return n, nil
}

func (m *mmapFile) Sync() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil
	}
	if err := msync(m.data); err != nil {
		return &errs.IOError{Cause: err}
	}
	return nil
}

func (m *mmapFile) Release() bool {
	m.mu.Lock()
	data := m.data
	m.data = nil
	m.mu.Unlock()

	if data != nil {
		_ = syscall.Munmap(data)
	}
	return m.fds.release(m.path)
}
