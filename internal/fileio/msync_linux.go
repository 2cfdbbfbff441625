//go:build linux

package fileio

import "syscall"

func msync(data []byte) error {
	return syscall.Msync(data, syscall.MS_SYNC)
}
