//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the image file at path into memory read-only and returns its
// contents together with a cleanup function.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}

// RW is a writable shared mapping of an image file. Edits to Data modify the
// underlying file; Sync makes them durable.
type RW struct {
	Data []byte
	f    *os.File
}

// OpenRW maps the file at path read-write. The caller must Close the mapping
// when done; pending edits should be Synced first.
func OpenRW(path string) (*RW, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &RW{Data: []byte{}, f: f}, nil
	}
	if size > int64(^uint(0)>>1) {
		f.Close()
		return nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &RW{Data: data, f: f}, nil
}

// Sync flushes modified pages to disk with msync(MS_SYNC).
func (m *RW) Sync() error {
	if len(m.Data) == 0 {
		return nil
	}
	return unix.Msync(m.Data, unix.MS_SYNC)
}

// Close unmaps the file and releases the descriptor. Closing twice is a
// no-op.
func (m *RW) Close() error {
	if m.f == nil {
		return nil
	}
	var mapErr error
	if len(m.Data) > 0 {
		mapErr = unix.Munmap(m.Data)
		if errors.Is(mapErr, unix.EINVAL) {
			mapErr = nil
		}
		m.Data = nil
	}
	closeErr := m.f.Close()
	m.f = nil
	if mapErr != nil {
		return mapErr
	}
	return closeErr
}
