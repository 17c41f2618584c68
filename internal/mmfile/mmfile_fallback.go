//go:build !unix && !windows

// Package mmfile provides platform-specific helpers for memory-mapping
// image files.
package mmfile

import "os"

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// RW emulates a writable mapping with an in-memory copy of the file.
type RW struct {
	Data []byte
	path string
	perm os.FileMode
}

// OpenRW loads the file at path for editing.
func OpenRW(path string) (*RW, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &RW{Data: data, path: path, perm: info.Mode().Perm()}, nil
}

// Sync writes the buffer back to the file.
func (m *RW) Sync() error {
	return os.WriteFile(m.path, m.Data, m.perm)
}

// Close releases the buffer.
func (m *RW) Close() error {
	m.Data = nil
	return nil
}
