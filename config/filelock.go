package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = "state.lock"

// FileLock provides file-based locking for cross-process synchronization.
// It uses a separate lock file rather than locking the data file directly.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new FileLock for the given path.
// The lock file will be created in the same directory as the given path.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: filepath.Join(filepath.Dir(path), lockFileName)}
}

// Lock acquires an exclusive lock on the file.
// This blocks until the lock is available.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_RDWR, true)
}

// RLock acquires a shared (read) lock on the file.
// Multiple processes can hold a shared lock simultaneously.
func (l *FileLock) RLock() error {
	return l.acquire(os.O_RDONLY, false)
}

func (l *FileLock) acquire(mode int, exclusive bool) error {
	if l.file != nil {
		return fmt.Errorf("lock already held")
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|mode, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(f, exclusive); err != nil {
		f.Close()
		kind := "shared"
		if exclusive {
			kind = "exclusive"
		}
		return fmt.Errorf("failed to acquire %s lock: %w", kind, err)
	}

	l.file = f
	return nil
}

// Unlock releases the lock on the file.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	if err := unlockFile(l.file); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.file = nil
	return nil
}
