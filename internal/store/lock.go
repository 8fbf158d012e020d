// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// lockFileName is the run-lock file created inside the backup directory.
const lockFileName = ".backup.lock"

// RunLock serializes backup runs against one backup directory. The lock is
// a file created with O_EXCL, so exactly one process can hold it; the file
// records the run UUID and pid of the holder for diagnostics.
type RunLock struct {
	path  string
	runID string
}

// AcquireRunLock takes the run lock for dir. Returns [ErrBackupInProgress]
// when another run already holds it.
func AcquireRunLock(dir string) (*RunLock, error) {
	path := filepath.Join(dir, lockFileName)
	runID := uuid.NewString()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: lock file %s exists", ErrBackupInProgress, path)
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}

	if _, err = fmt.Fprintf(f, "%s %d\n", runID, os.Getpid()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close lock file: %w", err)
	}

	return &RunLock{path: path, runID: runID}, nil
}

// RunID returns the UUID assigned to the locked run.
func (l *RunLock) RunID() string {
	return l.runID
}

// Release removes the lock file. Safe to call once per acquired lock.
func (l *RunLock) Release() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}
