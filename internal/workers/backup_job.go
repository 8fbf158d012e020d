// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/internal/service"
	"github.com/MKhiriev/go-backup-vault/internal/store"
)

// BackupJob runs the backup pipeline on a ticker. The job is idle until
// Start is called; a zero or negative interval disables it entirely.
type BackupJob struct {
	backups  service.BackupService
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBackupJob creates a BackupJob that calls backups.Backup every interval.
func NewBackupJob(backups service.BackupService, interval time.Duration, log *logger.Logger) *BackupJob {
	return &BackupJob{backups: backups, interval: interval, logger: log}
}

// Run implements [Worker]. It starts the job against the background context;
// the job then runs until Stop is called.
func (j *BackupJob) Run() {
	j.Start(context.Background())
}

// Start stops any previously running job, then launches a background
// goroutine that runs a backup every interval. The goroutine exits when ctx
// is cancelled or Stop is called.
func (j *BackupJob) Start(ctx context.Context) {
	if j.interval <= 0 {
		j.logger.Debug().Msg("periodic backups disabled, no interval configured")
		return
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

func (j *BackupJob) runOnce(ctx context.Context) {
	id, err := j.backups.Backup(ctx)
	switch {
	case err == nil:
		j.logger.Info().Str("artifact", string(id)).Msg("scheduled backup complete")
	case errors.Is(err, store.ErrBackupInProgress):
		// another run (manual or previous tick) still holds the lock
		j.logger.Debug().Msg("scheduled backup skipped, run already in progress")
	default:
		j.logger.Error().Err(err).Msg("scheduled backup failed")
	}
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (j *BackupJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
