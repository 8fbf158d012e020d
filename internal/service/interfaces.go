// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service orchestrates the encrypted chunked-archive pipeline:
// archive, encrypt, maybe-split for backup, and the inverse for restore,
// plus the retention sweep over finished artifacts.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-backup-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// BackupService runs the forward pipeline.
type BackupService interface {
	// Backup performs one full backup run: archive the source tree,
	// encrypt, split when above the chunk threshold, persist locally,
	// push remote (best effort), and sweep retention. Returns the id of
	// the new artifact. Refuses to start while another run holds the run
	// lock.
	Backup(ctx context.Context) (models.ArtifactID, error)

	// Sweep deletes artifacts strictly older than the retention window
	// and returns what was removed.
	Sweep(ctx context.Context) ([]models.Artifact, error)
}

// RestoreService runs the inverse pipeline.
type RestoreService interface {
	// Restore reassembles (if chunked), decrypts, and extracts the
	// artifact identified by ref into destDir.
	Restore(ctx context.Context, ref, destDir string) error
}

// VaultService covers vault administration: passphrase initialization and
// artifact listing.
type VaultService interface {
	// Init stores the encryption passphrase in the credential store.
	Init(ctx context.Context, passphrase string) error

	// List returns all artifacts in the local backup directory, oldest
	// first.
	List(ctx context.Context) ([]models.Artifact, error)
}

// Clock supplies wall-clock time for artifact naming and retention age
// comparisons. Injected so tests can pin time.
type Clock interface {
	Now() time.Time
}

// SourceLocator resolves the directory tree to back up.
type SourceLocator interface {
	// SourceDir returns the source directory path, or
	// [ErrSourceUnavailable] when none is configured.
	SourceDir() (string, error)
}
