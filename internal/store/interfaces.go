// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store manages durable state of the backup pipeline: the artifact
// files in the local backup directory, the run lock that serializes backup
// runs, and the sqlite catalog that indexes completed runs.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-backup-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ArtifactStore manages finished artifacts as whole units in the local
// backup directory. An artifact is either a single encrypted file or a chunk
// set plus its manifest; it is always created and deleted atomically with
// respect to the catalog of files that compose it.
type ArtifactStore interface {
	// Dir returns the backup directory the store operates on.
	Dir() string

	// WriteManifest persists the chunk-set manifest next to its chunks and
	// returns the manifest file path. Manifests are immutable; writing a
	// manifest that already exists is an error.
	WriteManifest(m *models.Manifest) (string, error)

	// ReadManifest loads and validates the manifest of a chunked artifact.
	// Returns [ErrArtifactNotFound] if no manifest exists for id.
	ReadManifest(id models.ArtifactID) (*models.Manifest, error)

	// List returns every artifact present in the backup directory, oldest
	// first. Files that do not belong to any artifact are ignored.
	List() ([]models.Artifact, error)

	// Resolve finds the artifact identified by ref (an artifact id).
	// Returns [ErrArtifactNotFound] if no such artifact exists.
	Resolve(ref string) (models.Artifact, error)

	// Delete removes every file of the artifact. Chunk files go first and
	// the manifest (or the single encrypted file) last, so a partially
	// deleted artifact never looks intact.
	Delete(artifact models.Artifact) error

	// SweepOlderThan deletes every artifact created strictly before cutoff
	// and returns the artifacts it removed. A failure to delete one
	// artifact is logged and skipped; it never aborts the sweep.
	SweepOlderThan(cutoff time.Time) ([]models.Artifact, error)
}

// CatalogRepository records completed backup runs in the sqlite catalog.
type CatalogRepository interface {
	// RecordRun inserts the catalog row for a completed backup run.
	RecordRun(ctx context.Context, run models.BackupRun) error

	// MarkPushed flags the run of the given artifact as fully pushed to
	// remote storage.
	MarkPushed(ctx context.Context, id models.ArtifactID) error

	// ListRuns returns all recorded runs, oldest first.
	ListRuns(ctx context.Context) ([]models.BackupRun, error)

	// DeleteRun removes the catalog row of the given artifact.
	DeleteRun(ctx context.Context, id models.ArtifactID) error
}
