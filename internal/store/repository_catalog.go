// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/models"
)

// catalogRepository is the sqlite-backed implementation of
// [CatalogRepository]. It indexes completed backup runs in the
// "backup_runs" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured tracing of database interactions.
type catalogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCatalogRepository constructs a [CatalogRepository] backed by the
// provided database connection and logger.
func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	logger.Debug().Msg("creating catalog repository")
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

// RecordRun persists the catalog row of a completed backup run.
func (r *catalogRepository) RecordRun(ctx context.Context, run models.BackupRun) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, insertRun,
		run.RunID, string(run.ArtifactID), run.CreatedAt, run.EncryptedSize, run.Chunked, run.ChunkCount, run.Pushed)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.RecordRun").Msg("error: inserting run")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// MarkPushed flags an artifact's run as fully pushed to remote storage.
// Marking an artifact that has no catalog row is not an error; the catalog
// is an index, not the source of truth.
func (r *catalogRepository) MarkPushed(ctx context.Context, id models.ArtifactID) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, markRunPushed, string(id)); err != nil {
		log.Err(err).Str("func", "*catalogRepository.MarkPushed").Msg("error: updating run")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListRuns returns all recorded runs ordered by artifact id, which for
// timestamp-labelled artifacts is chronological order.
func (r *catalogRepository) ListRuns(ctx context.Context) ([]models.BackupRun, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listRuns)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.ListRuns").Msg("error: querying runs")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var runs []models.BackupRun
	for rows.Next() {
		var run models.BackupRun
		var artifactID string
		if err = rows.Scan(&run.RunID, &artifactID, &run.CreatedAt, &run.EncryptedSize, &run.Chunked, &run.ChunkCount, &run.Pushed); err != nil {
			log.Err(err).Str("func", "*catalogRepository.ListRuns").Msg("error: scanning error")
			return nil, err
		}
		run.ArtifactID = models.ArtifactID(artifactID)
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*catalogRepository.ListRuns").Msg("error: iterating rows")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes the catalog row of the given artifact.
func (r *catalogRepository) DeleteRun(ctx context.Context, id models.ArtifactID) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteRun, string(id)); err != nil {
		log.Err(err).Str("func", "*catalogRepository.DeleteRun").Msg("error: deleting run")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
