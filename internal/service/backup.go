// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-backup-vault/internal/archive"
	"github.com/MKhiriev/go-backup-vault/internal/chunk"
	"github.com/MKhiriev/go-backup-vault/internal/crypto"
	"github.com/MKhiriev/go-backup-vault/internal/keyring"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/internal/remote"
	"github.com/MKhiriev/go-backup-vault/internal/store"
	"github.com/MKhiriev/go-backup-vault/models"
)

// backupService sequences the forward pipeline. Stages run strictly one
// after another; any stage failure aborts the run and removes its partial
// files, so the backup directory never holds a half-built artifact under a
// final name.
type backupService struct {
	artifacts store.ArtifactStore
	catalog   store.CatalogRepository
	cipher    crypto.CipherEngine
	archiver  archive.Archiver
	splitter  chunk.Splitter
	creds     keyring.CredentialStore
	pusher    remote.Pusher
	clock     Clock
	source    SourceLocator

	chunkSize     int64
	retentionDays int

	logger *logger.Logger
}

// NewBackupService constructs the [BackupService]. pusher may be nil, in
// which case artifacts are kept local only.
func NewBackupService(
	artifacts store.ArtifactStore,
	catalog store.CatalogRepository,
	cipher crypto.CipherEngine,
	archiver archive.Archiver,
	splitter chunk.Splitter,
	creds keyring.CredentialStore,
	pusher remote.Pusher,
	clock Clock,
	source SourceLocator,
	chunkSize int64,
	retentionDays int,
	log *logger.Logger,
) BackupService {
	return &backupService{
		artifacts:     artifacts,
		catalog:       catalog,
		cipher:        cipher,
		archiver:      archiver,
		splitter:      splitter,
		creds:         creds,
		pusher:        pusher,
		clock:         clock,
		source:        source,
		chunkSize:     chunkSize,
		retentionDays: retentionDays,
		logger:        log,
	}
}

// Backup implements [BackupService].
func (s *backupService) Backup(ctx context.Context) (models.ArtifactID, error) {
	lock, err := store.AcquireRunLock(s.artifacts.Dir())
	if err != nil {
		return "", err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			s.logger.Warn().Err(releaseErr).Msg("failed to release run lock")
		}
	}()

	srcDir, err := s.source.SourceDir()
	if err != nil {
		return "", err
	}
	passphrase, err := resolvePassphrase(s.creds)
	if err != nil {
		return "", err
	}

	id := models.NewArtifactID(s.clock.Now())
	createdAt, err := id.CreatedAt()
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("artifact", string(id)).Str("source", srcDir).Msg("starting backup run")

	dir := s.artifacts.Dir()
	tarPath := filepath.Join(dir, string(id)+".tar.gz.partial")
	encPath := filepath.Join(dir, string(id)+".enc.partial")

	if err = s.archiveSource(srcDir, tarPath); err != nil {
		return "", err
	}

	size, err := s.cipher.EncryptFile(tarPath, encPath, passphrase)
	_ = os.Remove(tarPath)
	if err != nil {
		_ = os.Remove(encPath)
		return "", fmt.Errorf("encrypt archive: %w", err)
	}

	artifact := models.Artifact{ID: id, CreatedAt: createdAt, EncryptedSize: size}

	if size > s.chunkSize {
		if err = s.persistChunked(&artifact, encPath, dir); err != nil {
			return "", err
		}
	} else {
		finalPath := filepath.Join(dir, string(id)+".enc")
		if err = os.Rename(encPath, finalPath); err != nil {
			_ = os.Remove(encPath)
			return "", fmt.Errorf("persist artifact: %w", err)
		}
		artifact.Files = []string{finalPath}
	}
	// local persistence succeeded: the run is done; everything below is
	// best effort

	run := models.BackupRun{
		RunID:         lock.RunID(),
		ArtifactID:    id,
		CreatedAt:     createdAt,
		EncryptedSize: size,
		Chunked:       artifact.Chunked,
		ChunkCount:    artifact.ChunkCount,
	}
	if err = s.catalog.RecordRun(ctx, run); err != nil {
		s.logger.Warn().Err(err).Str("artifact", string(id)).Msg("catalog record failed, artifact is persisted")
	}

	s.pushArtifact(ctx, artifact)

	if _, err = s.Sweep(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("retention sweep failed")
	}

	s.logger.Info().
		Str("artifact", string(id)).
		Int64("encrypted_size", size).
		Bool("chunked", artifact.Chunked).
		Int("chunks", artifact.ChunkCount).
		Msg("backup run complete")
	return id, nil
}

func (s *backupService) archiveSource(srcDir, tarPath string) error {
	f, err := os.OpenFile(tarPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create archive temp file: %w", err)
	}
	if err = s.archiver.Archive(srcDir, f); err != nil {
		_ = f.Close()
		_ = os.Remove(tarPath)
		return fmt.Errorf("archive source: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(tarPath)
		return fmt.Errorf("close archive temp file: %w", err)
	}
	return nil
}

func (s *backupService) persistChunked(artifact *models.Artifact, encPath, dir string) error {
	m, chunkPaths, err := s.splitter.Split(encPath, artifact.ID, dir)
	if err != nil {
		_ = os.Remove(encPath)
		return fmt.Errorf("split payload: %w", err)
	}

	manifestPath, err := s.artifacts.WriteManifest(m)
	if err != nil {
		for _, p := range chunkPaths {
			_ = os.Remove(p)
		}
		_ = os.Remove(encPath)
		return fmt.Errorf("persist manifest: %w", err)
	}
	_ = os.Remove(encPath)

	artifact.Chunked = true
	artifact.ChunkCount = m.ChunkCount
	artifact.Files = append(chunkPaths, manifestPath)
	return nil
}

// pushArtifact pushes every artifact file one at a time, so a transport
// failure loses at most one file's progress. Failures are logged, never
// fatal: the local artifact is already safely persisted.
func (s *backupService) pushArtifact(ctx context.Context, artifact models.Artifact) {
	if s.pusher == nil {
		return
	}

	pushed := true
	for _, path := range artifact.Files {
		if err := s.pusher.PushFile(ctx, path); err != nil {
			s.logger.Warn().Err(err).Str("file", filepath.Base(path)).Msg("remote push failed, local artifact remains valid")
			pushed = false
		}
	}
	if !pushed {
		return
	}

	if err := s.catalog.MarkPushed(ctx, artifact.ID); err != nil {
		s.logger.Warn().Err(err).Str("artifact", string(artifact.ID)).Msg("failed to mark artifact pushed")
	}
}

// Sweep implements [BackupService]. A per-artifact deletion failure is
// logged and skipped inside the store; the sweep itself only fails when the
// backup directory cannot be scanned.
func (s *backupService) Sweep(ctx context.Context) ([]models.Artifact, error) {
	cutoff := s.clock.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.artifacts.SweepOlderThan(cutoff)
	if err != nil {
		return nil, err
	}

	for _, a := range deleted {
		if err = s.catalog.DeleteRun(ctx, a.ID); err != nil {
			s.logger.Warn().Err(err).Str("artifact", string(a.ID)).Msg("failed to remove swept artifact from catalog")
		}
	}
	if len(deleted) > 0 {
		s.logger.Info().Int("deleted", len(deleted)).Msg("retention sweep removed expired artifacts")
	}
	return deleted, nil
}

// resolvePassphrase fetches the passphrase fresh from the credential store;
// it is never cached or persisted by the pipeline.
func resolvePassphrase(creds keyring.CredentialStore) (string, error) {
	passphrase, err := creds.GetPassphrase()
	if err != nil {
		if errors.Is(err, keyring.ErrPassphraseNotSet) {
			return "", ErrCredentialMissing
		}
		return "", fmt.Errorf("read credential store: %w", err)
	}
	return passphrase, nil
}
