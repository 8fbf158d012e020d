// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-backup-vault/internal/archive"
	"github.com/MKhiriev/go-backup-vault/internal/chunk"
	"github.com/MKhiriev/go-backup-vault/internal/crypto"
	"github.com/MKhiriev/go-backup-vault/internal/keyring"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/internal/store"
	"github.com/MKhiriev/go-backup-vault/models"
)

// restoreService runs the inverse pipeline: reassemble (if chunked), decrypt,
// extract. Artifacts are read-only; a restore never mutates the backup
// directory beyond its own temp files.
type restoreService struct {
	artifacts   store.ArtifactStore
	cipher      crypto.CipherEngine
	archiver    archive.Archiver
	reassembler chunk.Reassembler
	creds       keyring.CredentialStore

	logger *logger.Logger
}

// NewRestoreService constructs the [RestoreService].
func NewRestoreService(
	artifacts store.ArtifactStore,
	cipher crypto.CipherEngine,
	archiver archive.Archiver,
	reassembler chunk.Reassembler,
	creds keyring.CredentialStore,
	log *logger.Logger,
) RestoreService {
	return &restoreService{
		artifacts:   artifacts,
		cipher:      cipher,
		archiver:    archiver,
		reassembler: reassembler,
		creds:       creds,
		logger:      log,
	}
}

// Restore implements [RestoreService].
func (s *restoreService) Restore(ctx context.Context, ref, destDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	passphrase, err := resolvePassphrase(s.creds)
	if err != nil {
		return err
	}

	artifact, err := s.artifacts.Resolve(ref)
	if err != nil {
		return err
	}
	s.logger.Info().Str("artifact", string(artifact.ID)).Str("dest", destDir).Bool("chunked", artifact.Chunked).Msg("starting restore")

	encPath, cleanup, err := s.encryptedPayload(artifact)
	if err != nil {
		return err
	}
	defer cleanup()

	tarFile, err := os.CreateTemp("", "restore-*.tar.gz")
	if err != nil {
		return fmt.Errorf("create restore temp file: %w", err)
	}
	tarPath := tarFile.Name()
	_ = tarFile.Close()
	defer func() { _ = os.Remove(tarPath) }()

	if err = s.cipher.DecryptFile(encPath, tarPath, passphrase); err != nil {
		return fmt.Errorf("decrypt artifact %s: %w", artifact.ID, err)
	}

	f, err := os.Open(tarPath)
	if err != nil {
		return fmt.Errorf("open decrypted archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err = s.archiver.Extract(f, destDir); err != nil {
		return fmt.Errorf("extract artifact %s: %w", artifact.ID, err)
	}

	s.logger.Info().Str("artifact", string(artifact.ID)).Msg("restore complete")
	return nil
}

// encryptedPayload yields the path of the full encrypted payload for the
// artifact: the single file directly, or a temp reassembly of the chunk set.
// The returned cleanup removes any temp file.
func (s *restoreService) encryptedPayload(artifact models.Artifact) (string, func(), error) {
	if !artifact.Chunked {
		return artifact.Files[0], func() {}, nil
	}

	m, err := s.artifacts.ReadManifest(artifact.ID)
	if err != nil {
		return "", nil, err
	}
	provider := chunk.NewDirChunkProvider(s.artifacts.Dir(), artifact.ID)

	out, err := os.CreateTemp("", "restore-*.enc")
	if err != nil {
		return "", nil, fmt.Errorf("create reassembly temp file: %w", err)
	}
	path := out.Name()
	cleanup := func() { _ = os.Remove(path) }

	if err = s.reassembler.Reassemble(m, provider, out); err != nil {
		_ = out.Close()
		cleanup()
		return "", nil, fmt.Errorf("reassemble artifact %s: %w", artifact.ID, err)
	}
	if err = out.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close reassembly temp file: %w", err)
	}

	return path, cleanup, nil
}
