// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-backup-vault/internal/keyring"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/internal/store"
	"github.com/MKhiriev/go-backup-vault/models"
)

// vaultService covers vault administration around the pipeline proper.
type vaultService struct {
	artifacts store.ArtifactStore
	creds     keyring.CredentialStore

	logger *logger.Logger
}

// NewVaultService constructs the [VaultService].
func NewVaultService(artifacts store.ArtifactStore, creds keyring.CredentialStore, log *logger.Logger) VaultService {
	return &vaultService{
		artifacts: artifacts,
		creds:     creds,
		logger:    log,
	}
}

// Init implements [VaultService]. The passphrase goes straight to the
// credential store; it is never written anywhere else.
func (s *vaultService) Init(ctx context.Context, passphrase string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(passphrase) == "" {
		return ErrEmptyPassphrase
	}

	if err := s.creds.SetPassphrase(passphrase); err != nil {
		return fmt.Errorf("store passphrase: %w", err)
	}
	s.logger.Info().Msg("encryption passphrase initialized")
	return nil
}

// List implements [VaultService]. The backup directory, not the catalog, is
// the source of truth for what can actually be restored.
func (s *vaultService) List(ctx context.Context) ([]models.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.artifacts.List()
}
