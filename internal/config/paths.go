// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default values applied by applyDefaults when the merged configuration
// leaves the corresponding fields unset. The chunk threshold sits strictly
// below the common 100 MB remote per-file ceiling; the gap absorbs transport
// overhead and is tunable through BACKUP_CHUNK_SIZE.
const (
	defaultChunkSize      = 90_000_000
	defaultRetentionDays  = 7
	defaultRemoteTimeout  = "30s"
	defaultRemoteAttempts = 5
	defaultKeyringService = "go-backup-vault"
	defaultKeyringAccount = "encryption-passphrase"
	defaultBackupDirName  = ".backup-vault"
	defaultCatalogFile    = "catalog.db"
)

// applyDefaults resolves OS-specific paths once at startup and fills every
// unset field with its default, so that the rest of the application never
// consults the environment or the home directory again.
func (cfg *StructuredConfig) applyDefaults() error {
	if cfg.Backup.BackupDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("detect home directory: %w", err)
		}
		cfg.Backup.BackupDir = filepath.Join(home, defaultBackupDirName)
	}

	if cfg.Backup.ChunkSize == 0 {
		cfg.Backup.ChunkSize = defaultChunkSize
	}
	if cfg.Backup.RetentionDays == 0 {
		cfg.Backup.RetentionDays = defaultRetentionDays
	}
	if cfg.Backup.CatalogPath == "" {
		cfg.Backup.CatalogPath = filepath.Join(cfg.Backup.BackupDir, defaultCatalogFile)
	}

	if cfg.Remote.RequestTimeout == 0 {
		d, _ := time.ParseDuration(defaultRemoteTimeout)
		cfg.Remote.RequestTimeout = d
	}
	if cfg.Remote.MaxAttempts == 0 {
		cfg.Remote.MaxAttempts = defaultRemoteAttempts
	}

	if cfg.Keyring.Service == "" {
		cfg.Keyring.Service = defaultKeyringService
	}
	if cfg.Keyring.Account == "" {
		cfg.Keyring.Account = defaultKeyringAccount
	}

	return nil
}
