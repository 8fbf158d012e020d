// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// SourceDir is deliberately not required here: restore, list, and sweep
// operate without one, and the backup pipeline reports SourceUnavailable
// through the source locator when the directory is missing.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Backup.BackupDir == "" {
		return ErrInvalidBackupConfigs
	}

	if cfg.Backup.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}

	if cfg.Backup.RetentionDays < 0 {
		return ErrInvalidRetention
	}

	if cfg.Remote.MaxAttempts < 1 || cfg.Remote.RequestTimeout <= 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Keyring.Service == "" || cfg.Keyring.Account == "" {
		return ErrInvalidKeyringConfigs
	}

	return nil
}
