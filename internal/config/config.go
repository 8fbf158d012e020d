// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-backup-vault application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the application version.
	App App `envPrefix:"APP_"`

	// Backup holds the core pipeline settings: source and backup
	// directories, chunk threshold, and retention window.
	Backup Backup `envPrefix:"BACKUP_"`

	// Remote holds configuration for pushing finished artifacts to a
	// remote host. All fields are optional; when empty, remote push is
	// skipped and artifacts are kept locally only.
	Remote Remote `envPrefix:"REMOTE_"`

	// Keyring holds the OS credential-store coordinates under which the
	// encryption passphrase is kept.
	Keyring Keyring `envPrefix:"KEYRING_"`

	// Workers holds configuration for the periodic backup job.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Printed by the command surface on startup.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Backup groups the settings of the encrypted chunked-archive pipeline.
type Backup struct {
	// SourceDir is the directory tree to archive and encrypt.
	// Env: BACKUP_SOURCE_DIR
	SourceDir string `env:"SOURCE_DIR"`

	// BackupDir is the local directory where finished artifacts are
	// persisted. Defaults to <home>/.backup-vault.
	// Env: BACKUP_DIR
	BackupDir string `env:"DIR"`

	// ChunkSize is the maximum artifact file size in bytes before the
	// encrypted payload is split into a chunk set. Chosen strictly below
	// the remote host's per-file ceiling to leave transport margin.
	// Defaults to 90 MB (for a 100 MB remote cap).
	// Env: BACKUP_CHUNK_SIZE
	ChunkSize int64 `env:"CHUNK_SIZE"`

	// RetentionDays is the age in days past which local artifacts are
	// deleted by the retention sweep. Defaults to 7.
	// Env: BACKUP_RETENTION_DAYS
	RetentionDays int `env:"RETENTION_DAYS"`

	// CatalogPath is the path of the sqlite artifact catalog. Defaults to
	// <BackupDir>/catalog.db.
	// Env: BACKUP_CATALOG_PATH
	CatalogPath string `env:"CATALOG_PATH"`
}

// Remote holds settings for the artifact pusher.
type Remote struct {
	// BaseURL is the HTTP endpoint artifact files are uploaded to, one
	// PUT request per file. Empty disables the HTTP pusher.
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// MirrorDir is a local directory (e.g. a synced cloud-drive folder)
	// artifact files are copied into. Empty disables the mirror pusher.
	// Env: REMOTE_MIRROR_DIR
	MirrorDir string `env:"MIRROR_DIR"`

	// RequestTimeout is the per-request timeout for remote uploads
	// (e.g. "30s", "2m"). Defaults to 30s.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxAttempts bounds the retries of one file upload on transient
	// transport errors. Defaults to 5.
	// Env: REMOTE_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`
}

// Keyring identifies the credential-store entry holding the passphrase.
type Keyring struct {
	// Service is the credential-store service name.
	// Env: KEYRING_SERVICE
	Service string `env:"SERVICE"`

	// Account is the credential-store account name.
	// Env: KEYRING_ACCOUNT
	Account string `env:"ACCOUNT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// BackupInterval is the period of the scheduled backup job.
	// Zero disables periodic backups.
	// Env: WORKERS_BACKUP_INTERVAL
	BackupInterval time.Duration `env:"BACKUP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Unset fields are then filled with defaults resolved against the user's
// home directory.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
