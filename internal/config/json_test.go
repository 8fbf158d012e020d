// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeTempJSON(t, `{
		"app": {"version": "1.2.3"},
		"backup": {
			"source_dir": "/data/app",
			"backup_dir": "/var/backups",
			"chunk_size": 90000000,
			"retention_days": 7,
			"catalog_path": "/var/backups/catalog.db"
		},
		"remote": {
			"base_url": "https://backups.example.com/store",
			"mirror_dir": "/mnt/drive/backups",
			"request_timeout": "45s",
			"max_attempts": 3
		},
		"keyring": {"service": "backup-vault", "account": "passphrase"},
		"workers": {"backup_interval": "6h"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "/data/app", cfg.Backup.SourceDir)
	assert.Equal(t, "/var/backups", cfg.Backup.BackupDir)
	assert.Equal(t, int64(90_000_000), cfg.Backup.ChunkSize)
	assert.Equal(t, 7, cfg.Backup.RetentionDays)
	assert.Equal(t, "https://backups.example.com/store", cfg.Remote.BaseURL)
	assert.Equal(t, "/mnt/drive/backups", cfg.Remote.MirrorDir)
	assert.Equal(t, 45*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 3, cfg.Remote.MaxAttempts)
	assert.Equal(t, "backup-vault", cfg.Keyring.Service)
	assert.Equal(t, "passphrase", cfg.Keyring.Account)
	assert.Equal(t, 6*time.Hour, cfg.Workers.BackupInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_DurationAsNumber(t *testing.T) {
	path := writeTempJSON(t, `{"remote": {"request_timeout": 30000000000}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/no/such/config.json")
	require.Error(t, err)
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := writeTempJSON(t, `{"backup": `)

	_, err := parseJSON(path)
	require.Error(t, err)
}

func TestParseJSON_InvalidDurationString(t *testing.T) {
	path := writeTempJSON(t, `{"workers": {"backup_interval": "soon"}}`)

	_, err := parseJSON(path)
	require.Error(t, err)
}
