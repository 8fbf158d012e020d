// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-source source directory to back up
//	-dir local backup directory
//	-chunk-size chunk split threshold in bytes
//	-retention-days local retention window in days
//	-catalog artifact catalog path
//	-remote-url remote push base URL
//	-mirror-dir local mirror directory
//	-remote-timeout remote request timeout (e.g., "30s", "1m")
//	-remote-attempts max upload attempts per file
//	-keyring-service credential store service name
//	-keyring-account credential store account name
//	-interval periodic backup interval (e.g., "6h")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var sourceDir string
	var backupDir string
	var chunkSize int64
	var retentionDays int
	var catalogPath string
	var remoteBaseURL string
	var mirrorDir string
	var remoteTimeout time.Duration
	var remoteAttempts int
	var keyringService string
	var keyringAccount string
	var backupInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&sourceDir, "source", "", "Source directory to back up")
	flag.StringVar(&backupDir, "dir", "", "Local backup directory")
	flag.Int64Var(&chunkSize, "chunk-size", 0, "Chunk split threshold in bytes")
	flag.IntVar(&retentionDays, "retention-days", 0, "Retention window in days")
	flag.StringVar(&catalogPath, "catalog", "", "Artifact catalog path")
	flag.StringVar(&remoteBaseURL, "remote-url", "", "Remote push base URL")
	flag.StringVar(&mirrorDir, "mirror-dir", "", "Local mirror directory")
	flag.DurationVar(&remoteTimeout, "remote-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")
	flag.IntVar(&remoteAttempts, "remote-attempts", 0, "Max upload attempts per file")
	flag.StringVar(&keyringService, "keyring-service", "", "Credential store service name")
	flag.StringVar(&keyringAccount, "keyring-account", "", "Credential store account name")
	flag.DurationVar(&backupInterval, "interval", 0, "Periodic backup interval (e.g., 6h)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Backup: Backup{
			SourceDir:     sourceDir,
			BackupDir:     backupDir,
			ChunkSize:     chunkSize,
			RetentionDays: retentionDays,
			CatalogPath:   catalogPath,
		},
		Remote: Remote{
			BaseURL:        remoteBaseURL,
			MirrorDir:      mirrorDir,
			RequestTimeout: remoteTimeout,
			MaxAttempts:    remoteAttempts,
		},
		Keyring: Keyring{
			Service: keyringService,
			Account: keyringAccount,
		},
		Workers: Workers{
			BackupInterval: backupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
