// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration parsing for use with a config file.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Backup struct {
		SourceDir     string `json:"source_dir"`
		BackupDir     string `json:"backup_dir"`
		ChunkSize     int64  `json:"chunk_size"`
		RetentionDays int    `json:"retention_days"`
		CatalogPath   string `json:"catalog_path"`
	} `json:"backup,omitempty"`

	Remote struct {
		BaseURL        string   `json:"base_url"`
		MirrorDir      string   `json:"mirror_dir"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxAttempts    int      `json:"max_attempts"`
	} `json:"remote,omitempty"`

	Keyring struct {
		Service string `json:"service"`
		Account string `json:"account"`
	} `json:"keyring,omitempty"`

	Workers struct {
		BackupInterval Duration `json:"backup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Backup: Backup{
			SourceDir:     jsonCfg.Backup.SourceDir,
			BackupDir:     jsonCfg.Backup.BackupDir,
			ChunkSize:     jsonCfg.Backup.ChunkSize,
			RetentionDays: jsonCfg.Backup.RetentionDays,
			CatalogPath:   jsonCfg.Backup.CatalogPath,
		},
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			MirrorDir:      jsonCfg.Remote.MirrorDir,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
			MaxAttempts:    jsonCfg.Remote.MaxAttempts,
		},
		Keyring: Keyring{
			Service: jsonCfg.Keyring.Service,
			Account: jsonCfg.Keyring.Account,
		},
		Workers: Workers{
			BackupInterval: time.Duration(jsonCfg.Workers.BackupInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
