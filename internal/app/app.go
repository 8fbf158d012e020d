// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the backup-vault application: configuration, the
// artifact store and sqlite catalog, the credential store, the remote
// pushers, the pipeline services, and the periodic backup job. It also maps
// command names from the command surface onto pipeline operations.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/go-backup-vault/internal/config"
	"github.com/MKhiriev/go-backup-vault/internal/keyring"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/internal/remote"
	"github.com/MKhiriev/go-backup-vault/internal/service"
	"github.com/MKhiriev/go-backup-vault/internal/store"
	"github.com/MKhiriev/go-backup-vault/internal/workers"
)

type App struct {
	cfg      *config.StructuredConfig
	services *service.Services
	job      *workers.BackupJob
	db       *store.DB
	logger   *logger.Logger

	// command surface I/O, overridable in tests
	out io.Writer
	in  io.Reader
}

// New wires the full application from configuration.
func New(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	artifacts, err := store.NewArtifactFS(cfg.Backup.BackupDir, log)
	if err != nil {
		return nil, fmt.Errorf("create artifact store: %w", err)
	}

	db, err := store.NewConnectSQLite(ctx, cfg.Backup.CatalogPath, log)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	catalog := store.NewCatalogRepository(db, log)

	creds := keyring.NewSystemStore(cfg.Keyring)
	pusher := remote.NewFromConfig(cfg.Remote, log)

	services := service.NewServices(cfg, artifacts, catalog, creds, pusher, log)

	return &App{
		cfg:      cfg,
		services: services,
		job:      workers.NewBackupJob(services.BackupService, cfg.Workers.BackupInterval, log),
		db:       db,
		logger:   log,
		out:      os.Stdout,
		in:       os.Stdin,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	return a.db.Close()
}

// Run executes one command. args carries the command's positional arguments.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "init":
		return a.runInit(ctx, args)
	case "backup":
		return a.runBackup(ctx)
	case "restore":
		return a.runRestore(ctx, args)
	case "list":
		return a.runList(ctx)
	case "sweep":
		return a.runSweep(ctx)
	case "watch":
		return a.runWatch(ctx)
	default:
		return fmt.Errorf("unknown command %q (expected init, backup, restore, list, sweep, or watch)", command)
	}
}

func (a *App) runInit(ctx context.Context, args []string) error {
	passphrase := ""
	if len(args) > 0 {
		passphrase = args[0]
	} else {
		fmt.Fprint(a.out, "Encryption passphrase: ")
		line, err := bufio.NewReader(a.in).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read passphrase: %w", err)
		}
		passphrase = strings.TrimRight(line, "\r\n")
	}

	if err := a.services.VaultService.Init(ctx, passphrase); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Passphrase stored in the system credential store.")
	return nil
}

func (a *App) runBackup(ctx context.Context) error {
	id, err := a.services.BackupService.Backup(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backup complete: %s\n", id)
	return nil
}

func (a *App) runRestore(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: restore <artifact-id> <dest-dir>")
	}
	ref, destDir := args[0], args[1]

	if err := a.services.RestoreService.Restore(ctx, ref, destDir); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Restored %s into %s\n", ref, destDir)
	return nil
}

func (a *App) runList(ctx context.Context) error {
	artifacts, err := a.services.VaultService.List(ctx)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		fmt.Fprintln(a.out, "No backups found.")
		return nil
	}

	for _, artifact := range artifacts {
		layout := "single file"
		if artifact.Chunked {
			layout = fmt.Sprintf("%d chunks", artifact.ChunkCount)
		}
		fmt.Fprintf(a.out, "%s  %12d bytes  %s\n", artifact.ID, artifact.EncryptedSize, layout)
	}
	return nil
}

func (a *App) runSweep(ctx context.Context) error {
	deleted, err := a.services.BackupService.Sweep(ctx)
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		fmt.Fprintln(a.out, "Nothing to sweep: no artifacts older than the retention window.")
		return nil
	}

	for _, artifact := range deleted {
		fmt.Fprintf(a.out, "Deleted %s\n", artifact.ID)
	}
	return nil
}

// runWatch runs the periodic backup job until ctx is cancelled.
func (a *App) runWatch(ctx context.Context) error {
	if a.cfg.Workers.BackupInterval <= 0 {
		return fmt.Errorf("watch requires a backup interval (set WORKERS_BACKUP_INTERVAL or -interval)")
	}

	fmt.Fprintf(a.out, "Running scheduled backups every %s. Press Ctrl+C to stop.\n", a.cfg.Workers.BackupInterval)
	workers.NewWorkers(a.job).Run()
	<-ctx.Done()
	a.job.Stop()
	fmt.Fprintln(a.out, "Stopped.")
	return nil
}
