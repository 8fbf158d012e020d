package service

import (
	"github.com/MKhiriev/go-backup-vault/internal/archive"
	"github.com/MKhiriev/go-backup-vault/internal/chunk"
	"github.com/MKhiriev/go-backup-vault/internal/config"
	"github.com/MKhiriev/go-backup-vault/internal/crypto"
	"github.com/MKhiriev/go-backup-vault/internal/keyring"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/internal/remote"
	"github.com/MKhiriev/go-backup-vault/internal/store"
)

type Services struct {
	BackupService  BackupService
	RestoreService RestoreService
	VaultService   VaultService
}

func NewServices(
	cfg *config.StructuredConfig,
	artifacts store.ArtifactStore,
	catalog store.CatalogRepository,
	creds keyring.CredentialStore,
	pusher remote.Pusher,
	log *logger.Logger,
) *Services {
	cipher := crypto.NewCipherEngine()
	archiver := archive.NewArchiver()
	splitter := chunk.NewSplitter(cfg.Backup.ChunkSize)
	reassembler := chunk.NewReassembler()
	clock := NewSystemClock()
	source := NewConfigSourceLocator(cfg.Backup.SourceDir)

	return &Services{
		BackupService: NewBackupService(
			artifacts, catalog, cipher, archiver, splitter, creds, pusher,
			clock, source, cfg.Backup.ChunkSize, cfg.Backup.RetentionDays, log),
		RestoreService: NewRestoreService(artifacts, cipher, archiver, reassembler, creds, log),
		VaultService:   NewVaultService(artifacts, creds, log),
	}
}
