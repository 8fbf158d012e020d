// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-backup-vault/internal/archive"
	"github.com/MKhiriev/go-backup-vault/internal/chunk"
	"github.com/MKhiriev/go-backup-vault/internal/crypto"
	"github.com/MKhiriev/go-backup-vault/internal/keyring"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/internal/mock"
	"github.com/MKhiriev/go-backup-vault/internal/remote"
	"github.com/MKhiriev/go-backup-vault/internal/store"
	"github.com/MKhiriev/go-backup-vault/models"
)

// fixedClock — простой стаб Clock, не требует mockgen
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 8, 23, 14, 5, 9, 0, time.UTC)

type pipelineEnv struct {
	backup  BackupService
	restore RestoreService
	vault   VaultService

	srcDir    string
	backupDir string
	artifacts store.ArtifactStore
	catalog   *mock.MockCatalogRepository
	creds     keyring.CredentialStore
}

// newPipelineEnv wires a pipeline over real components: filesystem artifact
// store, real cipher engine, archiver, and splitter. Only the catalog and
// the pusher are mocked.
func newPipelineEnv(t *testing.T, ctrl *gomock.Controller, chunkSize int64, pusher remote.Pusher) *pipelineEnv {
	t.Helper()

	srcDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("remember the milk\n"), 0o644))
	payload := make([]byte, 4096)
	_, err := rand.Read(payload)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "sub", "data.bin"), payload, 0o600))

	backupDir := t.TempDir()
	log := logger.Nop()
	artifacts, err := store.NewArtifactFS(backupDir, log)
	require.NoError(t, err)

	catalog := mock.NewMockCatalogRepository(ctrl)
	creds := keyring.NewMemoryStore()
	require.NoError(t, creds.SetPassphrase("correct horse battery staple"))

	cipher := crypto.NewCipherEngine()
	archiver := archive.NewArchiver()
	clock := fixedClock{now: testNow}

	return &pipelineEnv{
		backup: NewBackupService(
			artifacts, catalog, cipher, archiver, chunk.NewSplitter(chunkSize),
			creds, pusher, clock, NewConfigSourceLocator(srcDir), chunkSize, 7, log),
		restore:   NewRestoreService(artifacts, cipher, archiver, chunk.NewReassembler(), creds, log),
		vault:     NewVaultService(artifacts, creds, log),
		srcDir:    srcDir,
		backupDir: backupDir,
		artifacts: artifacts,
		catalog:   catalog,
		creds:     creds,
	}
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// ── Backup ──────────────────────────────────────────────────────────────────

func TestBackup_SingleFileArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newPipelineEnv(t, ctrl, 1<<20, nil)

	var recorded models.BackupRun
	env.catalog.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run models.BackupRun) error {
			recorded = run
			return nil
		})

	id, err := env.backup.Backup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.NewArtifactID(testNow), id)

	assert.Equal(t, id, recorded.ArtifactID)
	assert.False(t, recorded.Chunked)
	assert.NotEmpty(t, recorded.RunID)
	assert.Positive(t, recorded.EncryptedSize)

	names := dirEntries(t, env.backupDir)
	assert.Contains(t, names, string(id)+".enc")
	for _, name := range names {
		assert.False(t, strings.HasSuffix(name, ".partial"), "temp file left behind: %s", name)
	}
	// lock must be released after the run
	assert.NotContains(t, names, ".backup.lock")
}

func TestBackup_ChunkedArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// tiny threshold forces a chunk set
	env := newPipelineEnv(t, ctrl, 512, nil)

	var recorded models.BackupRun
	env.catalog.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run models.BackupRun) error {
			recorded = run
			return nil
		})

	id, err := env.backup.Backup(context.Background())
	require.NoError(t, err)

	assert.True(t, recorded.Chunked)
	assert.GreaterOrEqual(t, recorded.ChunkCount, 2)

	names := dirEntries(t, env.backupDir)
	assert.NotContains(t, names, string(id)+".enc", "chunked artifact must not keep the unsplit payload")
	assert.Contains(t, names, models.ManifestName(id))
	assert.Contains(t, names, models.ChunkName(id, 0))

	artifact, err := env.artifacts.Resolve(string(id))
	require.NoError(t, err)
	assert.True(t, artifact.Chunked)
	assert.Equal(t, recorded.ChunkCount, artifact.ChunkCount)
}

func TestBackup_RefusesConcurrentRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newPipelineEnv(t, ctrl, 1<<20, nil)

	lock, err := store.AcquireRunLock(env.backupDir)
	require.NoError(t, err)
	defer func() { _ = lock.Release() }()

	_, err = env.backup.Backup(context.Background())
	assert.ErrorIs(t, err, store.ErrBackupInProgress)
}

func TestBackup_MissingPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newPipelineEnv(t, ctrl, 1<<20, nil)
	require.NoError(t, env.creds.DeletePassphrase())

	_, err := env.backup.Backup(context.Background())
	assert.ErrorIs(t, err, ErrCredentialMissing)
}

func TestBackup_MissingSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newPipelineEnv(t, ctrl, 1<<20, nil)
	require.NoError(t, os.RemoveAll(env.srcDir))

	_, err := env.backup.Backup(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	names := dirEntries(t, env.backupDir)
	assert.Empty(t, names, "failed run must leave no artifact files")
}

func TestBackup_PushFailureDoesNotFailRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pusher := mock.NewMockPusher(ctrl)
	pusher.EXPECT().
		PushFile(gomock.Any(), gomock.Any()).
		Return(errors.New("remote unavailable")).
		AnyTimes()

	env := newPipelineEnv(t, ctrl, 1<<20, pusher)
	env.catalog.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(nil)
	// MarkPushed must not be called when any file failed to push

	id, err := env.backup.Backup(context.Background())
	require.NoError(t, err, "local persistence is the correctness boundary")

	_, err = env.artifacts.Resolve(string(id))
	assert.NoError(t, err, "artifact must remain locally valid")
}

func TestBackup_PushSuccessMarksPushed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pusher := mock.NewMockPusher(ctrl)
	pusher.EXPECT().PushFile(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	env := newPipelineEnv(t, ctrl, 1<<20, pusher)
	env.catalog.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(nil)
	env.catalog.EXPECT().MarkPushed(gomock.Any(), models.NewArtifactID(testNow)).Return(nil)

	_, err := env.backup.Backup(context.Background())
	require.NoError(t, err)
}

func TestBackup_PushesEveryChunkFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pushed := make(map[string]bool)
	pusher := mock.NewMockPusher(ctrl)
	pusher.EXPECT().
		PushFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string) error {
			pushed[filepath.Base(path)] = true
			return nil
		}).
		AnyTimes()

	env := newPipelineEnv(t, ctrl, 512, pusher)
	env.catalog.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(nil)
	env.catalog.EXPECT().MarkPushed(gomock.Any(), gomock.Any()).Return(nil)

	id, err := env.backup.Backup(context.Background())
	require.NoError(t, err)

	artifact, err := env.artifacts.Resolve(string(id))
	require.NoError(t, err)
	for _, path := range artifact.Files {
		assert.True(t, pushed[filepath.Base(path)], "file %s was not pushed", filepath.Base(path))
	}
	assert.True(t, pushed[models.ManifestName(id)], "manifest must be pushed too")
}

// ── Sweep ───────────────────────────────────────────────────────────────────

func TestSweep_DeletesExpiredWholeUnits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newPipelineEnv(t, ctrl, 1<<20, nil)

	oldID := models.NewArtifactID(testNow.AddDate(0, 0, -8))
	freshID := models.NewArtifactID(testNow.AddDate(0, 0, -1))
	require.NoError(t, os.WriteFile(filepath.Join(env.backupDir, string(oldID)+".enc"), []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(env.backupDir, string(freshID)+".enc"), []byte("fresh"), 0o600))

	env.catalog.EXPECT().DeleteRun(gomock.Any(), oldID).Return(nil)

	deleted, err := env.backup.Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, oldID, deleted[0].ID)

	names := dirEntries(t, env.backupDir)
	assert.NotContains(t, names, string(oldID)+".enc")
	assert.Contains(t, names, string(freshID)+".enc")
}
