package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestVaultInit_StoresPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newPipelineEnv(t, ctrl, 1<<20, nil)
	require.NoError(t, env.creds.DeletePassphrase())

	require.NoError(t, env.vault.Init(context.Background(), "fresh passphrase"))

	got, err := env.creds.GetPassphrase()
	require.NoError(t, err)
	assert.Equal(t, "fresh passphrase", got)
}

func TestVaultInit_RejectsEmptyPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newPipelineEnv(t, ctrl, 1<<20, nil)

	assert.ErrorIs(t, env.vault.Init(context.Background(), "   "), ErrEmptyPassphrase)
}

func TestVaultList_ReflectsBackupDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	env := newPipelineEnv(t, ctrl, 1<<20, nil)
	env.catalog.EXPECT().RecordRun(gomock.Any(), gomock.Any()).Return(nil)

	artifacts, err := env.vault.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, artifacts)

	id, err := env.backup.Backup(context.Background())
	require.NoError(t, err)

	artifacts, err = env.vault.List(context.Background())
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, id, artifacts[0].ID)
}

func TestConfigSourceLocator(t *testing.T) {
	dir := t.TempDir()

	loc := NewConfigSourceLocator(dir)
	got, err := loc.SourceDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = NewConfigSourceLocator("").SourceDir()
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	_, err = NewConfigSourceLocator("/does/not/exist").SourceDir()
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
