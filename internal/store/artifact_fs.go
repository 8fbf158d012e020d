// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/models"
)

const (
	encSuffix      = ".enc"
	manifestSuffix = ".enc.manifest"
)

// fsStore is the filesystem implementation of [ArtifactStore]. The backup
// directory is the source of truth: artifacts are discovered by scanning it,
// never by trusting the catalog.
type fsStore struct {
	dir    string
	logger *logger.Logger
}

// NewArtifactFS constructs an [ArtifactStore] rooted at dir, creating the
// directory if needed.
func NewArtifactFS(dir string, log *logger.Logger) (ArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &fsStore{dir: dir, logger: log}, nil
}

// Dir implements [ArtifactStore].
func (s *fsStore) Dir() string {
	return s.dir
}

// WriteManifest implements [ArtifactStore].
func (s *fsStore) WriteManifest(m *models.Manifest) (string, error) {
	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("refusing to write invalid manifest: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}

	path := filepath.Join(s.dir, models.ManifestName(m.ArtifactID))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrManifestExists, path)
		}
		return "", fmt.Errorf("create manifest file: %w", err)
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write manifest file: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close manifest file: %w", err)
	}

	return path, nil
}

// ReadManifest implements [ArtifactStore].
func (s *fsStore) ReadManifest(id models.ArtifactID) (*models.Manifest, error) {
	path := filepath.Join(s.dir, models.ManifestName(id))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, id)
		}
		return nil, fmt.Errorf("read manifest file: %w", err)
	}

	var m models.Manifest
	if err = json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if m.Version != models.ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %d in %s", m.Version, path)
	}
	if err = m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return &m, nil
}

// List implements [ArtifactStore]. Chunk files are not listed on their own;
// they surface through the manifest that owns them.
func (s *fsStore) List() ([]models.Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var artifacts []models.Artifact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		switch {
		case strings.HasSuffix(name, manifestSuffix):
			id := models.ArtifactID(strings.TrimSuffix(name, manifestSuffix))
			artifact, err := s.chunkedArtifact(id)
			if err != nil {
				s.logger.Warn().Err(err).Str("file", name).Msg("skipping unreadable manifest")
				continue
			}
			artifacts = append(artifacts, artifact)

		case strings.HasSuffix(name, encSuffix):
			id := models.ArtifactID(strings.TrimSuffix(name, encSuffix))
			createdAt, err := id.CreatedAt()
			if err != nil {
				continue // not an artifact file
			}
			info, err := entry.Info()
			if err != nil {
				s.logger.Warn().Err(err).Str("file", name).Msg("skipping unreadable artifact file")
				continue
			}
			artifacts = append(artifacts, models.Artifact{
				ID:            id,
				CreatedAt:     createdAt,
				EncryptedSize: info.Size(),
				Files:         []string{filepath.Join(s.dir, name)},
			})
		}
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].ID < artifacts[j].ID })
	return artifacts, nil
}

func (s *fsStore) chunkedArtifact(id models.ArtifactID) (models.Artifact, error) {
	createdAt, err := id.CreatedAt()
	if err != nil {
		return models.Artifact{}, err
	}
	m, err := s.ReadManifest(id)
	if err != nil {
		return models.Artifact{}, err
	}

	files := make([]string, 0, len(m.Chunks)+1)
	for _, c := range m.Chunks {
		files = append(files, filepath.Join(s.dir, c.Name))
	}
	files = append(files, filepath.Join(s.dir, models.ManifestName(id)))

	return models.Artifact{
		ID:            id,
		CreatedAt:     createdAt,
		EncryptedSize: m.TotalSize,
		Chunked:       true,
		ChunkCount:    m.ChunkCount,
		Files:         files,
	}, nil
}

// Resolve implements [ArtifactStore].
func (s *fsStore) Resolve(ref string) (models.Artifact, error) {
	artifacts, err := s.List()
	if err != nil {
		return models.Artifact{}, err
	}
	for _, a := range artifacts {
		if string(a.ID) == ref {
			return a, nil
		}
	}
	return models.Artifact{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, ref)
}

// Delete implements [ArtifactStore]. Files is ordered chunks-first with the
// manifest (or the single encrypted file) last; removal stops on the first
// failure so a half-deleted chunk set never passes for a healthy artifact.
func (s *fsStore) Delete(artifact models.Artifact) error {
	for _, path := range artifact.Files {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete artifact %s: %w", artifact.ID, err)
		}
	}
	s.logger.Debug().Str("artifact", string(artifact.ID)).Int("files", len(artifact.Files)).Msg("deleted artifact")
	return nil
}

// SweepOlderThan implements [ArtifactStore].
func (s *fsStore) SweepOlderThan(cutoff time.Time) ([]models.Artifact, error) {
	artifacts, err := s.List()
	if err != nil {
		return nil, fmt.Errorf("retention sweep: %w", err)
	}

	var deleted []models.Artifact
	for _, a := range artifacts {
		if !a.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.Delete(a); err != nil {
			s.logger.Warn().Err(err).Str("artifact", string(a.ID)).Msg("retention sweep skipping artifact")
			continue
		}
		deleted = append(deleted, a)
	}

	return deleted, nil
}
