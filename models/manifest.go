// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// ChunkInfo describes one chunk of a split encrypted payload.
type ChunkInfo struct {
	// Ordinal is the zero-based position of the chunk within the payload.
	// Ordinals are contiguous with no gaps.
	Ordinal int `json:"ordinal"`

	// Name is the chunk file name, e.g. "2026-08-23_14-05-09.enc.001".
	// The numeric suffix is Ordinal+1, matching the on-disk naming scheme.
	Name string `json:"name"`

	// Size is the chunk length in bytes.
	Size int64 `json:"size"`

	// Checksum is the hex-encoded SHA-256 of the chunk's raw bytes.
	Checksum string `json:"checksum"`
}

// Manifest describes a chunk set: how an encrypted payload was split and how
// to verify and reassemble it. Manifests are immutable once written.
type Manifest struct {
	Version    int         `json:"version"`
	ArtifactID ArtifactID  `json:"artifact_id"`
	TotalSize  int64       `json:"total_size"`
	ChunkSize  int64       `json:"chunk_size"`
	ChunkCount int         `json:"chunk_count"`
	Chunks     []ChunkInfo `json:"chunks"`
}

// ChunkName returns the canonical chunk file name for the given ordinal.
func ChunkName(id ArtifactID, ordinal int) string {
	return fmt.Sprintf("%s.enc.%03d", id, ordinal+1)
}

// ManifestName returns the canonical manifest file name for an artifact.
func ManifestName(id ArtifactID) string {
	return string(id) + ".enc.manifest"
}

// Validate checks the manifest's internal invariants: the chunk count matches
// the chunk list, ordinals are contiguous starting at zero, every chunk has a
// positive size and a checksum, and the chunk sizes sum to TotalSize.
func (m *Manifest) Validate() error {
	if m.ChunkCount != len(m.Chunks) {
		return fmt.Errorf("manifest chunk count %d does not match %d listed chunks", m.ChunkCount, len(m.Chunks))
	}
	if m.ChunkCount == 0 {
		return errors.New("manifest lists no chunks")
	}

	var total int64
	for i, c := range m.Chunks {
		if c.Ordinal != i {
			return fmt.Errorf("manifest ordinals not contiguous: chunk %d has ordinal %d", i, c.Ordinal)
		}
		if c.Size <= 0 {
			return fmt.Errorf("chunk %d has non-positive size %d", i, c.Size)
		}
		if c.Checksum == "" {
			return fmt.Errorf("chunk %d has empty checksum", i)
		}
		total += c.Size
	}

	if total != m.TotalSize {
		return fmt.Errorf("chunk sizes sum to %d, manifest total is %d", total, m.TotalSize)
	}

	return nil
}
