// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package chunk

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-backup-vault/models"
)

// splitter is the default implementation of [Splitter].
type splitter struct {
	chunkSize int64
}

// NewSplitter constructs a [Splitter] cutting payloads into chunks of at
// most chunkSize bytes.
func NewSplitter(chunkSize int64) Splitter {
	return &splitter{chunkSize: chunkSize}
}

// Split implements [Splitter]. It streams the payload in bounded windows,
// never holding more than one copy buffer in memory, and hashes each chunk
// while writing it.
func (s *splitter) Split(encPath string, id models.ArtifactID, destDir string) (*models.Manifest, []string, error) {
	if s.chunkSize <= 0 {
		return nil, nil, fmt.Errorf("invalid chunk size %d", s.chunkSize)
	}

	in, err := os.Open(encPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open payload %s: %w", encPath, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat payload %s: %w", encPath, err)
	}

	manifest := &models.Manifest{
		Version:    models.ManifestVersion,
		ArtifactID: id,
		TotalSize:  info.Size(),
		ChunkSize:  s.chunkSize,
	}

	var paths []string
	for ordinal := 0; ; ordinal++ {
		name := models.ChunkName(id, ordinal)
		path := filepath.Join(destDir, name)

		written, checksum, err := s.writeChunk(in, path)
		if err != nil {
			removeAll(paths, path)
			return nil, nil, err
		}
		if written == 0 {
			// Payload ended exactly on the previous boundary.
			os.Remove(path)
			break
		}

		manifest.Chunks = append(manifest.Chunks, models.ChunkInfo{
			Ordinal:  ordinal,
			Name:     name,
			Size:     written,
			Checksum: checksum,
		})
		paths = append(paths, path)

		if written < s.chunkSize {
			break
		}
	}

	manifest.ChunkCount = len(manifest.Chunks)
	if err := manifest.Validate(); err != nil {
		removeAll(paths, "")
		return nil, nil, fmt.Errorf("split produced invalid manifest: %w", err)
	}

	return manifest, paths, nil
}

// writeChunk copies up to chunkSize bytes from in to a new file at path,
// hashing the bytes as they pass through. Returns the number of bytes
// written and their hex SHA-256.
func (s *splitter) writeChunk(in io.Reader, path string) (int64, string, error) {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, "", fmt.Errorf("create chunk %s: %w", path, err)
	}

	h := sha256.New()
	written, err := io.CopyN(io.MultiWriter(out, h), in, s.chunkSize)
	if err != nil && !errors.Is(err, io.EOF) {
		out.Close()
		return 0, "", fmt.Errorf("write chunk %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return 0, "", fmt.Errorf("close chunk %s: %w", path, err)
	}

	return written, hex.EncodeToString(h.Sum(nil)), nil
}

// removeAll deletes the listed chunk files plus an optional extra path,
// ignoring individual failures: cleanup after a failed split is best effort.
func removeAll(paths []string, extra string) {
	for _, p := range paths {
		os.Remove(p)
	}
	if extra != "" {
		os.Remove(extra)
	}
}
