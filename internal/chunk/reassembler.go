// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package chunk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-backup-vault/models"
)

// reassembler is the default implementation of [Reassembler].
type reassembler struct{}

// NewReassembler constructs a [Reassembler].
func NewReassembler() Reassembler {
	return &reassembler{}
}

// Reassemble implements [Reassembler]. Verification happens in a first full
// pass over all chunks; nothing is written to w until every ordinal is
// present and matches its manifest checksum, so a corrupted chunk set never
// yields a partial payload.
func (r *reassembler) Reassemble(m *models.Manifest, provider ChunkProvider, w io.Writer) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	for _, c := range m.Chunks {
		if err := verifyChunk(provider, c); err != nil {
			return err
		}
	}

	var total int64
	for _, c := range m.Chunks {
		rc, err := provider.Open(c.Ordinal)
		if err != nil {
			if errors.Is(err, ErrChunkNotFound) {
				return &ChunkMissingError{Ordinal: c.Ordinal}
			}
			return fmt.Errorf("open chunk %d: %w", c.Ordinal, err)
		}

		n, err := io.Copy(w, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("concatenate chunk %d: %w", c.Ordinal, err)
		}
		total += n
	}

	if total != m.TotalSize {
		return &SizeMismatchError{Want: m.TotalSize, Got: total}
	}

	return nil
}

// verifyChunk recomputes one chunk's checksum and compares it with the
// manifest record. A size difference also counts as corruption: the bytes
// are not the ones that were split.
func verifyChunk(provider ChunkProvider, c models.ChunkInfo) error {
	rc, err := provider.Open(c.Ordinal)
	if err != nil {
		if errors.Is(err, ErrChunkNotFound) {
			return &ChunkMissingError{Ordinal: c.Ordinal}
		}
		return fmt.Errorf("open chunk %d: %w", c.Ordinal, err)
	}
	defer rc.Close()

	checksum, size, err := readerChecksum(rc)
	if err != nil {
		return fmt.Errorf("verify chunk %d: %w", c.Ordinal, err)
	}

	if size != c.Size || checksum != c.Checksum {
		return &ChunkCorruptedError{Ordinal: c.Ordinal}
	}

	return nil
}

// dirChunkProvider serves chunks of one artifact from a directory using the
// canonical chunk naming scheme.
type dirChunkProvider struct {
	dir string
	id  models.ArtifactID
}

// NewDirChunkProvider constructs a [ChunkProvider] reading the chunks of
// artifact id from dir.
func NewDirChunkProvider(dir string, id models.ArtifactID) ChunkProvider {
	return &dirChunkProvider{dir: dir, id: id}
}

func (p *dirChunkProvider) Open(ordinal int) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(p.dir, models.ChunkName(p.id, ordinal)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: ordinal %d", ErrChunkNotFound, ordinal)
		}
		return nil, err
	}
	return f, nil
}
