package chunk

import (
	"io"

	"github.com/MKhiriev/go-backup-vault/models"
)

// Splitter splits an encrypted payload file into fixed-size chunks and
// computes the manifest describing them. Chunk boundaries are purely
// byte-offset based, never content-aware, so splitting is deterministic and
// order-preserving.
type Splitter interface {
	// Split cuts the payload at encPath into chunks of the configured
	// size (the final chunk holds the remainder) written into destDir,
	// and returns the manifest plus the chunk file paths in ordinal
	// order. The payload file itself is left untouched.
	Split(encPath string, id models.ArtifactID, destDir string) (*models.Manifest, []string, error)
}

// ChunkProvider supplies chunk contents by ordinal during reassembly.
// Implementations return [ErrChunkNotFound] for ordinals they cannot supply.
type ChunkProvider interface {
	Open(ordinal int) (io.ReadCloser, error)
}

// Reassembler validates a chunk set against its manifest and concatenates
// the chunks back into the original encrypted payload.
type Reassembler interface {
	// Reassemble verifies every chunk's checksum against the manifest
	// first; only when all chunks verify does it write the concatenation
	// to w. Returns *ChunkCorruptedError, *ChunkMissingError, or
	// *SizeMismatchError on the corresponding failure.
	Reassemble(m *models.Manifest, provider ChunkProvider, w io.Writer) error
}
