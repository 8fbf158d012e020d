package chunk

import (
	"errors"
	"fmt"
)

// ErrChunkNotFound is returned by a [ChunkProvider] that cannot supply the
// requested ordinal.
var ErrChunkNotFound = errors.New("chunk not found")

// ChunkCorruptedError reports a chunk whose bytes do not match the checksum
// recorded in the manifest. Corruption is a restore-time logic failure and
// is never retried.
type ChunkCorruptedError struct {
	Ordinal int
}

func (e *ChunkCorruptedError) Error() string {
	return fmt.Sprintf("chunk %d corrupted: checksum mismatch", e.Ordinal)
}

// ChunkMissingError reports an ordinal the provider could not supply.
// Distinct from corruption because the recovery strategy differs: a missing
// chunk can be re-fetched, a corrupted one requires a new backup.
type ChunkMissingError struct {
	Ordinal int
}

func (e *ChunkMissingError) Error() string {
	return fmt.Sprintf("chunk %d missing", e.Ordinal)
}

// SizeMismatchError reports a reassembled payload whose length differs from
// the total recorded in the manifest.
type SizeMismatchError struct {
	Want int64
	Got  int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("reassembled size %d does not match manifest total %d", e.Got, e.Want)
}
