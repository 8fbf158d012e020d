// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// TimestampLayout is the time layout used for artifact identifiers.
// The resulting label sorts lexicographically in chronological order,
// which keeps directory listings and retention scans simple.
const TimestampLayout = "2006-01-02_15-04-05"

// ArtifactID is the timestamp label identifying one backup run,
// e.g. "2026-08-23_14-05-09".
type ArtifactID string

// NewArtifactID builds an [ArtifactID] from the given wall-clock time.
func NewArtifactID(t time.Time) ArtifactID {
	return ArtifactID(t.Format(TimestampLayout))
}

// CreatedAt parses the creation time encoded in the identifier.
// Returns an error if the identifier does not follow [TimestampLayout].
func (id ArtifactID) CreatedAt() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, string(id))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid artifact id %q: %w", id, err)
	}
	return t, nil
}

// Artifact is the logical unit produced by one backup run. It exists on disk
// as either a single encrypted file or a chunk set (N chunk files plus one
// manifest); exactly one representation is active at a time.
type Artifact struct {
	// ID is the timestamp label of the backup run.
	ID ArtifactID `json:"id"`

	// CreatedAt is the wall-clock time of the backup run, decoded from ID.
	CreatedAt time.Time `json:"created_at"`

	// EncryptedSize is the size in bytes of the full encrypted payload,
	// before any chunk split.
	EncryptedSize int64 `json:"encrypted_size"`

	// Chunked reports whether the artifact is stored as a chunk set.
	Chunked bool `json:"chunked"`

	// ChunkCount is the number of chunk files; zero for single-file artifacts.
	ChunkCount int `json:"chunk_count,omitempty"`

	// Files lists the absolute paths of every file composing the artifact:
	// the single .enc file, or all chunks followed by the manifest.
	// The artifact must always be created or deleted as a whole unit.
	Files []string `json:"-"`
}
