// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BackupRun is one row of the local sqlite catalog: the durable record of a
// completed backup run and its push status. The catalog is an index over the
// backup directory; the files themselves remain the source of truth.
type BackupRun struct {
	// RunID is a random UUID assigned when the run is recorded.
	RunID string `json:"run_id"`

	// ArtifactID is the timestamp label of the artifact the run produced.
	ArtifactID ArtifactID `json:"artifact_id"`

	// CreatedAt is the wall-clock time of the backup run.
	CreatedAt time.Time `json:"created_at"`

	// EncryptedSize is the size in bytes of the encrypted payload.
	EncryptedSize int64 `json:"encrypted_size"`

	// Chunked reports whether the artifact was split into a chunk set.
	Chunked bool `json:"chunked"`

	// ChunkCount is the number of chunk files; zero for single-file artifacts.
	ChunkCount int `json:"chunk_count,omitempty"`

	// Pushed reports whether every file of the artifact reached remote
	// storage.
	Pushed bool `json:"pushed"`
}
