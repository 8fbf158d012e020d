package store

import "errors"

var (
	// ErrArtifactNotFound indicates no artifact matches the requested id.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrBackupInProgress indicates another backup run holds the run lock.
	ErrBackupInProgress = errors.New("another backup is already in progress")
	// ErrManifestExists indicates an attempt to overwrite an existing
	// manifest; manifests are immutable once written.
	ErrManifestExists = errors.New("manifest already exists")
)
