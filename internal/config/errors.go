package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidBackupConfigs indicates invalid backup pipeline settings
	// (for example, an empty backup directory).
	ErrInvalidBackupConfigs = errors.New("invalid backup configuration")
	// ErrInvalidChunkSize indicates a non-positive chunk split threshold.
	ErrInvalidChunkSize = errors.New("invalid chunk size")
	// ErrInvalidRetention indicates a negative retention window.
	ErrInvalidRetention = errors.New("invalid retention window")
	// ErrInvalidRemoteConfigs indicates invalid remote push settings
	// (for example, zero attempts or a non-positive request timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidKeyringConfigs indicates missing credential-store
	// coordinates.
	ErrInvalidKeyringConfigs = errors.New("invalid keyring configuration")
)
