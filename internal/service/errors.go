package service

import "errors"

var (
	ErrSourceUnavailable = errors.New("source directory unavailable")
	ErrCredentialMissing = errors.New("encryption passphrase missing, run init first")
	ErrEmptyPassphrase   = errors.New("empty passphrase provided")
)
