package remote

import "errors"

var (
	// ErrRemoteUnavailable indicates a transient transport failure
	// (network error or remote 5xx). Safe to retry with backoff.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrRemoteRejected indicates the remote refused the file
	// (4xx response). Retrying the same request cannot succeed.
	ErrRemoteRejected = errors.New("remote rejected file")
)
