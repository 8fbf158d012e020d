package archive

import "errors"

var (
	// ErrSourceNotFound indicates the source directory does not exist.
	ErrSourceNotFound = errors.New("source directory not found")
	// ErrSourceUnreadable indicates the source directory exists but
	// cannot be read.
	ErrSourceUnreadable = errors.New("source directory unreadable")
	// ErrInsecurePath indicates an archive entry that would extract
	// outside the destination directory.
	ErrInsecurePath = errors.New("insecure path in archive")
)
