package archive

import "io"

// Archiver packages a directory tree into a single ordered byte stream and
// restores it. It is independent of encryption: the stream it produces is
// plaintext and is sealed by the cipher engine afterwards.
type Archiver interface {
	// Archive writes a deterministic tar.gz stream of sourceDir to w.
	Archive(sourceDir string, w io.Writer) error

	// Extract recreates an archived tree from r under destDir.
	Extract(r io.Reader, destDir string) error
}
