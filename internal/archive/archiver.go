// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// tarGzArchiver is the default implementation of [Archiver]. It packages a
// directory tree into a gzip-compressed tar stream and back.
//
// The tar content is deterministic: entries are written in lexicographic
// path order (filepath.WalkDir guarantees it) and volatile header fields
// (access/change times) are cleared, so re-archiving an unchanged tree
// yields byte-for-byte identical pre-compression content.
type tarGzArchiver struct{}

// NewArchiver constructs the tar.gz [Archiver].
func NewArchiver() Archiver {
	return &tarGzArchiver{}
}

// Archive implements [Archiver]. It walks sourceDir and writes a tar.gz
// stream of its contents to w, preserving relative paths, permissions, and
// symlinks. Fails before writing anything if sourceDir does not exist
// (ErrSourceNotFound) or cannot be read (ErrSourceUnreadable).
func (a *tarGzArchiver) Archive(sourceDir string, w io.Writer) error {
	info, err := os.Stat(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
		}
		return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, sourceDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrSourceNotFound, sourceDir)
	}
	if _, err := os.ReadDir(sourceDir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, sourceDir, err)
	}

	gzw := gzip.NewWriter(w)
	tw := tar.NewWriter(gzw)

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
		}

		var linkTarget string
		if fi.Mode()&fs.ModeSymlink != 0 {
			if linkTarget, err = os.Readlink(path); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
			}
		}

		hdr, err := tar.FileInfoHeader(fi, linkTarget)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if fi.IsDir() {
			hdr.Name += "/"
		}

		// Clear volatile fields so identical input trees produce
		// identical tar bytes.
		hdr.ModTime = fi.ModTime().Truncate(time.Second)
		hdr.AccessTime = time.Time{}
		hdr.ChangeTime = time.Time{}
		hdr.Format = tar.FormatPAX

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		if fi.Mode().IsRegular() {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
			}
			_, err = io.Copy(tw, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("archive %s: %w", path, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalize tar: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize gzip: %w", err)
	}

	return nil
}

// Extract implements [Archiver]. It reads the tar.gz stream from r and
// recreates the archived tree under destDir. Entry paths are validated to
// stay inside destDir; a path escaping it fails with ErrInsecurePath.
func (a *tarGzArchiver) Extract(r io.Reader, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}

	gzr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar stream: %w", err)
		}

		target, err := secureJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, fs.FileMode(hdr.Mode)); err != nil {
				return fmt.Errorf("create dir %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fs.FileMode(hdr.Mode))
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}
			_, err = io.Copy(f, tr)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("extract %s: %w", target, err)
			}

		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("restore symlink %s: %w", target, err)
			}

		default:
			// Other entry types (devices, fifos) are not produced by
			// Archive and are skipped on extraction.
		}
	}
}

// secureJoin joins name onto destDir and rejects entries that would resolve
// outside of it.
func secureJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if target != destDir && !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrInsecurePath, name)
	}
	return target, nil
}
