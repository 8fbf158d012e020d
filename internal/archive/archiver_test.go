package archive

import (
	"archive/tar"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// buildTestTree creates a small directory tree with nested dirs, varied
// permissions, and a symlink.
func buildTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	mustWrite := func(rel string, content []byte, mode os.FileMode) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, content, mode); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	mustWrite("messages.db", []byte("sqlite content"), 0o644)
	mustWrite("media/photos/img1.jpg", bytes.Repeat([]byte{0xFF, 0xD8}, 512), 0o644)
	mustWrite("media/voice/note.opus", []byte("opus"), 0o600)
	mustWrite("settings/prefs.json", []byte(`{"theme":"dark"}`), 0o640)

	if err := os.Symlink("messages.db", filepath.Join(root, "latest.db")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	return root
}

// collectTree returns rel path -> content for regular files and rel path ->
// link target for symlinks.
func collectTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if rel == "." {
			return nil
		}
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			out[rel] = "symlink:" + target
		case info.Mode().IsRegular():
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out[rel] = string(content)
		default:
			out[rel] = "dir"
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func TestArchiveExtract_RoundTrip(t *testing.T) {
	arch := NewArchiver()
	src := buildTestTree(t)

	var buf bytes.Buffer
	if err := arch.Archive(src, &buf); err != nil {
		t.Fatalf("Archive error: %v", err)
	}

	dest := t.TempDir()
	if err := arch.Extract(bytes.NewReader(buf.Bytes()), dest); err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	want := collectTree(t, src)
	got := collectTree(t, dest)

	if len(got) != len(want) {
		t.Fatalf("restored tree has %d entries, want %d", len(got), len(want))
	}
	for rel, content := range want {
		if got[rel] != content {
			t.Fatalf("entry %s: got %q, want %q", rel, got[rel], content)
		}
	}
}

func TestArchive_PreservesPermissions(t *testing.T) {
	arch := NewArchiver()
	src := buildTestTree(t)

	var buf bytes.Buffer
	if err := arch.Archive(src, &buf); err != nil {
		t.Fatalf("Archive error: %v", err)
	}

	dest := t.TempDir()
	if err := arch.Extract(bytes.NewReader(buf.Bytes()), dest); err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dest, "media", "voice", "note.opus"))
	if err != nil {
		t.Fatalf("stat restored file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("restored permissions = %o, want 600", perm)
	}
}

// Re-archiving the same unchanged tree must produce identical bytes; the
// gzip layer here carries no timestamp and the tar layer clears volatile
// fields.
func TestArchive_Deterministic(t *testing.T) {
	arch := NewArchiver()
	src := buildTestTree(t)

	var first, second bytes.Buffer
	if err := arch.Archive(src, &first); err != nil {
		t.Fatalf("first Archive error: %v", err)
	}
	if err := arch.Archive(src, &second); err != nil {
		t.Fatalf("second Archive error: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("expected identical archives for identical input")
	}
}

func TestArchive_SourceNotFound(t *testing.T) {
	arch := NewArchiver()

	var buf bytes.Buffer
	err := arch.Archive(filepath.Join(t.TempDir(), "missing"), &buf)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output written on failed source check")
	}
}

func TestArchive_SourceIsFile(t *testing.T) {
	arch := NewArchiver()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var buf bytes.Buffer
	if err := arch.Archive(file, &buf); !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound for non-directory source, got %v", err)
	}
}

func TestExtract_RejectsEscapingPaths(t *testing.T) {
	// Hand-build a tar.gz with a path traversal entry.
	var buf bytes.Buffer
	func() {
		gzw := gzip.NewWriter(&buf)
		defer gzw.Close()
		tw := tar.NewWriter(gzw)
		defer tw.Close()

		content := []byte("evil")
		if err := tw.WriteHeader(&tar.Header{
			Name: "../escape.txt",
			Mode: 0o644,
			Size: int64(len(content)),
		}); err != nil {
			t.Fatalf("write header: %v", err)
		}
		if _, err := tw.Write(content); err != nil {
			t.Fatalf("write content: %v", err)
		}
	}()

	arch := NewArchiver()
	err := arch.Extract(bytes.NewReader(buf.Bytes()), t.TempDir())
	if !errors.Is(err, ErrInsecurePath) {
		t.Fatalf("expected ErrInsecurePath, got %v", err)
	}
}

func TestExtract_CorruptStream(t *testing.T) {
	arch := NewArchiver()

	err := arch.Extract(bytes.NewReader([]byte("not a gzip stream")), t.TempDir())
	if err == nil {
		t.Fatalf("expected error for corrupt stream")
	}
}
