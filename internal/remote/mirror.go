// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-backup-vault/internal/logger"
)

// dirPusher copies artifact files into a local mirror directory, typically a
// folder watched by a cloud-drive sync client.
type dirPusher struct {
	dir string
	log *logger.Logger
}

// NewDirPusher constructs a [Pusher] that copies files into dir.
func NewDirPusher(dir string, log *logger.Logger) Pusher {
	return &dirPusher{dir: dir, log: log}
}

// PushFile implements [Pusher]. The copy is written to a temporary name and
// renamed into place so the sync client never observes a partial file.
func (d *dirPusher) PushFile(ctx context.Context, localPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}

	name := filepath.Base(localPath)
	dest := filepath.Join(d.dir, name)
	tmp := dest + ".partial"

	if err := copyFile(localPath, tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("mirror %s: %w", name, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("mirror %s: %w", name, err)
	}

	d.log.Debug().Str("file", name).Str("dir", d.dir).Msg("mirrored artifact file")
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
