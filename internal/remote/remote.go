// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-backup-vault/internal/config"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
)

// multiPusher fans one file out to several pushers. Every pusher is attempted
// even when an earlier one fails; errors are joined.
type multiPusher struct {
	pushers []Pusher
}

// PushFile implements [Pusher].
func (m *multiPusher) PushFile(ctx context.Context, localPath string) error {
	var errs []error
	for _, p := range m.pushers {
		if err := p.PushFile(ctx, localPath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewFromConfig assembles the configured pushers. Returns nil when neither a
// base URL nor a mirror directory is set; callers treat a nil [Pusher] as
// "keep artifacts local only".
func NewFromConfig(cfg config.Remote, log *logger.Logger) Pusher {
	var pushers []Pusher
	if cfg.BaseURL != "" {
		pushers = append(pushers, NewHTTPPusher(cfg, log))
	}
	if cfg.MirrorDir != "" {
		pushers = append(pushers, NewDirPusher(cfg.MirrorDir, log))
	}

	switch len(pushers) {
	case 0:
		return nil
	case 1:
		return pushers[0]
	default:
		return &multiPusher{pushers: pushers}
	}
}
