// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-backup-vault/internal/config"
	"github.com/MKhiriev/go-backup-vault/internal/logger"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxAttempts = 5
	initialBackoff     = 500 * time.Millisecond
)

type httpPusher struct {
	client      *resty.Client
	log         *logger.Logger
	maxAttempts int
}

// NewHTTPPusher constructs a [Pusher] that uploads files with one PUT request
// per file to cfg.BaseURL.
func NewHTTPPusher(cfg config.Remote, log *logger.Logger) Pusher {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	return &httpPusher{client: cli, log: log, maxAttempts: attempts}
}

// PushFile implements [Pusher]. Transient failures (network errors, remote
// 5xx) are retried with exponential backoff up to the configured attempt
// budget; 4xx responses fail immediately.
func (h *httpPusher) PushFile(ctx context.Context, localPath string) error {
	name := filepath.Base(localPath)

	backoff := retry.WithMaxRetries(uint64(h.maxAttempts-1), retry.NewExponential(initialBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		pushErr := h.pushOnce(ctx, localPath, name)
		if errors.Is(pushErr, ErrRemoteUnavailable) {
			h.log.Warn().Err(pushErr).Str("file", name).Msg("transient push failure, will retry")
			return retry.RetryableError(pushErr)
		}
		return pushErr
	})
	if err != nil {
		return fmt.Errorf("push %s: %w", name, err)
	}
	return nil
}

func (h *httpPusher) pushOnce(ctx context.Context, localPath, name string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open artifact file: %w", err)
	}
	defer func() { _ = f.Close() }()

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(f).
		Put("/backups/" + url.PathEscape(name))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return mapHTTPError(resp)
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	if code >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrRemoteUnavailable, code, body)
	}
	return fmt.Errorf("%w: http %d: %s", ErrRemoteRejected, code, body)
}
