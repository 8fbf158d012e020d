// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package remote pushes finished artifact files to off-machine storage.
//
// Two implementations are provided: an HTTP pusher that uploads each file
// with a PUT request against a configured base URL, and a mirror pusher that
// copies files into a local directory (typically a synced cloud-drive
// folder). When both are configured, every file is pushed through both.
//
// Push failures never fail a backup run: the pipeline's correctness boundary
// is local persistence, and the caller is expected to log push errors and
// carry on.
package remote

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/pusher_mock.go -package=mock

// Pusher uploads one local artifact file to remote storage.
type Pusher interface {
	// PushFile uploads the file at localPath under its base name.
	// Re-pushing the same name overwrites the remote copy.
	PushFile(ctx context.Context, localPath string) error
}
