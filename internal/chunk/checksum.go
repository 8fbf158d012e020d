// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package chunk

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// readerChecksum streams r through SHA-256 in bounded windows and returns
// the hex digest together with the number of bytes read.
func readerChecksum(r io.Reader) (string, int64, error) {
	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return "", 0, fmt.Errorf("hash stream: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
