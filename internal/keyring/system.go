// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keyring provides the credential-store capability backing the
// backup pipeline's passphrase handling.
//
// The default implementation delegates to the operating system's credential
// store (macOS Keychain, Secret Service on Linux, Credential Manager on
// Windows) through the go-keyring library, addressed by a service/account
// pair from configuration. Tests substitute [NewMemoryStore].
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/MKhiriev/go-backup-vault/internal/config"
)

// systemStore is the OS-credential-store implementation of
// [CredentialStore].
type systemStore struct {
	service string
	account string
}

// NewSystemStore constructs a [CredentialStore] bound to the service and
// account names in cfg.
func NewSystemStore(cfg config.Keyring) CredentialStore {
	return &systemStore{service: cfg.Service, account: cfg.Account}
}

// GetPassphrase implements [CredentialStore].
func (s *systemStore) GetPassphrase() (string, error) {
	passphrase, err := gokeyring.Get(s.service, s.account)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrPassphraseNotSet
		}
		return "", fmt.Errorf("read system keyring: %w", err)
	}
	return passphrase, nil
}

// SetPassphrase implements [CredentialStore].
func (s *systemStore) SetPassphrase(passphrase string) error {
	if err := gokeyring.Set(s.service, s.account, passphrase); err != nil {
		return fmt.Errorf("write system keyring: %w", err)
	}
	return nil
}

// DeletePassphrase implements [CredentialStore].
func (s *systemStore) DeletePassphrase() error {
	if err := gokeyring.Delete(s.service, s.account); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return ErrPassphraseNotSet
		}
		return fmt.Errorf("delete from system keyring: %w", err)
	}
	return nil
}
