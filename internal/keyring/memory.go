package keyring

import "sync"

// memoryStore is an in-memory [CredentialStore] used in tests and in
// environments without an OS credential store.
type memoryStore struct {
	mu         sync.RWMutex
	passphrase string
	set        bool
}

// NewMemoryStore constructs an empty in-memory [CredentialStore].
func NewMemoryStore() CredentialStore {
	return &memoryStore{}
}

func (m *memoryStore) GetPassphrase() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return "", ErrPassphraseNotSet
	}
	return m.passphrase, nil
}

func (m *memoryStore) SetPassphrase(passphrase string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passphrase = passphrase
	m.set = true
	return nil
}

func (m *memoryStore) DeletePassphrase() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return ErrPassphraseNotSet
	}
	m.passphrase = ""
	m.set = false
	return nil
}
