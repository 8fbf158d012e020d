package keyring

// CredentialStore is the capability through which the pipeline obtains the
// encryption passphrase. The passphrase is supplied fresh on every
// invocation and is never persisted by the core; only implementations of
// this interface touch durable credential storage.
type CredentialStore interface {
	// GetPassphrase returns the stored passphrase, or ErrPassphraseNotSet
	// when none has been initialized.
	GetPassphrase() (string, error)

	// SetPassphrase stores or replaces the passphrase.
	SetPassphrase(passphrase string) error

	// DeletePassphrase removes the stored passphrase. Deleting an unset
	// passphrase returns ErrPassphraseNotSet.
	DeletePassphrase() error
}
