package crypto

import "errors"

var (
	// ErrPayloadTooShort indicates the payload cannot even hold the
	// salt, nonce, and tag. The lengths are public, so reporting this
	// separately leaks nothing.
	ErrPayloadTooShort = errors.New("encrypted payload too short")

	// ErrDecryptionFailed is the single generic authentication error.
	// It deliberately does not distinguish a wrong passphrase from
	// corrupted or tampered data.
	ErrDecryptionFailed = errors.New("decryption failed")
)
