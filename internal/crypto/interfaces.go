package crypto

// CipherEngine performs all content cryptography for the backup pipeline.
// It knows nothing about archives, chunking, or storage; its only job is to
// derive keys from a passphrase and seal or open byte payloads.
//
// Payload layout (format version 1):
//
//	salt (16 B) ‖ nonce (12 B) ‖ ciphertext ‖ tag (16 B)
type CipherEngine interface {
	// GenerateSalt returns a fresh random 16-byte key-derivation salt.
	// The salt is not secret; it is stored in the payload header.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives a 256-bit key from passphrase and salt via
	// Argon2id. Deterministic for the same passphrase and salt.
	DeriveKey(passphrase string, salt []byte) []byte

	// Encrypt seals plaintext with AES-256-GCM under a key derived from
	// passphrase and a fresh random salt. A fresh random nonce is used
	// per call; nonce reuse under one key never occurs because the salt
	// (and therefore the key) is also fresh per call.
	Encrypt(plaintext []byte, passphrase string) ([]byte, error)

	// Decrypt opens a payload produced by Encrypt. Any authentication
	// failure returns the generic ErrDecryptionFailed, never partial
	// plaintext.
	Decrypt(payload []byte, passphrase string) ([]byte, error)

	// EncryptFile seals the file at plainPath into encPath and returns
	// the payload size in bytes.
	EncryptFile(plainPath, encPath, passphrase string) (int64, error)

	// DecryptFile opens the payload at encPath into plainPath.
	DecryptFile(encPath, plainPath, passphrase string) error
}
