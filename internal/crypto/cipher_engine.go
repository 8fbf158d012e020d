// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
)

// Encrypted payload layout (format version 1):
//
//	salt (16 bytes) ‖ nonce (12 bytes) ‖ ciphertext ‖ tag (16 bytes)
//
// The salt is generated fresh per artifact and the key re-derived from the
// passphrase each time, so no derived key is ever persisted or synchronized.
const (
	// FormatVersion identifies the payload layout and the Argon2id cost
	// set bound to it. Changing the cost parameters requires a new format
	// version with a reader kept for this one.
	FormatVersion = 1

	// SaltSize is the length of the per-artifact key-derivation salt.
	SaltSize = 16
	// NonceSize is the AES-GCM nonce length.
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16
	// KeySize is the derived symmetric key length (AES-256).
	KeySize = 32
)

// cipherEngine is the private implementation of [CipherEngine].
type cipherEngine struct {
	// Argon2id tuning parameters. Fixed per payload format version so
	// that artifacts written under older defaults stay decryptable.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewCipherEngine constructs a [CipherEngine] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewCipherEngine() CipherEngine {
	return &cipherEngine{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  KeySize,
	}
}

// GenerateSalt implements [CipherEngine]. It reads 16 random bytes from the
// OS CSPRNG and returns them as the key-derivation salt. Returns an error if
// the random read fails.
func (e *cipherEngine) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey implements [CipherEngine]. It derives a 256-bit symmetric key
// from passphrase and salt using Argon2id with the parameters stored in the
// receiver. Deterministic: the same passphrase and salt always yield the
// same key.
func (e *cipherEngine) DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		e.argonTime,
		e.argonMemory,
		e.argonThreads,
		e.argonKeyLen,
	)
}

// Encrypt implements [CipherEngine]. It generates a fresh random salt,
// derives the key, and seals plaintext with AES-256-GCM under a fresh random
// nonce. The salt and nonce are prepended so that Decrypt can locate them:
// payload = salt ‖ nonce ‖ ciphertext ‖ tag. Returns an error if cipher
// creation or a random read fails.
func (e *cipherEngine) Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	salt, err := e.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := e.DeriveKey(passphrase, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	payload := make([]byte, 0, SaltSize+NonceSize+len(plaintext)+TagSize)
	payload = append(payload, salt...)
	payload = append(payload, nonce...)

	// Seal appends ciphertext ‖ tag to the salt ‖ nonce prefix.
	return gcm.Seal(payload, nonce, plaintext, nil), nil
}

// Decrypt implements [CipherEngine]. It splits payload into salt, nonce, and
// ciphertext, re-derives the key, and opens the ciphertext with AES-256-GCM.
//
// Fails closed: any authentication-tag mismatch (wrong passphrase,
// corrupted or tampered data) returns the single generic
// [ErrDecryptionFailed], never partial plaintext and never a reason that
// would distinguish the cause.
func (e *cipherEngine) Decrypt(payload []byte, passphrase string) ([]byte, error) {
	if len(payload) < SaltSize+NonceSize+TagSize {
		return nil, ErrPayloadTooShort
	}

	salt := payload[:SaltSize]
	nonce := payload[SaltSize : SaltSize+NonceSize]
	ciphertext := payload[SaltSize+NonceSize:]

	key := e.DeriveKey(passphrase, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// EncryptFile implements [CipherEngine]. It encrypts the file at plainPath
// and writes the sealed payload to encPath with owner-only permissions.
// Returns the size of the written payload in bytes.
func (e *cipherEngine) EncryptFile(plainPath, encPath, passphrase string) (int64, error) {
	plaintext, err := os.ReadFile(plainPath)
	if err != nil {
		return 0, fmt.Errorf("read file %s: %w", plainPath, err)
	}

	payload, err := e.Encrypt(plaintext, passphrase)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(encPath, payload, 0o600); err != nil {
		return 0, fmt.Errorf("write encrypted file %s: %w", encPath, err)
	}

	return int64(len(payload)), nil
}

// DecryptFile implements [CipherEngine]. It decrypts the payload at encPath
// and writes the plaintext to plainPath with owner-only permissions.
func (e *cipherEngine) DecryptFile(encPath, plainPath, passphrase string) error {
	payload, err := os.ReadFile(encPath)
	if err != nil {
		return fmt.Errorf("read encrypted file %s: %w", encPath, err)
	}

	plaintext, err := e.Decrypt(payload, passphrase)
	if err != nil {
		return err
	}

	if err := os.WriteFile(plainPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("write decrypted file %s: %w", plainPath, err)
	}

	return nil
}
