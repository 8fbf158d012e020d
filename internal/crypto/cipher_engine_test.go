package crypto

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	eng := NewCipherEngine()

	s1, err := eng.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := eng.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != SaltSize {
		t.Fatalf("salt length = %d, want %d", len(s1), SaltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	eng := NewCipherEngine()

	passphrase := "correct horse battery staple"
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1 := eng.DeriveKey(passphrase, salt)
	k2 := eng.DeriveKey(passphrase, salt)

	if len(k1) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to match for same passphrase+salt")
	}
}

func TestDeriveKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	eng := NewCipherEngine()

	passphrase := "same passphrase"
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	if bytes.Equal(eng.DeriveKey(passphrase, salt1), eng.DeriveKey(passphrase, salt2)) {
		t.Fatalf("expected different keys for different salts")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	eng := NewCipherEngine()

	plaintext := []byte("backup payload round-trip")
	passphrase := "test-passphrase-123"

	payload, err := eng.Encrypt(plaintext, passphrase)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if want := SaltSize + NonceSize + len(plaintext) + TagSize; len(payload) != want {
		t.Fatalf("payload length = %d, want %d", len(payload), want)
	}

	decrypted, err := eng.Decrypt(payload, passphrase)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(plaintext, decrypted) {
		t.Fatalf("round-trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestEncrypt_FreshSaltAndNoncePerCall(t *testing.T) {
	eng := NewCipherEngine()

	plaintext := []byte("identical input")
	passphrase := "pass"

	p1, err := eng.Encrypt(plaintext, passphrase)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	p2, err := eng.Encrypt(plaintext, passphrase)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if bytes.Equal(p1[:SaltSize], p2[:SaltSize]) {
		t.Fatalf("expected per-operation salts to differ")
	}
	if bytes.Equal(p1[SaltSize:SaltSize+NonceSize], p2[SaltSize:SaltSize+NonceSize]) {
		t.Fatalf("expected per-operation nonces to differ")
	}
}

func TestDecrypt_WrongPassphraseFails(t *testing.T) {
	eng := NewCipherEngine()

	payload, err := eng.Encrypt([]byte("secret data"), "correct-password")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	_, err = eng.Decrypt(payload, "wrong-password")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

// Flipping any single bit (in the salt, the nonce, the ciphertext, or the
// tag) must surface as the generic authentication error, never as altered
// plaintext.
func TestDecrypt_AnyBitFlipFails(t *testing.T) {
	eng := NewCipherEngine()

	passphrase := "tamper-check"
	payload, err := eng.Encrypt([]byte("authenticated content"), passphrase)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	offsets := map[string]int{
		"salt":       3,
		"nonce":      SaltSize + 5,
		"ciphertext": SaltSize + NonceSize + 2,
		"tag":        len(payload) - 4,
	}

	for region, off := range offsets {
		tampered := bytes.Clone(payload)
		tampered[off] ^= 0x01

		if _, err := eng.Decrypt(tampered, passphrase); !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("bit flip in %s: expected ErrDecryptionFailed, got %v", region, err)
		}
	}
}

func TestDecrypt_TooShortPayload(t *testing.T) {
	eng := NewCipherEngine()

	_, err := eng.Decrypt(make([]byte, SaltSize+NonceSize+TagSize-1), "pass")
	if !errors.Is(err, ErrPayloadTooShort) {
		t.Fatalf("expected ErrPayloadTooShort, got %v", err)
	}
}

func TestEncryptDecryptFile_RoundTrip(t *testing.T) {
	eng := NewCipherEngine()
	dir := t.TempDir()

	plainPath := filepath.Join(dir, "archive.tar.gz")
	encPath := filepath.Join(dir, "archive.enc")
	restoredPath := filepath.Join(dir, "restored.tar.gz")

	content := bytes.Repeat([]byte("file payload "), 1024)
	if err := os.WriteFile(plainPath, content, 0o600); err != nil {
		t.Fatalf("write plain file: %v", err)
	}

	size, err := eng.EncryptFile(plainPath, encPath, "file-pass")
	if err != nil {
		t.Fatalf("EncryptFile error: %v", err)
	}
	if want := int64(SaltSize + NonceSize + len(content) + TagSize); size != want {
		t.Fatalf("payload size = %d, want %d", size, want)
	}

	if err := eng.DecryptFile(encPath, restoredPath, "file-pass"); err != nil {
		t.Fatalf("DecryptFile error: %v", err)
	}

	restored, err := os.ReadFile(restoredPath)
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if !bytes.Equal(content, restored) {
		t.Fatalf("file round-trip mismatch")
	}
}
