// Package crypto implements the at-rest encryption layer for note
// content: a PBKDF2 key derivation step and an AES-256-GCM cipher
// wrapped together in a KeyBox. The derived key is computed once at
// construction and reused for the lifetime of the process, because
// the KDF is deliberately slow.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// kdfIterations is the PBKDF2 iteration count. High on purpose;
	// the result is cached so it is paid once per process.
	kdfIterations = 390000
	keyLen        = 32
)

// ErrNoKeyMaterial is returned by New when the secret or salt is
// empty. Both must come from configuration; there is no default.
var ErrNoKeyMaterial = errors.New("crypto: secret and salt are required")

// ErrInvalidCiphertext is returned by Decrypt for any input that
// cannot be authenticated and decrypted: truncated blobs, bad
// encoding, or content tampered with after encryption. Callers get
// this one sentinel regardless of the underlying cause.
var ErrInvalidCiphertext = errors.New("crypto: invalid ciphertext")

// DeriveKey stretches secret+salt into a 32-byte AES key using
// PBKDF2-HMAC-SHA256. Same inputs always produce the same key.
func DeriveKey(secret, salt []byte) []byte {
	return pbkdf2.Key(secret, salt, kdfIterations, keyLen, sha256.New)
}

// KeyBox performs authenticated encryption of note content with a
// key derived once from the configured secret and salt. Safe for
// concurrent use; the AEAD is read-only after construction.
type KeyBox struct {
	aead cipher.AEAD
}

// New derives the encryption key and prepares the AES-GCM cipher.
// Empty secret or salt is a configuration error.
func New(secret, salt []byte) (*KeyBox, error) {
	if len(secret) == 0 || len(salt) == 0 {
		return nil, ErrNoKeyMaterial
	}
	block, err := aes.NewCipher(DeriveKey(secret, salt))
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &KeyBox{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext), suitable for a text column. Two calls
// with the same plaintext produce different outputs.
func (b *KeyBox) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := b.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any malformed or tampered input yields
// ErrInvalidCiphertext; the underlying error is never exposed.
func (b *KeyBox) Decrypt(encoded string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	ns := b.aead.NonceSize()
	if len(raw) < ns {
		return "", ErrInvalidCiphertext
	}
	plaintext, err := b.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
