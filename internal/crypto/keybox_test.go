package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 32)
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	secret := []byte("secret-password")

	key1 := DeriveKey(secret, []byte("salt-1"))
	key2 := DeriveKey(secret, []byte("salt-2"))
	key3 := DeriveKey([]byte("other-password"), []byte("salt-1"))

	assert.NotEqual(t, key1, key2)
	assert.NotEqual(t, key1, key3)
}

func TestNew_RequiresKeyMaterial(t *testing.T) {
	tests := []struct {
		name   string
		secret []byte
		salt   []byte
	}{
		{"empty secret", nil, []byte("salt")},
		{"empty salt", []byte("secret"), nil},
		{"both empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := New(tt.secret, tt.salt)
			assert.Nil(t, box)
			assert.ErrorIs(t, err, ErrNoKeyMaterial)
		})
	}
}

func TestKeyBox_RoundTrip(t *testing.T) {
	box, err := New([]byte("super-secret"), []byte("the-salt"))
	require.NoError(t, err)

	for _, plaintext := range []string{"", "a", "some secret content", "unicode: привет ✓"} {
		enc, err := box.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, enc)

		dec, err := box.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, plaintext, dec)
	}
}

func TestKeyBox_EncryptNotDeterministic(t *testing.T) {
	box, err := New([]byte("super-secret"), []byte("the-salt"))
	require.NoError(t, err)

	enc1, err := box.Encrypt("same plaintext")
	require.NoError(t, err)
	enc2, err := box.Encrypt("same plaintext")
	require.NoError(t, err)

	// Fresh nonce per call: same plaintext, different ciphertext.
	assert.NotEqual(t, enc1, enc2)
}

func TestKeyBox_DecryptTamperedFails(t *testing.T) {
	box, err := New([]byte("super-secret"), []byte("the-salt"))
	require.NoError(t, err)

	enc, err := box.Encrypt("authentic content")
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(enc)
	require.NoError(t, err)

	// Flip one bit at a few positions: nonce, ciphertext body, auth tag.
	for _, pos := range []int{0, len(raw) / 2, len(raw) - 1} {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[pos] ^= 0x01

		_, err := box.Decrypt(base64.URLEncoding.EncodeToString(tampered))
		assert.ErrorIs(t, err, ErrInvalidCiphertext, "bit flip at %d must not decrypt", pos)
	}
}

func TestKeyBox_DecryptMalformed(t *testing.T) {
	box, err := New([]byte("super-secret"), []byte("the-salt"))
	require.NoError(t, err)

	for _, input := range []string{
		"",
		"not base64 !!!",
		base64.URLEncoding.EncodeToString([]byte("short")), // shorter than a nonce
	} {
		_, err := box.Decrypt(input)
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	}
}

func TestKeyBox_DifferentSaltCannotDecrypt(t *testing.T) {
	box1, err := New([]byte("super-secret"), []byte("salt-one"))
	require.NoError(t, err)
	box2, err := New([]byte("super-secret"), []byte("salt-two"))
	require.NoError(t, err)

	enc, err := box1.Encrypt("content")
	require.NoError(t, err)

	_, err = box2.Decrypt(enc)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}
