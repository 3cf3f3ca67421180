package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyHex(t *testing.T) {
	s, err := NewKeyHex(KeySize)
	require.NoError(t, err)
	assert.Len(t, s, KeySize*2)

	_, err = hex.DecodeString(s)
	require.NoError(t, err, "key must be valid hex")

	s2, err := NewKeyHex(KeySize)
	require.NoError(t, err)
	assert.NotEqual(t, s, s2, "two generated keys must differ")
}

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("correct horse battery staple")
	salt := []byte("0123456789abcdef")

	k1 := DeriveKey(secret, salt)
	k2 := DeriveKey(secret, salt)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, KeySize)

	k3 := DeriveKey(secret, []byte("another salt...."))
	assert.NotEqual(t, k1, k3, "different salt must give a different key")
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key, err := RandBytes(KeySize)
	require.NoError(t, err)

	plaintext := []byte(`{"db_encryption_key":"abc"}`)
	ciphertext, nonce, err := Seal(plaintext, key)
	require.NoError(t, err)
	assert.Len(t, nonce, NonceSize)
	assert.NotEqual(t, plaintext, ciphertext)

	back, err := Open(ciphertext, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, back)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key, err := RandBytes(KeySize)
	require.NoError(t, err)

	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	other, err := RandBytes(KeySize)
	require.NoError(t, err)

	_, err = Open(ciphertext, nonce, other)
	require.Error(t, err)
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	Wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	Wipe(nil)
}
