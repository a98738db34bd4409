package secretbox

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"
)

func TestEncryptRoundTrip(t *testing.T) {
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)

	publicKeyB64 := base64.StdEncoding.EncodeToString(publicKey[:])

	ciphertextB64, err := Encrypt(publicKeyB64, "hunter2")
	require.NoError(t, err)

	sealed, err := base64.StdEncoding.DecodeString(ciphertextB64)
	require.NoError(t, err)

	plaintext, ok := box.OpenAnonymous(nil, sealed, publicKey, privateKey)
	require.True(t, ok, "sealed box did not open with the matching private key")
	assert.Equal(t, "hunter2", string(plaintext))
}

func TestEncryptInvalidKey(t *testing.T) {
	tests := []struct {
		name      string
		publicKey string
	}{
		{name: "not base64", publicKey: "!!!not-base64!!!"},
		{name: "wrong length", publicKey: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "empty", publicKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encrypt(tt.publicKey, "value")
			assert.Error(t, err)
		})
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	publicKey, _, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)
	publicKeyB64 := base64.StdEncoding.EncodeToString(publicKey[:])

	a, err := Encrypt(publicKeyB64, "same value")
	require.NoError(t, err)
	b, err := Encrypt(publicKeyB64, "same value")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "sealed boxes must use fresh ephemeral keys")
}
