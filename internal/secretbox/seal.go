// Package secretbox encrypts secret values for the GitHub secrets API,
// which only accepts libsodium sealed-box ciphertext.
package secretbox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

// Encrypt seals plaintext with the repository's base64-encoded public
// key and returns base64 ciphertext ready for the secrets endpoint.
func Encrypt(publicKeyBase64, plaintext string) (string, error) {
	keyBytes, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode public key: %w", err)
	}
	if len(keyBytes) != 32 {
		return "", fmt.Errorf("public key must be 32 bytes, got %d", len(keyBytes))
	}

	var key [32]byte
	copy(key[:], keyBytes)

	sealed, err := box.SealAnonymous(nil, []byte(plaintext), &key, rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to seal secret: %w", err)
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}
