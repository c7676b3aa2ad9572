package helpers

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncryptSecret tests AES-256-GCM encryption of TOTP secrets at rest.
func TestEncryptSecret(t *testing.T) {
	validKey := []byte("12345678901234567890123456789012") // 32 bytes

	t.Run("should encrypt and return base64 encoded string", func(t *testing.T) {
		plaintext := "JBSWY3DPEHPK3PXP"

		result, err := EncryptSecret(plaintext, validKey)

		require.NoError(t, err)
		assert.NotEmpty(t, result)

		decoded, err := base64.StdEncoding.DecodeString(result)
		require.NoError(t, err)
		assert.Greater(t, len(decoded), len(plaintext), "ciphertext should be longer due to nonce and auth tag")
	})

	t.Run("should produce different ciphertext for same plaintext", func(t *testing.T) {
		plaintext := "JBSWY3DPEHPK3PXP"

		encrypted1, err1 := EncryptSecret(plaintext, validKey)
		encrypted2, err2 := EncryptSecret(plaintext, validKey)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, encrypted1, encrypted2, "different random nonces should produce different ciphertexts")
	})

	t.Run("should reject key size not equal to 32 bytes", func(t *testing.T) {
		_, err := EncryptSecret("test", []byte("short-key"))

		assert.Error(t, err)
		assert.Equal(t, "encryption key must be 32 bytes for AES-256", err.Error())
	})
}

// TestDecryptSecret tests AES-256-GCM decryption.
func TestDecryptSecret(t *testing.T) {
	validKey := []byte("12345678901234567890123456789012") // 32 bytes

	t.Run("should decrypt valid ciphertext", func(t *testing.T) {
		original := "JBSWY3DPEHPK3PXP"

		encrypted, err := EncryptSecret(original, validKey)
		require.NoError(t, err)

		decrypted, err := DecryptSecret(encrypted, validKey)

		require.NoError(t, err)
		assert.Equal(t, original, decrypted)
	})

	t.Run("should reject key size not equal to 32 bytes", func(t *testing.T) {
		_, err := DecryptSecret("some-base64-value", []byte("too-short"))

		assert.Error(t, err)
		assert.Equal(t, "encryption key must be 32 bytes for AES-256", err.Error())
	})

	t.Run("should reject invalid base64 input", func(t *testing.T) {
		_, err := DecryptSecret("not-valid-base64!!!", validKey)

		assert.Error(t, err)
	})

	t.Run("should reject ciphertext too short", func(t *testing.T) {
		// GCM nonce is 12 bytes, anything shorter cannot be valid
		shortCiphertext := base64.StdEncoding.EncodeToString([]byte("short"))

		_, err := DecryptSecret(shortCiphertext, validKey)

		assert.Error(t, err)
		assert.Equal(t, "ciphertext too short", err.Error())
	})

	t.Run("should fail with wrong key", func(t *testing.T) {
		encrypted, err := EncryptSecret("secret-value", validKey)
		require.NoError(t, err)

		wrongKey := []byte("abcdefghijklmnopqrstuvwxyz123456")
		_, err = DecryptSecret(encrypted, wrongKey)

		assert.Error(t, err, "decryption with wrong key should fail")
	})

	t.Run("should fail with tampered ciphertext", func(t *testing.T) {
		encrypted, err := EncryptSecret("secret-value", validKey)
		require.NoError(t, err)

		decoded, _ := base64.StdEncoding.DecodeString(encrypted)
		decoded[len(decoded)-1] ^= 0xFF
		tampered := base64.StdEncoding.EncodeToString(decoded)

		_, err = DecryptSecret(tampered, validKey)

		assert.Error(t, err, "tampered ciphertext should fail authentication")
	})
}
