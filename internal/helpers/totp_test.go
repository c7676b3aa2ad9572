package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateTOTPSecret tests TOTP secret generation.
func TestGenerateTOTPSecret(t *testing.T) {
	t.Run("should generate a non-empty secret", func(t *testing.T) {
		secret, err := GenerateTOTPSecret()

		require.NoError(t, err)
		assert.NotEmpty(t, secret)
	})

	t.Run("should generate base32 encoded secret", func(t *testing.T) {
		secret, err := GenerateTOTPSecret()

		require.NoError(t, err)
		for _, char := range secret {
			assert.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567=", string(char),
				"secret should only contain base32 characters")
		}
	})

	t.Run("should generate unique secrets", func(t *testing.T) {
		secret1, err1 := GenerateTOTPSecret()
		secret2, err2 := GenerateTOTPSecret()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, secret1, secret2)
	})
}

// TestBuildProvisioningURI pins the exact otpauth URI shape authenticator apps
// expect.
func TestBuildProvisioningURI(t *testing.T) {
	t.Run("should render the exact URI", func(t *testing.T) {
		uri := BuildProvisioningURI("Example", "alice@example.com", "ABC123")

		assert.Equal(t,
			"otpauth://totp/Example:alice@example.com?secret=ABC123&issuer=Example",
			uri)
	})

	t.Run("should start with otpauth protocol", func(t *testing.T) {
		uri := BuildProvisioningURI("Example", "test@example.com", "SECRET")

		assert.True(t, strings.HasPrefix(uri, "otpauth://totp/"))
	})
}

// TestValidateTOTPCode tests code validation round trips.
func TestValidateTOTPCode(t *testing.T) {
	t.Run("should accept a freshly generated code", func(t *testing.T) {
		secret, err := GenerateTOTPSecret()
		require.NoError(t, err)

		code, err := totp.GenerateCode(secret, time.Now())
		require.NoError(t, err)

		assert.True(t, ValidateTOTPCode(secret, code))
	})

	t.Run("should reject a wrong code", func(t *testing.T) {
		secret, err := GenerateTOTPSecret()
		require.NoError(t, err)

		assert.False(t, ValidateTOTPCode(secret, "000000"))
	})

	t.Run("should reject a code for another secret", func(t *testing.T) {
		secret1, err := GenerateTOTPSecret()
		require.NoError(t, err)
		secret2, err := GenerateTOTPSecret()
		require.NoError(t, err)

		code, err := totp.GenerateCode(secret1, time.Now())
		require.NoError(t, err)

		assert.False(t, ValidateTOTPCode(secret2, code))
	})
}
