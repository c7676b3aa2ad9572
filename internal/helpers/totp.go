package helpers

import (
	"fmt"

	"github.com/riskgate/riskgate/internal/configuration"

	"github.com/pquerna/otp/totp"
)

// GenerateTOTPSecret creates a fresh base32 TOTP secret. The account label is
// not bound here; clients derive the provisioning URI from the secret and the
// enrolling email.
func GenerateTOTPSecret() (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      configuration.AppName,
		AccountName: configuration.AppName,
		SecretSize:  configuration.TOTPSecretSize,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// BuildProvisioningURI renders the standard otpauth URI for an issuer, account
// email and secret. Authenticator apps parse this format as-is, so the shape
// must stay exactly `otpauth://totp/<issuer>:<email>?secret=<secret>&issuer=<issuer>`.
func BuildProvisioningURI(issuer string, email string, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s", issuer, email, secret, issuer)
}

// ValidateTOTPCode validates a 6-digit TOTP code against the given secret.
func ValidateTOTPCode(secret string, code string) bool {
	return totp.Validate(code, secret)
}
