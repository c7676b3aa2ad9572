package configuration

const AppName = "riskgate"

const (
	// TokenExpiryMinutes is the default session token lifetime.
	TokenExpiryMinutes = 60
	// TOTPSecretSize is the size in bytes of generated TOTP secrets.
	TOTPSecretSize = 20
)

const (
	CacheTOTPAttemptsKey = "totp:attempts:%s"
	CacheTOTPUsedKey     = "totp:used:%s:%s"
)

const (
	// TOTPCodeTTL is the time-to-live for TOTP code replay protection (in seconds).
	TOTPCodeTTL = 90
	// TOTPMaxAttempts is the maximum number of failed step-up verification
	// attempts before lockout. Retries are otherwise unbounded client-side.
	TOTPMaxAttempts = 5
	// TOTPLockoutSeconds is the lockout duration after max failed attempts.
	TOTPLockoutSeconds = 900
)

var ArrayConfigFields = []string{
	"app.allowed_origins",
	"cache.redis.hosts",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
