package apierrors

// HTTP 401 Unauthorized.
const (
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrInvalidTOTP        = "INVALID_TOTP"
)

// HTTP 409 Conflict.
const (
	ErrEmailAlreadyRegistered = "EMAIL_ALREADY_REGISTERED"
)

// HTTP 417 Expectation Failed. Paired with status 417 this code is the only
// signal that escalates a primary login to the TOTP challenge.
const (
	ErrTOTPRequired = "TOTP_REQUIRED"
)

// HTTP 429 Too Many Requests.
const (
	ErrTOTPRateLimited = "TOTP_RATE_LIMITED"
)
