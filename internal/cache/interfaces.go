package cache

// ICache covers the counters the step-up flow needs: failed-attempt limiting
// and TOTP replay protection. Rate limiting is server-side only; the client
// imposes no bound on retries.
type ICache interface {
	GetTOTPAttempts(userID string) (int, error)
	IncrementTOTPAttempts(userID string) error
	ResetTOTPAttempts(userID string) error

	IsTOTPCodeUsed(userID string, code string) (bool, error)
	// MarkTOTPCodeUsed returns false when the code was already marked, making
	// check-and-mark atomic for replay protection.
	MarkTOTPCodeUsed(userID string, code string) (bool, error)

	Close()
}
