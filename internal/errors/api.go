package apierrors

import "fmt"

// APIError carries an HTTP status and a machine-readable code to the
// response boundary. Handlers convert any other error into a generic 500.
type APIError struct {
	Status int
	Code   string
}

func (e APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Code)
}

func NewAPIError(status int, code string) APIError {
	return APIError{Status: status, Code: code}
}

var (
	ErrGenerateAccessTokenFailed = NewAPIError(500, "GENERATE_ACCESS_TOKEN_FAILED")
	ErrSecretGenerationFailed    = NewAPIError(500, "SECRET_GENERATION_FAILED")
)
