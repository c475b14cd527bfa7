package diarysdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes the service returns in ErrorResponse.Error.
const (
	ErrorCodeInvalidInput       = "invalid_input"
	ErrorCodeConflict           = "conflict"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeAlreadyVerified    = "already_verified"
	ErrorCodeCodeExpired        = "code_expired"
	ErrorCodeCodeMismatch       = "code_mismatch"
	ErrorCodeAlreadyFollowing   = "already_following"
	ErrorCodeNotFollowing       = "not_following"
	ErrorCodeSelfFollow         = "self_follow"
	ErrorCodeAlreadyMember      = "already_member"
	ErrorCodeNotMember          = "not_member"
	ErrorCodeCreatorCannotLeave = "creator_cannot_leave"
	ErrorCodeUnavailable        = "unavailable"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// VerificationRequiredError is returned by Login for an unverified account.
// A new code has been sent to Email.
type VerificationRequiredError struct {
	Email string
}

func (e *VerificationRequiredError) Error() string {
	return "verification required: a code was sent to " + e.Email
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: http.StatusText(resp.StatusCode),
	}
}
