package brokersdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Stable error codes.
const (
	ErrorCodeNotFound             = "not_found"
	ErrorCodeAlreadyUsed          = "already_used"
	ErrorCodeNoCapacity           = "no_capacity"
	ErrorCodeAccountMisconfigured = "account_misconfigured"
	ErrorCodeAccountInUse         = "account_in_use"
	ErrorCodeUpstreamAuth         = "upstream_auth"
	ErrorCodeUpstreamUnavailable  = "upstream_unavailable"
	ErrorCodeUpstreamRejected     = "upstream_rejected"
	ErrorCodeValidation           = "validation"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeOTPRequired          = "otp_required"
	ErrorCodeUnauthorized         = "unauthorized"
	ErrorCodeTimeout              = "timeout"
	ErrorCodeRateLimited          = "rate_limit_exceeded"
	ErrorCodeInternal             = "internal"
)

// APIError is a failed API call.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// parseErrorResponse returns nil for 2xx responses.
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
		Code:        ErrorCodeInternal,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
