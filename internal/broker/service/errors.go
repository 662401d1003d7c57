package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/upstream"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyUsed          = errors.New("invite code already used")
	ErrNoCapacity           = errors.New("no team account has a free seat")
	ErrAccountMisconfigured = errors.New("team account misconfigured")
	ErrAccountInUse         = errors.New("team account is referenced by invite codes")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrOTPRequired          = errors.New("one-time code required")

	ErrNoCredentialConfigured = fmt.Errorf("%w: no credential configured", ErrAccountMisconfigured)

	// ErrReservationExpired means a redemption outlived its code reservation.
	ErrReservationExpired = fmt.Errorf("invite code reservation expired: %w", context.DeadlineExceeded)

	// Upstream failures keep their identity so callers can match either name.
	ErrUpstreamAuth        = upstream.ErrAuthRejected
	ErrUpstreamUnavailable = upstream.ErrUnavailable
	ErrUpstreamRejected    = upstream.ErrRejected
)

// Stable error kinds surfaced to clients.
const (
	KindNotFound             = "not_found"
	KindAlreadyUsed          = "already_used"
	KindNoCapacity           = "no_capacity"
	KindAccountMisconfigured = "account_misconfigured"
	KindAccountInUse         = "account_in_use"
	KindUpstreamAuth         = "upstream_auth"
	KindUpstreamUnavailable  = "upstream_unavailable"
	KindUpstreamRejected     = "upstream_rejected"
	KindValidation           = "validation"
	KindInvalidCredentials   = "invalid_credentials"
	KindOTPRequired          = "otp_required"
	KindTimeout              = "timeout"
	KindInternal             = "internal"
)

// ErrorKind maps an error to its stable kind.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyUsed):
		return KindAlreadyUsed
	case errors.Is(err, ErrNoCapacity):
		return KindNoCapacity
	case errors.Is(err, ErrAccountMisconfigured), errors.Is(err, upstream.ErrNoTeamAccount):
		return KindAccountMisconfigured
	case errors.Is(err, ErrAccountInUse):
		return KindAccountInUse
	case errors.Is(err, ErrUpstreamAuth):
		return KindUpstreamAuth
	case errors.Is(err, ErrUpstreamUnavailable):
		return KindUpstreamUnavailable
	case errors.Is(err, ErrUpstreamRejected):
		return KindUpstreamRejected
	case errors.Is(err, ErrValidation), errors.Is(err, domain.ErrUnknownCredentialKind):
		return KindValidation
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrOTPRequired):
		return KindOTPRequired
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return KindTimeout
	default:
		return KindInternal
	}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
