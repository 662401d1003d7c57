package upstream

import (
	"strings"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Classification is a best-effort guess at what kind of token was pasted.
// It is an admin convenience; the stored kind is always explicit.
type Classification struct {
	Kind      domain.CredentialKind
	ExpiresAt *time.Time
}

// Classify guesses a token's kind from its shape: an "rt_" prefix is a
// refresh token, a decodable JWT is a bearer, anything else is treated as a
// session cookie. The JWT signature is not verified.
func Classify(token string) Classification {
	token = StripBearer(token)
	if token == "" {
		return Classification{Kind: domain.CredentialNone}
	}
	if strings.HasPrefix(token, "rt_") {
		return Classification{Kind: domain.CredentialRefresh}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		out := Classification{Kind: domain.CredentialBearer}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			t := exp.Time.UTC()
			out.ExpiresAt = &t
		}
		return out
	}

	return Classification{Kind: domain.CredentialSession}
}
