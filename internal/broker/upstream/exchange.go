package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/outbound"
)

// Exchange is the outcome of turning a long-lived credential into a bearer.
// RotatedCredential is set only when the remote issued a replacement that
// differs from the one presented.
type Exchange struct {
	Bearer            string
	RotatedCredential string
}

// Exchange dispatches on the credential kind. Static bearers never touch the
// network.
func (c *Client) Exchange(ctx context.Context, cred domain.Credential) (Exchange, error) {
	switch cred.Kind {
	case domain.CredentialRefresh:
		return c.RefreshBearer(ctx, cred.Value)
	case domain.CredentialSession:
		bearer, err := c.SessionBearer(ctx, cred.Value)
		if err != nil {
			return Exchange{}, err
		}
		return Exchange{Bearer: bearer}, nil
	case domain.CredentialBearer:
		bearer := StripBearer(cred.Value)
		if bearer == "" {
			return Exchange{}, fmt.Errorf("%w: empty bearer", ErrAuthRejected)
		}
		return Exchange{Bearer: bearer}, nil
	default:
		return Exchange{}, fmt.Errorf("%w: %q", domain.ErrUnknownCredentialKind, cred.Kind)
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshBearer runs the OAuth refresh grant.
func (c *Client) RefreshBearer(ctx context.Context, refreshToken string) (Exchange, error) {
	resp, err := c.do(ctx, outbound.Request{
		Method: http.MethodPost,
		URL:    c.cfg.AuthBaseURL + "/oauth/token",
		Body: map[string]string{
			"client_id":     c.cfg.ClientID,
			"grant_type":    "refresh_token",
			"redirect_uri":  c.cfg.RedirectURI,
			"refresh_token": refreshToken,
		},
	})
	if err != nil {
		// The token endpoint answers 400 invalid_grant for dead refresh
		// tokens.
		if errors.Is(err, ErrRejected) {
			return Exchange{}, fmt.Errorf("%w: %v", ErrAuthRejected, err)
		}
		return Exchange{}, err
	}

	var body tokenResponse
	if err := resp.JSON(&body); err != nil {
		return Exchange{}, fmt.Errorf("%w: decode token response: %v", ErrUnavailable, err)
	}
	if body.AccessToken == "" {
		return Exchange{}, fmt.Errorf("%w: token response without access_token", ErrAuthRejected)
	}

	out := Exchange{Bearer: body.AccessToken}
	if body.RefreshToken != "" && body.RefreshToken != refreshToken {
		out.RotatedCredential = body.RefreshToken
	}
	return out, nil
}

// SessionBearer trades a web session cookie for a bearer. The session
// credential is never rotated.
func (c *Client) SessionBearer(ctx context.Context, sessionToken string) (string, error) {
	resp, err := c.do(ctx, outbound.Request{
		Method: http.MethodGet,
		URL:    c.cfg.ChatBaseURL + "/api/auth/session",
		Header: map[string]string{
			"Accept":  "application/json",
			"Origin":  c.cfg.ChatBaseURL,
			"Referer": c.cfg.ChatBaseURL + "/",
		},
		Cookies: []*http.Cookie{{Name: sessionCookieName, Value: sessionToken}},
	})
	if err != nil {
		if errors.Is(err, ErrRejected) {
			return "", fmt.Errorf("%w: %v", ErrAuthRejected, err)
		}
		return "", err
	}

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	if err := resp.JSON(&body); err != nil {
		return "", fmt.Errorf("%w: decode session response: %v", ErrUnavailable, err)
	}
	// An expired session answers 200 with an empty object.
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: session has no access token", ErrAuthRejected)
	}
	return body.AccessToken, nil
}

// StripBearer removes an optional "Bearer " prefix.
func StripBearer(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 7 && strings.EqualFold(s[:7], "bearer ") {
		s = strings.TrimSpace(s[7:])
	}
	return s
}
