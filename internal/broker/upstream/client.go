package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/seatbroker/internal/broker/outbound"
)

var (
	// ErrAuthRejected is returned when the remote refuses a credential or
	// bearer.
	ErrAuthRejected = errors.New("upstream: credential rejected")

	// ErrUnavailable covers transport failures and remote 5xx/429 answers.
	ErrUnavailable = errors.New("upstream: unavailable")

	// ErrRejected is any other non-2xx answer; the remote body is attached
	// as detail.
	ErrRejected = errors.New("upstream: request rejected")

	// ErrNoTeamAccount is returned by discovery when the bearer has no
	// active team workspace.
	ErrNoTeamAccount = errors.New("upstream: no team account found")
)

const (
	DefaultAuthBaseURL = "https://auth.openai.com"
	DefaultChatBaseURL = "https://chatgpt.com"
	DefaultClientID    = "app_LlGpXReQgckcGGUo2JrYvtJK"
	DefaultRedirectURI = "com.openai.chat://auth0.openai.com/ios/com.openai.chat/callback"

	sessionCookieName = "__Secure-next-auth.session-token"
	maxDetailLength   = 300
)

type Config struct {
	AuthBaseURL string
	ChatBaseURL string
	ClientID    string
	RedirectURI string
}

func (c Config) withDefaults() Config {
	if c.AuthBaseURL == "" {
		c.AuthBaseURL = DefaultAuthBaseURL
	}
	if c.ChatBaseURL == "" {
		c.ChatBaseURL = DefaultChatBaseURL
	}
	if c.ClientID == "" {
		c.ClientID = DefaultClientID
	}
	if c.RedirectURI == "" {
		c.RedirectURI = DefaultRedirectURI
	}
	c.AuthBaseURL = strings.TrimRight(c.AuthBaseURL, "/")
	c.ChatBaseURL = strings.TrimRight(c.ChatBaseURL, "/")
	return c
}

// Sender is the outbound transport the client talks through.
type Sender interface {
	Send(ctx context.Context, req outbound.Request) (outbound.Response, error)
}

// Client speaks to the remote team API and its token endpoints.
type Client struct {
	cfg  Config
	send Sender
}

func NewClient(cfg Config, send Sender) *Client {
	return &Client{cfg: cfg.withDefaults(), send: send}
}

// do sends the request and classifies failures. Transport failures become
// ErrUnavailable; non-2xx answers are mapped by status.
func (c *Client) do(ctx context.Context, req outbound.Request) (outbound.Response, error) {
	resp, err := c.send.Send(ctx, req)
	if err != nil {
		return outbound.Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.OK() {
		return resp, nil
	}
	return resp, statusError(resp)
}

func statusError(resp outbound.Response) error {
	detail := truncate(strings.TrimSpace(resp.Text()), maxDetailLength)
	switch {
	case resp.Status == http.StatusUnauthorized || resp.Status == http.StatusForbidden:
		return fmt.Errorf("%w: %d %s", ErrAuthRejected, resp.Status, detail)
	case resp.Status == http.StatusTooManyRequests || resp.Status >= 500:
		return fmt.Errorf("%w: %d %s", ErrUnavailable, resp.Status, detail)
	default:
		return fmt.Errorf("%w: %d %s", ErrRejected, resp.Status, detail)
	}
}

// teamHeaders are the headers the team API expects on bearer calls.
func (c *Client) teamHeaders(bearer, accountID string) map[string]string {
	h := map[string]string{
		"Authorization": "Bearer " + bearer,
		"Origin":        c.cfg.ChatBaseURL,
		"Referer":       c.cfg.ChatBaseURL + "/",
	}
	if accountID != "" {
		h["Chatgpt-Account-Id"] = accountID
	}
	return h
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
