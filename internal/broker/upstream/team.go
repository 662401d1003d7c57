package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/outbound"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

type accountsCheckResponse struct {
	Accounts map[string]struct {
		Account struct {
			PlanType        string `json:"plan_type"`
			IsDeactivated   bool   `json:"is_deactivated"`
			AccountUserRole string `json:"account_user_role"`
		} `json:"account"`
	} `json:"accounts"`
}

// DiscoverAccountID finds the team workspace id reachable with the bearer.
// An active team workspace owned by the caller wins; otherwise any active
// team workspace. ErrNoTeamAccount when there is neither.
func (c *Client) DiscoverAccountID(ctx context.Context, bearer string) (string, error) {
	resp, err := c.do(ctx, outbound.Request{
		Method: http.MethodGet,
		URL:    c.cfg.ChatBaseURL + "/backend-api/accounts/check/v4-2023-04-27",
		Header: c.teamHeaders(bearer, ""),
	})
	if err != nil {
		return "", err
	}

	var body accountsCheckResponse
	if err := resp.JSON(&body); err != nil {
		return "", fmt.Errorf("%w: decode accounts: %v", ErrUnavailable, err)
	}

	// Map iteration order is random; sort for a stable pick.
	ids := make([]string, 0, len(body.Accounts))
	for id := range body.Accounts {
		if id != "default" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	fallback := ""
	for _, id := range ids {
		acct := body.Accounts[id].Account
		if acct.PlanType != "team" || acct.IsDeactivated {
			continue
		}
		if acct.AccountUserRole == "account-owner" {
			return id, nil
		}
		if fallback == "" {
			fallback = id
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoTeamAccount
}

// SendInvite asks the remote to invite email into the team workspace.
func (c *Client) SendInvite(ctx context.Context, bearer, accountID, email string) error {
	_, err := c.do(ctx, outbound.Request{
		Method: http.MethodPost,
		URL:    c.cfg.ChatBaseURL + "/backend-api/accounts/" + url.PathEscape(accountID) + "/invites",
		Header: c.teamHeaders(bearer, accountID),
		Body: map[string]any{
			"email_addresses": []string{email},
			"role":            "standard-user",
			"resend_emails":   true,
		},
	})
	return err
}

type subscriptionResponse struct {
	SeatsInUse    int     `json:"seats_in_use"`
	SeatsEntitled int     `json:"seats_entitled"`
	ActiveUntil   *string `json:"active_until"`
}

// FetchSeats reads the subscription counters and the pending invite total.
// A failed invite count is reported as zero pending invites. SyncedAt is
// left for the caller to set.
func (c *Client) FetchSeats(ctx context.Context, bearer, accountID string) (domain.SeatSync, error) {
	headers := c.teamHeaders(bearer, accountID)

	resp, err := c.do(ctx, outbound.Request{
		Method: http.MethodGet,
		URL:    c.cfg.ChatBaseURL + "/backend-api/subscriptions?account_id=" + url.QueryEscape(accountID),
		Header: headers,
	})
	if err != nil {
		return domain.SeatSync{}, err
	}

	var subs subscriptionResponse
	if err := resp.JSON(&subs); err != nil {
		return domain.SeatSync{}, fmt.Errorf("%w: decode subscription: %v", ErrUnavailable, err)
	}

	out := domain.SeatSync{
		SeatsInUse:    subs.SeatsInUse,
		SeatsEntitled: subs.SeatsEntitled,
	}
	if subs.ActiveUntil != nil {
		out.ActiveUntil = *subs.ActiveUntil
	}

	invites, err := c.do(ctx, outbound.Request{
		Method: http.MethodGet,
		URL:    c.cfg.ChatBaseURL + "/backend-api/accounts/" + url.PathEscape(accountID) + "/invites?offset=0&limit=1&query=",
		Header: headers,
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("invite count unavailable",
			slog.String("account_id", accountID), slog.Any("err", err))
		return out, nil
	}

	var total struct {
		Total int `json:"total"`
	}
	if err := invites.JSON(&total); err == nil {
		out.PendingInvites = total.Total
	}
	return out, nil
}

const checkoutCancelURL = "https://chatgpt.com/?numSeats=5&selectedPlan=month&referrer=https%3A%2F%2Fauth.openai.com%2F#team-pricing-seat-selection"

// CreateCheckout requests a team plan checkout session and returns the link.
func (c *Client) CreateCheckout(ctx context.Context, bearer string) (string, error) {
	resp, err := c.do(ctx, outbound.Request{
		Method: http.MethodPost,
		URL:    c.cfg.ChatBaseURL + "/backend-api/payments/checkout",
		Header: c.teamHeaders(bearer, ""),
		Body: map[string]any{
			"plan_name": "chatgptteamplan",
			"team_plan_data": map[string]any{
				"workspace_name": "Chated",
				"price_interval": "month",
				"seat_quantity":  5,
			},
			"billing_details": map[string]string{
				"country":  "SG",
				"currency": "USD",
			},
			"cancel_url": checkoutCancelURL,
			"promo_campaign": map[string]any{
				"promo_campaign_id":          "team-1-month-free",
				"is_coupon_from_query_param": false,
			},
			"checkout_ui_mode": "redirect",
		},
	})
	if err != nil {
		return "", err
	}

	var body struct {
		URL               string `json:"url"`
		CheckoutSessionID string `json:"checkout_session_id"`
	}
	if err := resp.JSON(&body); err != nil {
		return "", fmt.Errorf("%w: decode checkout: %v", ErrUnavailable, err)
	}
	switch {
	case body.URL != "":
		return body.URL, nil
	case body.CheckoutSessionID != "":
		return c.cfg.ChatBaseURL + "/checkout/openai_llc/" + body.CheckoutSessionID, nil
	default:
		return "", fmt.Errorf("%w: checkout response without url", ErrRejected)
	}
}
