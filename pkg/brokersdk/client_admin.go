package brokersdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// AdminLogin opens an admin session. otp is required once TOTP is enabled.
func (c *Client) AdminLogin(ctx context.Context, password, otp string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/login", AdminLoginRequest{Password: password, OTP: otp}, nil, http.StatusOK)
}

func (c *Client) AdminLogout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/logout", nil, nil, http.StatusOK)
}

// AdminCheck reports whether the client holds a live admin session.
func (c *Client) AdminCheck(ctx context.Context) (bool, error) {
	var out AdminCheckResponse
	err := c.do(ctx, http.MethodGet, "/api/admin/check", nil, &out, http.StatusOK)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.OK, nil
}

// ============================================================================
// Team accounts
// ============================================================================

func (c *Client) ListTeamAccounts(ctx context.Context) (*ListTeamAccountsResponse, error) {
	var out ListTeamAccountsResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/team-accounts", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTeamAccount(ctx context.Context, req TeamAccountRequest) (*TeamAccountWriteResponse, error) {
	var out TeamAccountWriteResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/team-accounts", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTeamAccount(ctx context.Context, id int64, req TeamAccountRequest) (*TeamAccountWriteResponse, error) {
	var out TeamAccountWriteResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/admin/team-accounts/%d", id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTeamAccount(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/team-accounts/%d", id), nil, nil, http.StatusNoContent)
}

// SyncTeamAccount refreshes the seat counters from the remote workspace.
func (c *Client) SyncTeamAccount(ctx context.Context, id int64) (*TeamAccountInfo, error) {
	var out TeamAccountInfo
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/team-accounts/%d/sync", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BatchInvite(ctx context.Context, id int64, emails []string) (*BatchInviteResponse, error) {
	var out BatchInviteResponse
	path := fmt.Sprintf("/api/admin/team-accounts/%d/batch-invite", id)
	if err := c.do(ctx, http.MethodPost, path, BatchInviteRequest{Emails: emails}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SmartBatchInvite spreads emails over accounts with free seats.
func (c *Client) SmartBatchInvite(ctx context.Context, emails []string) (*BatchInviteResponse, error) {
	var out BatchInviteResponse
	path := "/api/admin/team-accounts/smart-batch-invite"
	if err := c.do(ctx, http.MethodPost, path, BatchInviteRequest{Emails: emails}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Checkout(ctx context.Context, id int64) (*CheckoutResponse, error) {
	var out CheckoutResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/team-accounts/%d/checkout", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Invite codes
// ============================================================================

func (c *Client) GenerateCodes(ctx context.Context, req GenerateCodesRequest) (*GenerateCodesResponse, error) {
	var out GenerateCodesResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/codes", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCodes(ctx context.Context) (*ListCodesResponse, error) {
	var out ListCodesResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/codes", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCode(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/codes/%d", id), nil, nil, http.StatusNoContent)
}

func (c *Client) DeleteUsedCodes(ctx context.Context) (*DeleteUsedCodesResponse, error) {
	var out DeleteUsedCodesResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/codes/clear-used", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExportCodes(ctx context.Context) (*ExportCodesResponse, error) {
	var out ExportCodesResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/codes/export", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Settings and TOTP
// ============================================================================

func (c *Client) GetSettings(ctx context.Context) (*AdminSettingsResponse, error) {
	var out AdminSettingsResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/settings", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*AdminSettingsResponse, error) {
	var out AdminSettingsResponse
	if err := c.do(ctx, http.MethodPut, "/api/admin/settings", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmTOTP(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/totp/confirm", TOTPCodeRequest{Code: code}, nil, http.StatusNoContent)
}

func (c *Client) DisableTOTP(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/totp/disable", TOTPCodeRequest{Code: code}, nil, http.StatusNoContent)
}

// ClassifyCredential guesses the kind of a pasted token.
func (c *Client) ClassifyCredential(ctx context.Context, credential string) (*ClassifyCredentialResponse, error) {
	var out ClassifyCredentialResponse
	req := ClassifyCredentialRequest{Credential: credential}
	if err := c.do(ctx, http.MethodPost, "/api/admin/credentials/classify", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
