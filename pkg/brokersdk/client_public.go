package brokersdk

import (
	"context"
	"net/http"
)

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) PublicSettings(ctx context.Context) (*PublicSettingsResponse, error) {
	var out PublicSettingsResponse
	if err := c.do(ctx, http.MethodGet, "/api/settings/public", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AccessStatus reports whether an access key is required and whether this
// client already holds an access session.
func (c *Client) AccessStatus(ctx context.Context) (*AccessStatusResponse, error) {
	var out AccessStatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/access/verify", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyAccessKey opens an access session.
func (c *Client) VerifyAccessKey(ctx context.Context, key string) (*AccessStatusResponse, error) {
	var out AccessStatusResponse
	if err := c.do(ctx, http.MethodPost, "/api/access/verify", AccessVerifyRequest{Key: key}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TeamStatus(ctx context.Context) (*TeamStatusResponse, error) {
	var out TeamStatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/team-accounts/status", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyCode checks a code without consuming it.
func (c *Client) VerifyCode(ctx context.Context, code string) (*VerifyCodeResponse, error) {
	var out VerifyCodeResponse
	if err := c.do(ctx, http.MethodPost, "/api/codes/verify", VerifyCodeRequest{Code: code}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Redeem(ctx context.Context, req RedeemRequest) (*RedeemResponse, error) {
	var out RedeemResponse
	if err := c.do(ctx, http.MethodPost, "/api/invite/use", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
