package brokersdk

// ============================================================================
// Common
// ============================================================================

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ============================================================================
// Public
// ============================================================================

type PublicSettingsResponse struct {
	SiteTitle         string `json:"site_title"`
	SiteNotice        string `json:"site_notice"`
	AccessKeyRequired bool   `json:"access_key_required"`
}

type AccessStatusResponse struct {
	Required bool `json:"required"`
	Verified bool `json:"verified"`
}

type AccessVerifyRequest struct {
	Key string `json:"key"`
}

// TeamStatus is the public view of an account: counters only.
type TeamStatus struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	SeatsEntitled  int    `json:"seats_entitled"`
	SeatsInUse     int    `json:"seats_in_use"`
	PendingInvites int    `json:"pending_invites"`
	Available      int    `json:"available"`
	ActiveUntil    string `json:"active_until,omitempty"`
}

type TeamStatusResponse struct {
	Accounts []TeamStatus `json:"accounts"`
}

type VerifyCodeRequest struct {
	Code string `json:"code"`
}

type VerifyCodeResponse struct {
	Valid         bool   `json:"valid"`
	Code          string `json:"code"`
	TeamAccountID *int64 `json:"team_account_id,omitempty"`
}

type RedeemRequest struct {
	Code          string `json:"code"`
	Email         string `json:"email"`
	TeamAccountID *int64 `json:"team_account_id,omitempty"`
}

type RedeemResponse struct {
	Status        string `json:"status"`
	Code          string `json:"code"`
	Email         string `json:"email"`
	TeamAccountID int64  `json:"team_account_id"`
	TeamName      string `json:"team_name"`
}

// ============================================================================
// Admin session
// ============================================================================

type AdminLoginRequest struct {
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

type AdminCheckResponse struct {
	OK bool `json:"ok"`
}

// ============================================================================
// Team accounts
// ============================================================================

// TeamAccountRequest creates or updates an account. On update, omitted
// optional fields keep their stored value; an empty Credential keeps the
// stored credential.
type TeamAccountRequest struct {
	Name          string `json:"name"`
	SeatsEntitled *int   `json:"seats_entitled,omitempty"`
	Enabled       *bool  `json:"enabled,omitempty"`

	// CredentialKind is refresh, session or bearer (RT, ST and AT are
	// accepted too).
	CredentialKind string `json:"credential_kind,omitempty"`
	Credential     string `json:"credential,omitempty"`

	// AccountID is the remote workspace id; detected when empty.
	AccountID string `json:"account_id,omitempty"`
}

// TeamAccountInfo never carries credential or bearer values.
type TeamAccountInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	HasCredential   bool   `json:"has_credential"`
	CredentialKind  string `json:"credential_kind"`
	AccountID       string `json:"account_id"`
	SeatsEntitled   int    `json:"seats_entitled"`
	SeatsInUse      int    `json:"seats_in_use"`
	PendingInvites  int    `json:"pending_invites"`
	Available       int    `json:"available"`
	Enabled         bool   `json:"enabled"`
	ActiveUntil     string `json:"active_until,omitempty"`
	LastSync        string `json:"last_sync,omitempty"`
	BearerExpiresAt string `json:"bearer_expires_at,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type ListTeamAccountsResponse struct {
	Accounts []TeamAccountInfo `json:"accounts"`
}

// TeamAccountWriteResponse reports the immediate credential exchange done
// on create or credential change. AutoError does not mean the write failed.
type TeamAccountWriteResponse struct {
	Account      TeamAccountInfo `json:"account"`
	AutoDetected bool            `json:"auto_detected"`
	AutoError    string          `json:"auto_error,omitempty"`
}

type BatchInviteRequest struct {
	Emails []string `json:"emails"`
}

type BatchInviteResult struct {
	Email         string `json:"email"`
	OK            bool   `json:"ok"`
	TeamAccountID int64  `json:"team_account_id,omitempty"`
	TeamName      string `json:"team_name,omitempty"`
	Error         string `json:"error,omitempty"`
	Description   string `json:"error_description,omitempty"`
}

type BatchInviteResponse struct {
	Results   []BatchInviteResult `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// ============================================================================
// Invite codes
// ============================================================================

type GenerateCodesRequest struct {
	Count         int    `json:"count"`
	TeamAccountID *int64 `json:"team_account_id,omitempty"`
}

type GenerateCodesResponse struct {
	Codes   []string `json:"codes"`
	Created int      `json:"created"`
}

type CodeInfo struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	TeamAccountID *int64 `json:"team_account_id,omitempty"`
	TeamName      string `json:"team_name,omitempty"`
	Used          bool   `json:"used"`
	Reserved      bool   `json:"reserved"`
	UsedEmail     string `json:"used_email,omitempty"`
	UsedAt        string `json:"used_at,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type ListCodesResponse struct {
	Codes []CodeInfo `json:"codes"`
}

type DeleteUsedCodesResponse struct {
	Deleted int64 `json:"deleted"`
}

type ExportCodesResponse struct {
	Codes []string `json:"codes"`
	Count int      `json:"count"`
}

// ============================================================================
// Settings
// ============================================================================

// AdminSettingsResponse reports secrets only as has_* flags.
type AdminSettingsResponse struct {
	SiteTitle        string   `json:"site_title"`
	SiteNotice       string   `json:"site_notice"`
	ProxyEnabled     bool     `json:"proxy_enabled"`
	ProxyList        []string `json:"proxy_list"`
	HasAccessKey     bool     `json:"has_access_key"`
	HasAdminPassword bool     `json:"has_password"`
	TOTPEnabled      bool     `json:"totp_enabled"`
}

type UpdateSettingsRequest struct {
	SiteTitle    *string   `json:"site_title,omitempty"`
	SiteNotice   *string   `json:"site_notice,omitempty"`
	ProxyEnabled *bool     `json:"proxy_enabled,omitempty"`
	ProxyList    *[]string `json:"proxy_list,omitempty"`

	AccessKey      *string `json:"access_key,omitempty"`
	ClearAccessKey bool    `json:"clear_access_key,omitempty"`

	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

type TOTPEnrollResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"otpauth_url"`
}

type TOTPCodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// Credentials
// ============================================================================

type ClassifyCredentialRequest struct {
	Credential string `json:"credential"`
}

type ClassifyCredentialResponse struct {
	Kind      string `json:"kind"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
