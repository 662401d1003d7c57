package domain

// Settings keys.
const (
	SettingAccessKey      = "access_key"     // secret hash, empty = open access
	SettingAdminPassword  = "admin_password" // secret hash
	SettingSiteTitle      = "site_title"
	SettingSiteNotice     = "site_notice"
	SettingProxyEnabled   = "proxy_enabled" // "1" or "0"
	SettingProxyList      = "proxy_list"    // newline separated
	SettingAdminTOTP      = "admin_totp_secret"
	SettingAdminTOTPStage = "admin_totp_pending"
)

// SecretSettings are stored hashed and never returned to clients.
var SecretSettings = []string{SettingAdminPassword, SettingAccessKey}

// DefaultSettings are inserted on first start when absent. The admin
// password default is supplied by configuration.
var DefaultSettings = map[string]string{
	SettingAccessKey:    "",
	SettingSiteTitle:    "Team Invite",
	SettingSiteNotice:   "",
	SettingProxyEnabled: "0",
	SettingProxyList:    "",
}
