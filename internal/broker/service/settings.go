package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/outbound"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/pkg/cryptox"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const MinPasswordLength = 4

var (
	ErrTOTPAlreadyEnabled = fmt.Errorf("%w: TOTP already enabled", ErrValidation)
	ErrTOTPNotEnrolled    = fmt.Errorf("%w: TOTP not enrolled", ErrValidation)
)

type PublicSettings struct {
	SiteTitle         string
	SiteNotice        string
	AccessKeyRequired bool
}

// AdminSettings never carries secret values, only whether they are set.
type AdminSettings struct {
	SiteTitle        string
	SiteNotice       string
	ProxyEnabled     bool
	ProxyList        []string
	HasAccessKey     bool
	HasAdminPassword bool
	TOTPEnabled      bool
}

// SettingsUpdate applies only the fields that are set.
type SettingsUpdate struct {
	SiteTitle    *string
	SiteNotice   *string
	ProxyEnabled *bool
	ProxyList    *[]string

	AccessKey      *string // non-empty sets a new key
	ClearAccessKey bool

	CurrentPassword string
	NewPassword     string
}

type TOTPEnrollment struct {
	Secret string
	URL    string
}

type SettingsService struct {
	Store    store.Store
	Sessions *SessionService
	Issuer   string // TOTP issuer label
}

// Init seeds defaults, makes sure an admin password exists and hashes any
// plaintext secrets left by older deployments. When no password was
// configured a random one is generated and returned so the caller can show
// it once.
func (s *SettingsService) Init(ctx context.Context, seedPassword string) (generated string, err error) {
	log := slogx.FromContext(ctx)

	// 1. Defaults
	for key, value := range domain.DefaultSettings {
		if err := s.Store.Settings().InsertSettingIfAbsent(ctx, key, value); err != nil {
			return "", fmt.Errorf("seed setting %s: %w", key, err)
		}
	}

	// 2. Admin password
	current, err := s.get(ctx, domain.SettingAdminPassword)
	if err != nil {
		return "", err
	}
	if current == "" {
		password := seedPassword
		if password == "" {
			if password, err = cryptox.GeneratePassword(); err != nil {
				return "", err
			}
			generated = password
		}
		hash, err := cryptox.HashSecret(password)
		if err != nil {
			return "", err
		}
		if err := s.Store.Settings().SetSetting(ctx, domain.SettingAdminPassword, hash); err != nil {
			return "", err
		}
	}

	// 3. Hash plaintext secrets
	for _, key := range domain.SecretSettings {
		value, err := s.get(ctx, key)
		if err != nil {
			return "", err
		}
		if value == "" || cryptox.IsHashed(value) {
			continue
		}
		hash, err := cryptox.HashSecret(value)
		if err != nil {
			return "", err
		}
		if err := s.Store.Settings().SetSetting(ctx, key, hash); err != nil {
			return "", err
		}
		log.Info("hashed plaintext secret setting", slog.String("key", key))
	}

	return generated, nil
}

// get returns "" for unset keys.
func (s *SettingsService) get(ctx context.Context, key string) (string, error) {
	v, err := s.Store.Settings().GetSetting(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (s *SettingsService) Public(ctx context.Context) (PublicSettings, error) {
	all, err := s.Store.Settings().ListSettings(ctx)
	if err != nil {
		return PublicSettings{}, err
	}
	return PublicSettings{
		SiteTitle:         withDefault(all[domain.SettingSiteTitle], domain.DefaultSettings[domain.SettingSiteTitle]),
		SiteNotice:        all[domain.SettingSiteNotice],
		AccessKeyRequired: all[domain.SettingAccessKey] != "",
	}, nil
}

func (s *SettingsService) Admin(ctx context.Context) (AdminSettings, error) {
	all, err := s.Store.Settings().ListSettings(ctx)
	if err != nil {
		return AdminSettings{}, err
	}
	return AdminSettings{
		SiteTitle:        withDefault(all[domain.SettingSiteTitle], domain.DefaultSettings[domain.SettingSiteTitle]),
		SiteNotice:       all[domain.SettingSiteNotice],
		ProxyEnabled:     all[domain.SettingProxyEnabled] == "1",
		ProxyList:        outbound.SplitProxyList(all[domain.SettingProxyList]),
		HasAccessKey:     all[domain.SettingAccessKey] != "",
		HasAdminPassword: all[domain.SettingAdminPassword] != "",
		TOTPEnabled:      all[domain.SettingAdminTOTP] != "",
	}, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *SettingsService) Update(ctx context.Context, u SettingsUpdate) error {
	log := slogx.FromContext(ctx)
	settings := s.Store.Settings()

	// 1. Validate everything before writing anything
	if u.NewPassword != "" {
		ok, err := s.VerifyAdminPassword(ctx, u.CurrentPassword)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: current password is wrong", ErrInvalidCredentials)
		}
		if len(u.NewPassword) < MinPasswordLength {
			return validationError("new password must be at least %d characters", MinPasswordLength)
		}
	}
	var proxies []string
	if u.ProxyList != nil {
		for _, entry := range *u.ProxyList {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			if _, err := outbound.ParseProxy(entry); err != nil {
				return validationError("proxy %q: %v", entry, err)
			}
			proxies = append(proxies, entry)
		}
	}

	// 2. Password change revokes every admin session
	if u.NewPassword != "" {
		hash, err := cryptox.HashSecret(u.NewPassword)
		if err != nil {
			return err
		}
		if err := settings.SetSetting(ctx, domain.SettingAdminPassword, hash); err != nil {
			return err
		}
		if err := s.Sessions.RevokeAll(ctx, domain.RealmAdmin); err != nil {
			return err
		}
		log.Info("admin password changed")
	}

	// 3. Access key change revokes every access session
	switch {
	case u.ClearAccessKey:
		if err := settings.SetSetting(ctx, domain.SettingAccessKey, ""); err != nil {
			return err
		}
		if err := s.Sessions.RevokeAll(ctx, domain.RealmAccess); err != nil {
			return err
		}
	case u.AccessKey != nil && strings.TrimSpace(*u.AccessKey) != "":
		hash, err := cryptox.HashSecret(strings.TrimSpace(*u.AccessKey))
		if err != nil {
			return err
		}
		if err := settings.SetSetting(ctx, domain.SettingAccessKey, hash); err != nil {
			return err
		}
		if err := s.Sessions.RevokeAll(ctx, domain.RealmAccess); err != nil {
			return err
		}
	}

	// 4. Plain values
	if u.SiteTitle != nil {
		if err := settings.SetSetting(ctx, domain.SettingSiteTitle, *u.SiteTitle); err != nil {
			return err
		}
	}
	if u.SiteNotice != nil {
		if err := settings.SetSetting(ctx, domain.SettingSiteNotice, *u.SiteNotice); err != nil {
			return err
		}
	}
	if u.ProxyEnabled != nil {
		v := "0"
		if *u.ProxyEnabled {
			v = "1"
		}
		if err := settings.SetSetting(ctx, domain.SettingProxyEnabled, v); err != nil {
			return err
		}
	}
	if u.ProxyList != nil {
		if err := settings.SetSetting(ctx, domain.SettingProxyList, strings.Join(proxies, "\n")); err != nil {
			return err
		}
	}
	return nil
}

// ProxyConfig feeds the outbound transport.
func (s *SettingsService) ProxyConfig(ctx context.Context) (bool, []string, error) {
	enabled, err := s.get(ctx, domain.SettingProxyEnabled)
	if err != nil {
		return false, nil, err
	}
	if enabled != "1" {
		return false, nil, nil
	}
	list, err := s.get(ctx, domain.SettingProxyList)
	if err != nil {
		return false, nil, err
	}
	return true, outbound.SplitProxyList(list), nil
}

// verifySecret checks presented against the stored secret. A match against
// a legacy or plaintext value is re-hashed afterwards; the check itself is
// the pure cryptox.MatchSecret predicate.
func (s *SettingsService) verifySecret(ctx context.Context, key, presented string) (bool, error) {
	stored, err := s.get(ctx, key)
	if err != nil {
		return false, err
	}
	if !cryptox.MatchSecret(presented, stored) {
		return false, nil
	}
	if cryptox.NeedsRehash(stored) {
		s.upgradeSecret(ctx, key, presented)
	}
	return true, nil
}

func (s *SettingsService) upgradeSecret(ctx context.Context, key, presented string) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashSecret(presented)
	if err != nil {
		log.Warn("failed to upgrade secret hash", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := s.Store.Settings().SetSetting(ctx, key, hash); err != nil {
		log.Warn("failed to upgrade secret hash", slog.String("key", key), slog.Any("error", err))
		return
	}
	log.Info("upgraded secret hash", slog.String("key", key))
}

func (s *SettingsService) VerifyAdminPassword(ctx context.Context, password string) (bool, error) {
	return s.verifySecret(ctx, domain.SettingAdminPassword, password)
}

func (s *SettingsService) AccessKeyRequired(ctx context.Context) (bool, error) {
	v, err := s.get(ctx, domain.SettingAccessKey)
	return v != "", err
}

// VerifyAccessKey always succeeds when no access key is configured.
func (s *SettingsService) VerifyAccessKey(ctx context.Context, key string) (bool, error) {
	required, err := s.AccessKeyRequired(ctx)
	if err != nil || !required {
		return !required, err
	}
	return s.verifySecret(ctx, domain.SettingAccessKey, strings.TrimSpace(key))
}

// AuthenticateAdmin checks the password and, once TOTP is enrolled, the
// one-time code.
func (s *SettingsService) AuthenticateAdmin(ctx context.Context, password, code string) error {
	log := slogx.FromContext(ctx)

	ok, err := s.VerifyAdminPassword(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn("admin login failed", slog.String("reason", "password"))
		return ErrInvalidCredentials
	}

	secret, err := s.get(ctx, domain.SettingAdminTOTP)
	if err != nil {
		return err
	}
	if secret == "" {
		return nil
	}
	if strings.TrimSpace(code) == "" {
		return ErrOTPRequired
	}
	if !totp.Validate(strings.TrimSpace(code), secret) {
		log.Warn("admin login failed", slog.String("reason", "otp"))
		return ErrInvalidCredentials
	}
	return nil
}

// EnrollTOTP starts enrollment. The secret only becomes active after
// ConfirmTOTP sees a valid code.
func (s *SettingsService) EnrollTOTP(ctx context.Context) (TOTPEnrollment, error) {
	active, err := s.get(ctx, domain.SettingAdminTOTP)
	if err != nil {
		return TOTPEnrollment{}, err
	}
	if active != "" {
		return TOTPEnrollment{}, ErrTOTPAlreadyEnabled
	}

	issuer := s.Issuer
	if issuer == "" {
		issuer = "SeatBroker"
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: "admin",
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return TOTPEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Settings().SetSetting(ctx, domain.SettingAdminTOTPStage, key.Secret()); err != nil {
		return TOTPEnrollment{}, err
	}
	return TOTPEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

func (s *SettingsService) ConfirmTOTP(ctx context.Context, code string) error {
	pending, err := s.get(ctx, domain.SettingAdminTOTPStage)
	if err != nil {
		return err
	}
	if pending == "" {
		return ErrTOTPNotEnrolled
	}
	if !totp.Validate(strings.TrimSpace(code), pending) {
		return ErrInvalidCredentials
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Settings().SetSetting(ctx, domain.SettingAdminTOTP, pending); err != nil {
			return err
		}
		return tx.Settings().DeleteSetting(ctx, domain.SettingAdminTOTPStage)
	})
}

// DisableTOTP requires a currently valid code.
func (s *SettingsService) DisableTOTP(ctx context.Context, code string) error {
	secret, err := s.get(ctx, domain.SettingAdminTOTP)
	if err != nil {
		return err
	}
	if secret == "" {
		return ErrTOTPNotEnrolled
	}
	if !totp.Validate(strings.TrimSpace(code), secret) {
		return ErrInvalidCredentials
	}
	return s.Store.Settings().DeleteSetting(ctx, domain.SettingAdminTOTP)
}
