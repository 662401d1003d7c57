package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/pkg/cryptox"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func initSettings(t *testing.T, env *testEnv, seed string) string {
	t.Helper()
	generated, err := env.settings.Init(context.Background(), seed)
	require.NoError(t, err)
	return generated
}

func TestSettingsInit(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a password when none is seeded", func(t *testing.T) {
		env := newTestEnv(t)
		generated := initSettings(t, env, "")
		require.Len(t, generated, 12)

		ok, err := env.settings.VerifyAdminPassword(ctx, generated)
		require.NoError(t, err)
		require.True(t, ok)

		// A second start keeps the stored password.
		require.Empty(t, initSettings(t, env, "other"))
		ok, err = env.settings.VerifyAdminPassword(ctx, generated)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("hashes plaintext secrets", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.Settings().SetSetting(ctx, domain.SettingAdminPassword, "legacy-pass"))
		require.NoError(t, env.store.Settings().SetSetting(ctx, domain.SettingAccessKey, "door"))

		require.Empty(t, initSettings(t, env, "ignored"))

		for _, key := range domain.SecretSettings {
			v, err := env.store.Settings().GetSetting(ctx, key)
			require.NoError(t, err)
			require.True(t, cryptox.IsHashed(v), key)
		}

		ok, err := env.settings.VerifyAccessKey(ctx, "door")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("defaults", func(t *testing.T) {
		env := newTestEnv(t)
		initSettings(t, env, "admin-pass")

		pub, err := env.settings.Public(ctx)
		require.NoError(t, err)
		require.Equal(t, "Team Invite", pub.SiteTitle)
		require.False(t, pub.AccessKeyRequired)

		enabled, proxies, err := env.settings.ProxyConfig(ctx)
		require.NoError(t, err)
		require.False(t, enabled)
		require.Empty(t, proxies)
	})
}

func TestVerifyUpgradesLegacySecret(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	initSettings(t, env, "admin-pass")

	// A plaintext value written after startup, as an older release would.
	require.NoError(t, env.store.Settings().SetSetting(ctx, domain.SettingAccessKey, "open-sesame"))

	ok, err := env.settings.VerifyAccessKey(ctx, "wrong")
	require.NoError(t, err)
	require.False(t, ok)
	stored, err := env.store.Settings().GetSetting(ctx, domain.SettingAccessKey)
	require.NoError(t, err)
	require.Equal(t, "open-sesame", stored)

	ok, err = env.settings.VerifyAccessKey(ctx, "open-sesame")
	require.NoError(t, err)
	require.True(t, ok)
	stored, err = env.store.Settings().GetSetting(ctx, domain.SettingAccessKey)
	require.NoError(t, err)
	require.True(t, cryptox.IsHashed(stored))

	ok, err = env.settings.VerifyAccessKey(ctx, "open-sesame")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOpenAccessWithoutKey(t *testing.T) {
	env := newTestEnv(t)
	initSettings(t, env, "admin-pass")

	ok, err := env.settings.VerifyAccessKey(context.Background(), "")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSettingsUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	initSettings(t, env, "admin-pass")

	adminToken, err := env.sessions.Create(ctx, domain.RealmAdmin, 0)
	require.NoError(t, err)
	accessToken, err := env.sessions.Create(ctx, domain.RealmAccess, 0)
	require.NoError(t, err)

	t.Run("password change needs the current password", func(t *testing.T) {
		err := env.settings.Update(ctx, SettingsUpdate{CurrentPassword: "nope", NewPassword: "fresh-pass"})
		require.ErrorIs(t, err, ErrInvalidCredentials)

		err = env.settings.Update(ctx, SettingsUpdate{CurrentPassword: "admin-pass", NewPassword: "abc"})
		require.ErrorIs(t, err, ErrValidation)

		ok, err := env.sessions.Validate(ctx, domain.RealmAdmin, adminToken)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("password change revokes admin sessions", func(t *testing.T) {
		require.NoError(t, env.settings.Update(ctx, SettingsUpdate{CurrentPassword: "admin-pass", NewPassword: "fresh-pass"}))

		ok, err := env.sessions.Validate(ctx, domain.RealmAdmin, adminToken)
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = env.sessions.Validate(ctx, domain.RealmAccess, accessToken)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = env.settings.VerifyAdminPassword(ctx, "fresh-pass")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("access key set and clear revoke access sessions", func(t *testing.T) {
		key := " letmein "
		require.NoError(t, env.settings.Update(ctx, SettingsUpdate{AccessKey: &key}))

		ok, err := env.sessions.Validate(ctx, domain.RealmAccess, accessToken)
		require.NoError(t, err)
		require.False(t, ok)

		admin, err := env.settings.Admin(ctx)
		require.NoError(t, err)
		require.True(t, admin.HasAccessKey)

		ok, err = env.settings.VerifyAccessKey(ctx, "letmein")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, env.settings.Update(ctx, SettingsUpdate{ClearAccessKey: true}))
		pub, err := env.settings.Public(ctx)
		require.NoError(t, err)
		require.False(t, pub.AccessKeyRequired)
	})

	t.Run("site text and proxies", func(t *testing.T) {
		title, notice, on := "Seats", "Be nice", true
		proxies := []string{"h1:80", " ", "h2:81:user:pass"}
		require.NoError(t, env.settings.Update(ctx, SettingsUpdate{
			SiteTitle: &title, SiteNotice: &notice, ProxyEnabled: &on, ProxyList: &proxies,
		}))

		pub, err := env.settings.Public(ctx)
		require.NoError(t, err)
		require.Equal(t, "Seats", pub.SiteTitle)
		require.Equal(t, "Be nice", pub.SiteNotice)

		enabled, list, err := env.settings.ProxyConfig(ctx)
		require.NoError(t, err)
		require.True(t, enabled)
		require.Equal(t, []string{"h1:80", "h2:81:user:pass"}, list)

		bad := []string{"ftp://nope"}
		require.ErrorIs(t, env.settings.Update(ctx, SettingsUpdate{ProxyList: &bad}), ErrValidation)
	})
}

func TestAdminTOTP(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	initSettings(t, env, "admin-pass")

	require.NoError(t, env.settings.AuthenticateAdmin(ctx, "admin-pass", ""))
	require.ErrorIs(t, env.settings.AuthenticateAdmin(ctx, "wrong", ""), ErrInvalidCredentials)

	enrollment, err := env.settings.EnrollTOTP(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.URL, "otpauth://totp/")

	// Pending enrollment does not change login yet.
	require.NoError(t, env.settings.AuthenticateAdmin(ctx, "admin-pass", ""))

	require.ErrorIs(t, env.settings.ConfirmTOTP(ctx, "000000x"), ErrInvalidCredentials)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, env.settings.ConfirmTOTP(ctx, code))

	admin, err := env.settings.Admin(ctx)
	require.NoError(t, err)
	require.True(t, admin.TOTPEnabled)

	_, err = env.settings.EnrollTOTP(ctx)
	require.ErrorIs(t, err, ErrTOTPAlreadyEnabled)

	require.ErrorIs(t, env.settings.AuthenticateAdmin(ctx, "admin-pass", ""), ErrOTPRequired)
	require.ErrorIs(t, env.settings.AuthenticateAdmin(ctx, "admin-pass", "badbad"), ErrInvalidCredentials)
	require.NoError(t, env.settings.AuthenticateAdmin(ctx, "admin-pass", code))

	require.NoError(t, env.settings.DisableTOTP(ctx, code))
	require.NoError(t, env.settings.AuthenticateAdmin(ctx, "admin-pass", ""))
}
