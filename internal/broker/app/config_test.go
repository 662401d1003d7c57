package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/lock"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "broker.db", cfg.DatabaseFile)
	require.Equal(t, 20*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, 5*time.Minute, cfg.ReservationLease)
	require.Equal(t, time.Minute, cfg.HousekeepingInterval)
	require.Empty(t, cfg.RedisAddr)
	require.False(t, cfg.CookieSecure)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BROKER_REDIS_ADDR", "redis:6379")
	t.Setenv("BROKER_REDIS_DB", "2")
	t.Setenv("BROKER_COOKIE_SECURE", "true")
	t.Setenv("BROKER_UPSTREAM_TIMEOUT", "5s")
	t.Setenv("BROKER_RESERVATION_LEASE", "2m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "redis:6379", cfg.RedisAddr)
	require.Equal(t, 2, cfg.RedisDB)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, 2*time.Minute, cfg.ReservationLease)
}

func TestLoadConfigRejectsShortLease(t *testing.T) {
	cases := []struct {
		timeout string
		lease   string
		ok      bool
	}{
		{timeout: "30s", lease: "10s"},
		{timeout: "20s", lease: "20s"},
		{timeout: "20s", lease: "99s"},
		{timeout: "20s", lease: "100s", ok: true},
		{timeout: "60s", lease: "3m59s"},
		{timeout: "60s", lease: "4m", ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.timeout+"/"+tc.lease, func(t *testing.T) {
			t.Setenv("BROKER_UPSTREAM_TIMEOUT", tc.timeout)
			t.Setenv("BROKER_RESERVATION_LEASE", tc.lease)

			cfg, err := LoadConfig()
			if tc.ok {
				require.NoError(t, err)
				require.GreaterOrEqual(t, cfg.ReservationLease, cfg.MinReservationLease())
				return
			}
			require.ErrorContains(t, err, "BROKER_RESERVATION_LEASE")
		})
	}
}

func TestLockTTLCoversExchange(t *testing.T) {
	require.Equal(t, lock.DefaultRedisTTL, Config{UpstreamTimeout: 20 * time.Second}.LockTTL())
	require.Equal(t, 2*time.Minute, Config{UpstreamTimeout: time.Minute}.LockTTL())
	require.Equal(t, 100*time.Second, Config{UpstreamTimeout: 20 * time.Second}.MinReservationLease())
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
}
