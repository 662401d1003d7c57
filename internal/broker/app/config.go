package app

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/lock"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Env is dev, staging or prod. LogFormat is json or text.
	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1m"`
	DatabaseFile         string        `env:"BROKER_DATABASE_FILE" envDefault:"broker.db"`
	PepperFile           string        `env:"BROKER_PEPPER_FILE" envDefault:"pepper"`

	// AdminPassword seeds the admin password on first start only. When empty
	// a random one is generated and logged once.
	AdminPassword string `env:"ADMIN_PASSWORD"`

	UpstreamTimeout  time.Duration `env:"BROKER_UPSTREAM_TIMEOUT" envDefault:"20s"`
	AuthBaseURL      string        `env:"BROKER_AUTH_BASE_URL"`
	ChatBaseURL      string        `env:"BROKER_CHAT_BASE_URL"`
	OAuthClientID    string        `env:"BROKER_OAUTH_CLIENT_ID"`
	OAuthRedirectURI string        `env:"BROKER_OAUTH_REDIRECT_URI"`

	ReservationLease time.Duration `env:"BROKER_RESERVATION_LEASE" envDefault:"5m"`

	// Redis is optional. Without it account locks are process local, which
	// is only safe for a single replica.
	RedisAddr     string `env:"BROKER_REDIS_ADDR"`
	RedisPassword string `env:"BROKER_REDIS_PASSWORD"`
	RedisDB       int    `env:"BROKER_REDIS_DB" envDefault:"0"`

	CookieSecure bool `env:"BROKER_COOKIE_SECURE" envDefault:"false"`
}

func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.UpstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("BROKER_UPSTREAM_TIMEOUT must be positive")
	}
	if minLease := cfg.MinReservationLease(); cfg.ReservationLease < minLease {
		return Config{}, fmt.Errorf("BROKER_RESERVATION_LEASE (%s) must be at least %s for BROKER_UPSTREAM_TIMEOUT %s",
			cfg.ReservationLease, minLease, cfg.UpstreamTimeout)
	}
	return cfg, nil
}

// LockTTL is how long an account lock may be held across replicas. A
// credential exchange may take up to two upstream round trips.
func (c Config) LockTTL() time.Duration {
	return max(lock.DefaultRedisTTL, 2*c.UpstreamTimeout)
}

// MinReservationLease covers the longest redemption: waiting out another
// holder's account lock, one credential exchange and one invite.
func (c Config) MinReservationLease() time.Duration {
	return c.LockTTL() + 2*c.UpstreamTimeout
}
