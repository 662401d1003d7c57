package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/pkg/cryptox"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

// SessionService issues opaque session tokens per realm. Only a fingerprint
// of each token is stored. Expired rows are pruned before every operation.
type SessionService struct {
	Store store.Store
}

func (s *SessionService) prune(ctx context.Context) {
	n, err := s.Store.Sessions().DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to prune expired sessions", slog.Any("error", err))
		return
	}
	if n > 0 {
		slogx.FromContext(ctx).Debug("pruned expired sessions", slog.Int64("count", n))
	}
}

// Create returns a new token for realm, valid for ttl (the realm default
// when ttl is zero). The token is returned once and never stored.
func (s *SessionService) Create(ctx context.Context, realm domain.Realm, ttl time.Duration) (string, error) {
	if !realm.Valid() {
		return "", domain.ErrUnknownRealm
	}
	if ttl <= 0 {
		ttl = realm.TTL()
	}
	s.prune(ctx)

	token, err := cryptox.GenerateToken(cryptox.SessionTokenSize)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	err = s.Store.Sessions().CreateSession(ctx, domain.Session{
		Realm:     realm,
		TokenHash: cryptox.FingerprintToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Validate reports whether token is a live session of realm.
func (s *SessionService) Validate(ctx context.Context, realm domain.Realm, token string) (bool, error) {
	if token == "" || !realm.Valid() {
		return false, nil
	}
	s.prune(ctx)

	sess, err := s.Store.Sessions().GetSession(ctx, realm, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sess.ExpiresAt.After(time.Now()), nil
}

func (s *SessionService) Revoke(ctx context.Context, realm domain.Realm, token string) error {
	s.prune(ctx)
	if token == "" {
		return nil
	}
	return s.Store.Sessions().DeleteSession(ctx, realm, cryptox.FingerprintToken(token))
}

// RevokeAll ends every session of realm, forcing re-authentication.
func (s *SessionService) RevokeAll(ctx context.Context, realm domain.Realm) error {
	s.prune(ctx)
	if err := s.Store.Sessions().DeleteRealmSessions(ctx, realm); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("revoked all sessions", slog.String("realm", string(realm)))
	return nil
}
