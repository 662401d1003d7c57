package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/lock"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/internal/broker/upstream"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
	"golang.org/x/sync/singleflight"
)

const (
	// BearerSafetyMargin is how long before expiry a cached bearer stops
	// being handed out.
	BearerSafetyMargin = 60 * time.Second

	// BearerTTL is the lifetime recorded for a freshly exchanged bearer.
	BearerTTL = 3500 * time.Second
)

// Exchanger turns a long-lived credential into a bearer.
type Exchanger interface {
	Exchange(ctx context.Context, cred domain.Credential) (upstream.Exchange, error)
}

// CredentialService hands out valid bearers for team accounts, exchanging
// the stored credential only when the cached bearer is missing or close to
// expiry.
type CredentialService struct {
	Store     store.Store
	Exchanger Exchanger
	Locker    lock.Locker

	group singleflight.Group
}

func NewCredentialService(st store.Store, ex Exchanger, locker lock.Locker) *CredentialService {
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &CredentialService{Store: st, Exchanger: ex, Locker: locker}
}

func accountLockKey(id int64) string {
	return "account:" + strconv.FormatInt(id, 10)
}

// ValidBearer returns a bearer for the account that stays valid for at least
// BearerSafetyMargin. Concurrent callers for one account share a single
// exchange within the process; the Locker extends that across replicas.
func (s *CredentialService) ValidBearer(ctx context.Context, accountID int64) (string, error) {
	// 1. Hot path: a fresh cached bearer needs no network call
	acct, err := s.Store.TeamAccounts().GetTeamAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if acct.BearerFresh(time.Now(), BearerSafetyMargin) {
		return acct.BearerToken, nil
	}
	if acct.Credential.IsZero() {
		return "", ErrNoCredentialConfigured
	}

	// 2. Share one exchange between concurrent callers. The exchange runs
	// detached so one caller giving up does not fail the others.
	ch := s.group.DoChan(accountLockKey(accountID), func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx), accountID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *CredentialService) refresh(ctx context.Context, accountID int64) (string, error) {
	log := slogx.FromContext(ctx).With(slog.Int64("account_id", accountID))

	// 1. Serialise with other replicas and admin edits of this account
	unlock, err := s.Locker.Lock(ctx, accountLockKey(accountID))
	if err != nil {
		return "", err
	}
	defer unlock()

	// 2. Reload; someone may have refreshed while we waited
	acct, err := s.Store.TeamAccounts().GetTeamAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	now := time.Now()
	if acct.BearerFresh(now, BearerSafetyMargin) {
		return acct.BearerToken, nil
	}
	if acct.Credential.IsZero() {
		return "", ErrNoCredentialConfigured
	}

	// 3. Exchange
	ex, err := s.Exchanger.Exchange(ctx, acct.Credential)
	if err != nil {
		log.Warn("credential exchange failed",
			slog.String("kind", string(acct.Credential.Kind)),
			slog.Any("error", err),
		)
		return "", err
	}

	// 4. Persist. Best effort: on failure the old credential stays and the
	// next call exchanges again.
	expiresAt := now.Add(BearerTTL)
	err = s.Store.TeamAccounts().StoreExchange(ctx, accountID, acct.Credential.Value, ex.RotatedCredential, ex.Bearer, expiresAt)
	switch {
	case errors.Is(err, store.ErrStale):
		log.Warn("credential changed during exchange, result not persisted")
	case err != nil:
		log.Error("failed to persist exchanged bearer", slog.Any("error", err))
	default:
		log.Debug("bearer refreshed",
			slog.String("kind", string(acct.Credential.Kind)),
			slog.Bool("rotated", ex.RotatedCredential != ""),
			slog.Time("expires_at", expiresAt),
		)
	}

	return ex.Bearer, nil
}
