package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store/drivers/sqlite/gen"
)

type sessionsRepo struct {
	q *gen.Queries
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	return mapConstraint(r.q.CreateSession(ctx, gen.CreateSessionParams{
		Realm:     string(s.Realm),
		TokenHash: s.TokenHash,
		CreatedAt: toMillis(s.CreatedAt),
		ExpiresAt: toMillis(s.ExpiresAt),
	}))
}

func (r *sessionsRepo) GetSession(
	ctx context.Context,
	realm domain.Realm,
	tokenHash string,
) (domain.Session, error) {
	row, err := r.q.GetSession(ctx, gen.GetSessionParams{
		Realm:     string(realm),
		TokenHash: tokenHash,
	})
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return mapSession(row), nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, realm domain.Realm, tokenHash string) error {
	return r.q.DeleteSession(ctx, gen.DeleteSessionParams{
		Realm:     string(realm),
		TokenHash: tokenHash,
	})
}

func (r *sessionsRepo) DeleteRealmSessions(ctx context.Context, realm domain.Realm) error {
	return r.q.DeleteRealmSessions(ctx, string(realm))
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredSessions(ctx, toMillis(now))
}
