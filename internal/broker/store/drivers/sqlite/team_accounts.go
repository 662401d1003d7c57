package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store/drivers/sqlite/gen"
)

type teamAccountsRepo struct {
	q *gen.Queries
}

func (r *teamAccountsRepo) CreateTeamAccount(ctx context.Context, a domain.TeamAccount) (int64, error) {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	return r.q.CreateTeamAccount(ctx, gen.CreateTeamAccountParams{
		Name:              a.Name,
		CredentialKind:    string(a.Credential.Kind),
		Credential:        a.Credential.Value,
		BearerToken:       a.BearerToken,
		BearerExpiresAt:   mapOptionalMillis(a.BearerExpiresAt),
		ExternalAccountID: a.ExternalAccountID,
		SeatsEntitled:     int64(a.SeatsEntitled),
		SeatsInUse:        int64(a.SeatsInUse),
		PendingInvites:    int64(a.PendingInvites),
		Enabled:           a.Enabled,
		CreatedAt:         toMillis(a.CreatedAt),
		UpdatedAt:         toMillis(now),
	})
}

func (r *teamAccountsRepo) GetTeamAccount(ctx context.Context, id int64) (domain.TeamAccount, error) {
	row, err := r.q.GetTeamAccount(ctx, id)
	if err != nil {
		return domain.TeamAccount{}, mapNotFound(err)
	}
	return mapTeamAccount(row), nil
}

func (r *teamAccountsRepo) ListTeamAccounts(ctx context.Context) ([]domain.TeamAccount, error) {
	rows, err := r.q.ListTeamAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TeamAccount, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTeamAccount(row))
	}
	return out, nil
}

func (r *teamAccountsRepo) ListSelectableTeamAccounts(ctx context.Context) ([]domain.TeamAccount, error) {
	rows, err := r.q.ListSelectableTeamAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TeamAccount, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTeamAccount(row))
	}
	return out, nil
}

func (r *teamAccountsRepo) UpdateTeamAccount(ctx context.Context, a domain.TeamAccount) error {
	return expectOne(r.q.UpdateTeamAccount(ctx, gen.UpdateTeamAccountParams{
		Name:              a.Name,
		CredentialKind:    string(a.Credential.Kind),
		Credential:        a.Credential.Value,
		BearerToken:       a.BearerToken,
		BearerExpiresAt:   mapOptionalMillis(a.BearerExpiresAt),
		ExternalAccountID: a.ExternalAccountID,
		SeatsEntitled:     int64(a.SeatsEntitled),
		Enabled:           a.Enabled,
		UpdatedAt:         toMillis(time.Now()),
		ID:                a.ID,
	}))
}

func (r *teamAccountsRepo) StoreExchange(
	ctx context.Context,
	id int64,
	previous string,
	rotated string,
	bearer string,
	expiresAt time.Time,
) error {
	n, err := r.q.StoreExchange(ctx, gen.StoreExchangeParams{
		BearerToken:     bearer,
		BearerExpiresAt: sql.NullInt64{Int64: toMillis(expiresAt), Valid: true},
		Rotated:         rotated,
		UpdatedAt:       toMillis(time.Now()),
		ID:              id,
		Previous:        previous,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrStale
	}
	return nil
}

func (r *teamAccountsRepo) IncrementPendingInvites(ctx context.Context, id int64) error {
	return expectOne(r.q.IncrementPendingInvites(ctx, gen.IncrementPendingInvitesParams{
		UpdatedAt: toMillis(time.Now()),
		ID:        id,
	}))
}

func (r *teamAccountsRepo) ApplySync(ctx context.Context, id int64, sync domain.SeatSync) error {
	return expectOne(r.q.ApplySync(ctx, gen.ApplySyncParams{
		SeatsInUse:     int64(sync.SeatsInUse),
		SeatsEntitled:  int64(sync.SeatsEntitled),
		PendingInvites: int64(sync.PendingInvites),
		ActiveUntil:    sync.ActiveUntil,
		LastSyncAt:     sql.NullInt64{Int64: toMillis(sync.SyncedAt), Valid: true},
		UpdatedAt:      toMillis(time.Now()),
		ID:             id,
	}))
}

func (r *teamAccountsRepo) DeleteTeamAccount(ctx context.Context, id int64) error {
	return expectOne(r.q.DeleteTeamAccount(ctx, id))
}
