package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store/drivers/sqlite/gen"
)

type inviteCodesRepo struct {
	q *gen.Queries
}

// CreateInviteCodes expects to run inside a transaction when given more than
// one code; the caller owns atomicity.
func (r *inviteCodesRepo) CreateInviteCodes(ctx context.Context, codes []domain.InviteCode) error {
	now := time.Now()
	for _, c := range codes {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		err := r.q.CreateInviteCode(ctx, gen.CreateInviteCodeParams{
			Code:          c.Code,
			TeamAccountID: mapOptionalID(c.TeamAccountID),
			CreatedAt:     toMillis(createdAt),
		})
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *inviteCodesRepo) GetInviteCode(ctx context.Context, code string) (domain.InviteCode, error) {
	row, err := r.q.GetInviteCode(ctx, code)
	if err != nil {
		return domain.InviteCode{}, mapNotFound(err)
	}
	return mapInviteCode(row), nil
}

func (r *inviteCodesRepo) ListInviteCodes(ctx context.Context) ([]domain.InviteCode, error) {
	rows, err := r.q.ListInviteCodes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InviteCode, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapInviteCode(row))
	}
	return out, nil
}

func (r *inviteCodesRepo) ListUnusedInviteCodes(ctx context.Context) ([]domain.InviteCode, error) {
	rows, err := r.q.ListUnusedInviteCodes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InviteCode, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapInviteCode(row))
	}
	return out, nil
}

func (r *inviteCodesRepo) ReserveInviteCode(
	ctx context.Context,
	code, email, reservation string,
	now, leaseUntil time.Time,
) (bool, error) {
	n, err := r.q.ReserveInviteCode(ctx, gen.ReserveInviteCodeParams{
		UsedEmail:     email,
		UsedAt:        sql.NullInt64{Int64: toMillis(now), Valid: true},
		ReservedUntil: sql.NullInt64{Int64: toMillis(leaseUntil), Valid: true},
		Reservation:   reservation,
		Code:          code,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *inviteCodesRepo) ExtendReservation(
	ctx context.Context,
	code, reservation string,
	now, leaseUntil time.Time,
) (bool, error) {
	n, err := r.q.ExtendReservation(ctx, gen.ExtendReservationParams{
		ReservedUntil:   sql.NullInt64{Int64: toMillis(leaseUntil), Valid: true},
		Code:            code,
		Reservation:     reservation,
		ReservedUntil_2: sql.NullInt64{Int64: toMillis(now), Valid: true},
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *inviteCodesRepo) FinalizeInviteCode(ctx context.Context, code, reservation string, accountID int64) error {
	n, err := r.q.FinalizeInviteCode(ctx, gen.FinalizeInviteCodeParams{
		TeamAccountID: sql.NullInt64{Int64: accountID, Valid: true},
		Code:          code,
		Reservation:   reservation,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrStale
	}
	return nil
}

func (r *inviteCodesRepo) ReleaseInviteCode(ctx context.Context, code, reservation string) (bool, error) {
	n, err := r.q.ReleaseInviteCode(ctx, gen.ReleaseInviteCodeParams{
		Code:        code,
		Reservation: reservation,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *inviteCodesRepo) ReleaseExpiredReservations(ctx context.Context, now time.Time) ([]string, error) {
	return r.q.ReleaseExpiredReservations(ctx, sql.NullInt64{Int64: toMillis(now), Valid: true})
}

func (r *inviteCodesRepo) CountInviteCodesForAccount(ctx context.Context, accountID int64) (int, error) {
	n, err := r.q.CountInviteCodesForAccount(ctx, sql.NullInt64{Int64: accountID, Valid: true})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *inviteCodesRepo) DeleteInviteCode(ctx context.Context, id int64) error {
	return expectOne(r.q.DeleteInviteCode(ctx, id))
}

func (r *inviteCodesRepo) DeleteUsedInviteCodes(ctx context.Context) (int64, error) {
	return r.q.DeleteUsedInviteCodes(ctx)
}
