package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/pkg/idx"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

// DefaultReservationLease bounds how long a code may stay reserved before
// housekeeping gives it back.
const DefaultReservationLease = 5 * time.Minute

var validate = validator.New()

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", validationError("email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", validationError("invalid email %q", email)
	}
	return email, nil
}

type RedeemRequest struct {
	Code  string
	Email string

	// PreferredAccountID is honoured only for codes without a bound account.
	PreferredAccountID *int64
}

type Redemption struct {
	Code        string
	Email       string
	AccountID   int64
	AccountName string
}

// RedeemService exchanges an invite code for a seat. A code moves
// unused -> reserved -> used, or back to unused when the invite fails.
type RedeemService struct {
	Store       store.Store
	Ledger      *LedgerService
	Credentials *CredentialService
	API         TeamAPI
	Lease       time.Duration
}

// Check reports whether a code exists and is still redeemable, without
// consuming it.
func (s *RedeemService) Check(ctx context.Context, rawCode string) (domain.InviteCode, error) {
	code := domain.NormalizeCode(rawCode)
	if code == "" {
		return domain.InviteCode{}, validationError("code is required")
	}

	ic, err := s.Store.InviteCodes().GetInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InviteCode{}, ErrNotFound
		}
		return domain.InviteCode{}, err
	}
	if ic.Used {
		return domain.InviteCode{}, ErrAlreadyUsed
	}
	return ic, nil
}

func (s *RedeemService) Redeem(ctx context.Context, req RedeemRequest) (Redemption, error) {
	// 1. Validate input
	code := domain.NormalizeCode(req.Code)
	if code == "" {
		return Redemption{}, validationError("code is required")
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return Redemption{}, err
	}

	ctx = slogx.With(ctx, slog.String("code", code))
	log := slogx.FromContext(ctx)

	// 2. Reserve the code with a single conditional update
	lease := s.Lease
	if lease <= 0 {
		lease = DefaultReservationLease
	}
	reservation := string(idx.New())
	now := time.Now()
	reserved, err := s.Store.InviteCodes().ReserveInviteCode(ctx, code, email, reservation, now, now.Add(lease))
	if err != nil {
		log.Error("failed to reserve invite code", slog.Any("error", err))
		return Redemption{}, err
	}
	if !reserved {
		if _, err := s.Store.InviteCodes().GetInviteCode(ctx, code); errors.Is(err, store.ErrNotFound) {
			return Redemption{}, ErrNotFound
		}
		log.Info("invite code already used")
		return Redemption{}, ErrAlreadyUsed
	}

	// 3. Grant the seat; any failure gives the code back
	acct, err := s.grant(ctx, code, reservation, email, lease, req.PreferredAccountID)
	if err != nil {
		s.release(ctx, code, reservation, err)
		return Redemption{}, err
	}

	// 4. Finalise the code and record the allocation together
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.InviteCodes().FinalizeInviteCode(ctx, code, reservation, acct.ID); err != nil {
			return err
		}
		return tx.TeamAccounts().IncrementPendingInvites(ctx, acct.ID)
	})
	switch {
	case errors.Is(err, store.ErrStale):
		// The lease ran out between the invite and the write and the code
		// has been handed on. The invite stands but the code is not ours.
		log.Error("invite sent after reservation was lost",
			slog.Bool("reconcile", true),
			slog.Int64("account_id", acct.ID),
			slog.String("email", email),
		)
		return Redemption{}, ErrReservationExpired

	case err != nil:
		// The invite went out; keep the code spent even if the ledger
		// increment is lost.
		ferr := s.Store.InviteCodes().FinalizeInviteCode(context.WithoutCancel(ctx), code, reservation, acct.ID)
		log.Error("invite sent but redemption not recorded",
			slog.Bool("reconcile", true),
			slog.Int64("account_id", acct.ID),
			slog.String("email", email),
			slog.Bool("code_finalized", ferr == nil),
			slog.Any("error", err),
		)
	}

	log.Info("invite code redeemed",
		slog.Int64("account_id", acct.ID),
		slog.String("account", acct.Name),
	)

	return Redemption{
		Code:        code,
		Email:       email,
		AccountID:   acct.ID,
		AccountName: acct.Name,
	}, nil
}

// grant resolves the target account and sends the remote invite. The lease
// is renewed right before the invite and the invite must finish inside the
// first three quarters of it, leaving the rest for the finalize write.
func (s *RedeemService) grant(
	ctx context.Context,
	code, reservation, email string,
	lease time.Duration,
	preferred *int64,
) (domain.TeamAccount, error) {
	ic, err := s.Store.InviteCodes().GetInviteCode(ctx, code)
	if err != nil {
		return domain.TeamAccount{}, err
	}

	acct, err := s.resolveAccount(ctx, ic.TeamAccountID, preferred)
	if err != nil {
		return domain.TeamAccount{}, err
	}

	bearer, err := s.Credentials.ValidBearer(ctx, acct.ID)
	if err != nil {
		return domain.TeamAccount{}, err
	}

	now := time.Now()
	leaseUntil := now.Add(lease)
	renewed, err := s.Store.InviteCodes().ExtendReservation(ctx, code, reservation, now, leaseUntil)
	if err != nil {
		return domain.TeamAccount{}, err
	}
	if !renewed {
		slogx.FromContext(ctx).Warn("reservation lease expired before invite",
			slog.Int64("account_id", acct.ID),
		)
		return domain.TeamAccount{}, ErrReservationExpired
	}

	sendCtx, cancel := context.WithDeadline(ctx, leaseUntil.Add(-lease/4))
	defer cancel()

	if err := s.API.SendInvite(sendCtx, bearer, acct.ExternalAccountID, email); err != nil {
		slogx.FromContext(ctx).Warn("remote invite failed",
			slog.Int64("account_id", acct.ID),
			slog.Any("error", err),
		)
		if sendCtx.Err() != nil && ctx.Err() == nil {
			return domain.TeamAccount{}, ErrReservationExpired
		}
		return domain.TeamAccount{}, err
	}
	return acct, nil
}

func (s *RedeemService) resolveAccount(ctx context.Context, bound, preferred *int64) (domain.TeamAccount, error) {
	var acct domain.TeamAccount
	switch {
	case bound != nil:
		a, err := s.loadAccount(ctx, *bound)
		if err != nil {
			return domain.TeamAccount{}, err
		}
		if !a.Enabled {
			return domain.TeamAccount{}, fmt.Errorf("%w: bound account is disabled", ErrAccountMisconfigured)
		}
		acct = a

	case preferred != nil:
		a, err := s.loadAccount(ctx, *preferred)
		if err != nil {
			return domain.TeamAccount{}, err
		}
		if !a.Enabled {
			return domain.TeamAccount{}, fmt.Errorf("%w: account is disabled", ErrAccountMisconfigured)
		}
		if a.Available() <= 0 {
			return domain.TeamAccount{}, ErrNoCapacity
		}
		acct = a

	default:
		a, err := s.Ledger.Pick(ctx, nil)
		if err != nil {
			return domain.TeamAccount{}, err
		}
		acct = a
	}

	if acct.ExternalAccountID == "" {
		return domain.TeamAccount{}, fmt.Errorf("%w: missing external account id", ErrAccountMisconfigured)
	}
	return acct, nil
}

func (s *RedeemService) loadAccount(ctx context.Context, id int64) (domain.TeamAccount, error) {
	a, err := s.Store.TeamAccounts().GetTeamAccount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.TeamAccount{}, ErrNotFound
	}
	return a, err
}

// release reverts a reservation after a failed grant. Only the holder of
// the reservation token can release it. A failed release leaves the code
// stuck until its lease runs out and is logged for reconciliation.
func (s *RedeemService) release(ctx context.Context, code, reservation string, cause error) {
	log := slogx.FromContext(ctx)

	released, err := s.Store.InviteCodes().ReleaseInviteCode(context.WithoutCancel(ctx), code, reservation)
	switch {
	case err != nil:
		log.Error("failed to release invite code reservation",
			slog.Bool("reconcile", true),
			slog.Any("cause", cause),
			slog.Any("error", err),
		)
	case !released:
		log.Warn("invite code reservation no longer held",
			slog.Any("cause", cause),
		)
	default:
		log.Debug("invite code reservation released", slog.String("kind", ErrorKind(cause)))
	}
}
