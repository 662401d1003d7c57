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

const (
	MaxCodesPerBatch = 50

	generateAttempts = 3
)

// CodeView is an invite code joined with the name of its account.
type CodeView struct {
	domain.InviteCode
	AccountName string
}

type CodeService struct {
	Store store.Store
}

// Generate creates count codes, optionally bound to an account. The batch
// is inserted all-or-none; a collision regenerates the whole batch.
func (s *CodeService) Generate(ctx context.Context, count int, accountID *int64) ([]string, error) {
	if count < 1 || count > MaxCodesPerBatch {
		return nil, validationError("count must be between 1 and %d", MaxCodesPerBatch)
	}
	if accountID != nil {
		if _, err := s.Store.TeamAccounts().GetTeamAccount(ctx, *accountID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, validationError("team account %d does not exist", *accountID)
			}
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		codes, err := newCodes(count, accountID)
		if err != nil {
			return nil, err
		}

		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			return tx.InviteCodes().CreateInviteCodes(ctx, codes)
		})
		if errors.Is(err, store.ErrAlreadyExists) && attempt < generateAttempts {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("insert invite codes: %w", err)
		}

		out := make([]string, len(codes))
		for i, c := range codes {
			out[i] = c.Code
		}
		slogx.FromContext(ctx).Info("invite codes generated", slog.Int("count", len(out)))
		return out, nil
	}
}

func newCodes(count int, accountID *int64) ([]domain.InviteCode, error) {
	seen := make(map[string]bool, count)
	codes := make([]domain.InviteCode, 0, count)
	now := time.Now()
	for len(codes) < count {
		code, err := cryptox.GenerateCode()
		if err != nil {
			return nil, err
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, domain.InviteCode{Code: code, TeamAccountID: accountID, CreatedAt: now})
	}
	return codes, nil
}

// List returns every code newest first with its account name.
func (s *CodeService) List(ctx context.Context) ([]CodeView, error) {
	codes, err := s.Store.InviteCodes().ListInviteCodes(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.Store.TeamAccounts().ListTeamAccounts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	views := make([]CodeView, len(codes))
	for i, c := range codes {
		views[i] = CodeView{InviteCode: c}
		if c.TeamAccountID != nil {
			views[i].AccountName = names[*c.TeamAccountID]
		}
	}
	return views, nil
}

func (s *CodeService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.InviteCodes().DeleteInviteCode(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteUsed removes redeemed codes. Codes with a redemption in flight are
// kept.
func (s *CodeService) DeleteUsed(ctx context.Context) (int64, error) {
	n, err := s.Store.InviteCodes().DeleteUsedInviteCodes(ctx)
	if err != nil {
		return 0, err
	}
	slogx.FromContext(ctx).Info("used invite codes deleted", slog.Int64("count", n))
	return n, nil
}

// ExportUnused returns the redeemable codes oldest first.
func (s *CodeService) ExportUnused(ctx context.Context) ([]string, error) {
	codes, err := s.Store.InviteCodes().ListUnusedInviteCodes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = c.Code
	}
	return out, nil
}
