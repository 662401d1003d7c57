package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

// MaxBatchEmails caps one batch request.
const MaxBatchEmails = 200

type BatchResult struct {
	Email       string
	AccountID   int64
	AccountName string
	Err         error
}

func (r BatchResult) OK() bool { return r.Err == nil }

type BatchReport struct {
	Results   []BatchResult
	Succeeded int
	Failed    int
}

func (r *BatchReport) add(res BatchResult) {
	r.Results = append(r.Results, res)
	if res.OK() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// BatchService invites many emails without invite codes. It is admin only.
type BatchService struct {
	Store       store.Store
	Ledger      *LedgerService
	Credentials *CredentialService
	API         TeamAPI
}

func splitEmails(emails []string) ([]string, error) {
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		key := strings.ToLower(e)
		if e == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, validationError("at least one email is required")
	}
	if len(out) > MaxBatchEmails {
		return nil, validationError("at most %d emails per batch", MaxBatchEmails)
	}
	return out, nil
}

// SmartInvite spreads the emails over accounts greedily. Allocations are
// tracked in a batch-local ledger snapshot so one batch never hands out
// more seats than the snapshot showed free. Accounts whose credential fails
// are skipped for the rest of the batch.
func (s *BatchService) SmartInvite(ctx context.Context, emails []string) (BatchReport, error) {
	log := slogx.FromContext(ctx)

	list, err := splitEmails(emails)
	if err != nil {
		return BatchReport{}, err
	}

	snap, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return BatchReport{}, err
	}
	if _, ok := snap.Pick(nil); !ok {
		return BatchReport{}, ErrNoCapacity
	}

	var report BatchReport
	broken := map[int64]bool{}
	bearers := map[int64]string{}

	for _, raw := range list {
		email, err := normalizeEmail(raw)
		if err != nil {
			report.add(BatchResult{Email: raw, Err: err})
			continue
		}

		res := BatchResult{Email: email, Err: ErrNoCapacity}
		for {
			acct, ok := snap.Pick(broken)
			if !ok {
				break
			}
			res.AccountID, res.AccountName = acct.ID, acct.Name

			bearer, ok := bearers[acct.ID]
			if !ok {
				bearer, err = s.Credentials.ValidBearer(ctx, acct.ID)
				if err != nil {
					log.Warn("skipping account for batch",
						slog.Int64("account_id", acct.ID), slog.Any("error", err))
					broken[acct.ID] = true
					res.Err = err
					continue
				}
				bearers[acct.ID] = bearer
			}

			err = s.API.SendInvite(ctx, bearer, acct.ExternalAccountID, email)
			if errors.Is(err, ErrUpstreamAuth) {
				broken[acct.ID] = true
				res.Err = err
				continue
			}
			res.Err = err
			if err == nil {
				snap.Allocate(acct.ID)
				s.recordAllocation(ctx, acct.ID)
			}
			break
		}
		report.add(res)
	}

	log.Info("smart batch invite finished",
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

// InviteToAccount sends every email to one named account.
func (s *BatchService) InviteToAccount(ctx context.Context, accountID int64, emails []string) (BatchReport, error) {
	log := slogx.FromContext(ctx).With(slog.Int64("account_id", accountID))

	list, err := splitEmails(emails)
	if err != nil {
		return BatchReport{}, err
	}

	acct, err := s.Store.TeamAccounts().GetTeamAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return BatchReport{}, ErrNotFound
		}
		return BatchReport{}, err
	}
	if !acct.Enabled {
		return BatchReport{}, fmt.Errorf("%w: account is disabled", ErrAccountMisconfigured)
	}
	if acct.ExternalAccountID == "" {
		return BatchReport{}, fmt.Errorf("%w: missing external account id", ErrAccountMisconfigured)
	}

	bearer, err := s.Credentials.ValidBearer(ctx, accountID)
	if err != nil {
		return BatchReport{}, err
	}

	var report BatchReport
	for _, raw := range list {
		email, err := normalizeEmail(raw)
		if err != nil {
			report.add(BatchResult{Email: raw, Err: err})
			continue
		}

		err = s.API.SendInvite(ctx, bearer, acct.ExternalAccountID, email)
		if err == nil {
			s.recordAllocation(ctx, accountID)
		}
		report.add(BatchResult{Email: email, AccountID: acct.ID, AccountName: acct.Name, Err: err})
	}

	log.Info("batch invite finished",
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *BatchService) recordAllocation(ctx context.Context, accountID int64) {
	if err := s.Store.TeamAccounts().IncrementPendingInvites(ctx, accountID); err != nil {
		slogx.FromContext(ctx).Error("invite sent but pending count not updated",
			slog.Bool("reconcile", true),
			slog.Int64("account_id", accountID),
			slog.Any("error", err),
		)
	}
}
