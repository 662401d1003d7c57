package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

// TeamAPI is the remote team workspace API.
type TeamAPI interface {
	DiscoverAccountID(ctx context.Context, bearer string) (string, error)
	SendInvite(ctx context.Context, bearer, accountID, email string) error
	FetchSeats(ctx context.Context, bearer, accountID string) (domain.SeatSync, error)
	CreateCheckout(ctx context.Context, bearer string) (string, error)
}

// PickAccount applies the greedy policy: among selectable accounts not in
// excluding, the one with the most available seats, ties to the lowest id.
// Accounts with no available seat are never returned.
func PickAccount(accounts []domain.TeamAccount, excluding map[int64]bool) (domain.TeamAccount, bool) {
	var (
		best  domain.TeamAccount
		found bool
	)
	for _, a := range accounts {
		if !a.Selectable() || excluding[a.ID] {
			continue
		}
		avail := a.Available()
		if avail <= 0 {
			continue
		}
		if !found || avail > best.Available() || (avail == best.Available() && a.ID < best.ID) {
			best, found = a, true
		}
	}
	return best, found
}

type LedgerService struct {
	Store       store.Store
	Credentials *CredentialService
	API         TeamAPI
}

// Pick selects a target account from the persisted counters.
func (s *LedgerService) Pick(ctx context.Context, excluding map[int64]bool) (domain.TeamAccount, error) {
	accounts, err := s.Store.TeamAccounts().ListSelectableTeamAccounts(ctx)
	if err != nil {
		return domain.TeamAccount{}, err
	}
	acct, ok := PickAccount(accounts, excluding)
	if !ok {
		return domain.TeamAccount{}, ErrNoCapacity
	}
	return acct, nil
}

// Snapshot is a batch-local copy of the ledger. Allocations are recorded in
// memory only; the caller persists them separately.
type Snapshot struct {
	accounts []domain.TeamAccount
}

func (s *LedgerService) Snapshot(ctx context.Context) (*Snapshot, error) {
	accounts, err := s.Store.TeamAccounts().ListSelectableTeamAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{accounts: accounts}, nil
}

func (s *Snapshot) Pick(excluding map[int64]bool) (domain.TeamAccount, bool) {
	return PickAccount(s.accounts, excluding)
}

// Allocate takes one seat on the account within the snapshot.
func (s *Snapshot) Allocate(id int64) {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i].PendingInvites++
			return
		}
	}
}

// Sync overwrites an account's counters from the remote subscription and
// invite-count endpoints.
func (s *LedgerService) Sync(ctx context.Context, accountID int64) (domain.TeamAccount, error) {
	log := slogx.FromContext(ctx).With(slog.Int64("account_id", accountID))

	// 1. Load and check the account can be addressed remotely
	acct, err := s.Store.TeamAccounts().GetTeamAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TeamAccount{}, ErrNotFound
		}
		return domain.TeamAccount{}, err
	}
	if acct.ExternalAccountID == "" {
		return domain.TeamAccount{}, fmt.Errorf("%w: missing external account id", ErrAccountMisconfigured)
	}

	// 2. Fetch remote counters
	bearer, err := s.Credentials.ValidBearer(ctx, accountID)
	if err != nil {
		return domain.TeamAccount{}, err
	}
	seats, err := s.API.FetchSeats(ctx, bearer, acct.ExternalAccountID)
	if err != nil {
		log.Warn("seat sync failed", slog.Any("error", err))
		return domain.TeamAccount{}, err
	}
	seats.SyncedAt = time.Now()

	// 3. Overwrite the ledger row
	if err := s.Store.TeamAccounts().ApplySync(ctx, accountID, seats); err != nil {
		return domain.TeamAccount{}, err
	}

	log.Info("team account synced",
		slog.Int("seats_in_use", seats.SeatsInUse),
		slog.Int("seats_entitled", seats.SeatsEntitled),
		slog.Int("pending_invites", seats.PendingInvites),
	)

	return s.Store.TeamAccounts().GetTeamAccount(ctx, accountID)
}
