package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
)

// DefaultSeatsEntitled is assumed for new accounts until the first sync.
const DefaultSeatsEntitled = 5

// AccountInput carries an admin create or update. Nil pointers keep the
// stored value on update.
type AccountInput struct {
	Name          string `validate:"required,max=100"`
	SeatsEntitled *int   `validate:"omitempty,min=0,max=10000"`
	Enabled       *bool

	// Credential replaces the stored credential when non-nil and non-empty.
	Credential *domain.Credential

	// ExternalAccountID empty means keep the stored id, auto-detecting it
	// when a new credential is supplied.
	ExternalAccountID string
}

// AccountResult reports the write together with the outcome of the
// immediate credential exchange. AutoError is informational; the write
// itself succeeded.
type AccountResult struct {
	Account      domain.TeamAccount
	AutoDetected bool
	AutoError    string
}

type AccountService struct {
	Store       store.Store
	Credentials *CredentialService
	API         TeamAPI
}

func (s *AccountService) normalize(in AccountInput) (AccountInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ExternalAccountID = strings.TrimSpace(in.ExternalAccountID)
	if err := validate.Struct(in); err != nil {
		return in, validationError("%v", err)
	}
	if in.Credential != nil {
		cred := domain.Credential{Kind: in.Credential.Kind, Value: strings.TrimSpace(in.Credential.Value)}
		switch {
		case cred.Value == "":
			in.Credential = nil
		case cred.Kind == domain.CredentialNone:
			return in, validationError("credential kind is required")
		default:
			in.Credential = &cred
		}
	}
	return in, nil
}

func (s *AccountService) Create(ctx context.Context, in AccountInput) (AccountResult, error) {
	in, err := s.normalize(in)
	if err != nil {
		return AccountResult{}, err
	}

	acct := domain.TeamAccount{
		Name:              in.Name,
		ExternalAccountID: in.ExternalAccountID,
		SeatsEntitled:     DefaultSeatsEntitled,
		Enabled:           true,
	}
	if in.SeatsEntitled != nil {
		acct.SeatsEntitled = *in.SeatsEntitled
	}
	if in.Enabled != nil {
		acct.Enabled = *in.Enabled
	}
	if in.Credential != nil {
		acct.Credential = *in.Credential
	}

	id, err := s.Store.TeamAccounts().CreateTeamAccount(ctx, acct)
	if err != nil {
		return AccountResult{}, err
	}
	slogx.FromContext(ctx).Info("team account created",
		slog.Int64("account_id", id),
		slog.String("name", acct.Name),
		slog.String("kind", string(acct.Credential.Kind)),
	)

	res := AccountResult{}
	if in.Credential != nil {
		res.AutoDetected, res.AutoError = s.prime(ctx, id, in.ExternalAccountID == "")
	}
	if res.Account, err = s.Get(ctx, id); err != nil {
		return AccountResult{}, err
	}
	return res, nil
}

func (s *AccountService) Update(ctx context.Context, id int64, in AccountInput) (AccountResult, error) {
	in, err := s.normalize(in)
	if err != nil {
		return AccountResult{}, err
	}

	// 1. Apply the edit under the account lock so it does not interleave
	// with a bearer refresh
	unlock, err := s.Credentials.Locker.Lock(ctx, accountLockKey(id))
	if err != nil {
		return AccountResult{}, err
	}
	acct, err := s.Get(ctx, id)
	if err != nil {
		unlock()
		return AccountResult{}, err
	}

	acct.Name = in.Name
	if in.SeatsEntitled != nil {
		acct.SeatsEntitled = *in.SeatsEntitled
	}
	if in.Enabled != nil {
		acct.Enabled = *in.Enabled
	}
	if in.ExternalAccountID != "" {
		acct.ExternalAccountID = in.ExternalAccountID
	}
	credentialChanged := in.Credential != nil && *in.Credential != acct.Credential
	if credentialChanged {
		acct.Credential = *in.Credential
		acct.BearerToken = ""
		acct.BearerExpiresAt = nil
	}

	err = s.Store.TeamAccounts().UpdateTeamAccount(ctx, acct)
	unlock()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AccountResult{}, ErrNotFound
		}
		return AccountResult{}, err
	}
	slogx.FromContext(ctx).Info("team account updated",
		slog.Int64("account_id", id),
		slog.Bool("credential_changed", credentialChanged),
	)

	// 2. Exchange the new credential right away. The lock is released
	// first since ValidBearer takes it again.
	res := AccountResult{}
	if credentialChanged {
		res.AutoDetected, res.AutoError = s.prime(ctx, id, in.ExternalAccountID == "")
	}
	if res.Account, err = s.Get(ctx, id); err != nil {
		return AccountResult{}, err
	}
	return res, nil
}

// prime exchanges the account's credential and, when detect is set, looks
// up the external account id. Failures are returned as text for the admin.
func (s *AccountService) prime(ctx context.Context, id int64, detect bool) (bool, string) {
	log := slogx.FromContext(ctx).With(slog.Int64("account_id", id))

	bearer, err := s.Credentials.ValidBearer(ctx, id)
	if err != nil {
		log.Warn("initial credential exchange failed", slog.Any("error", err))
		return false, err.Error()
	}
	if !detect {
		return false, ""
	}

	externalID, err := s.API.DiscoverAccountID(ctx, bearer)
	if err != nil {
		log.Warn("account id detection failed", slog.Any("error", err))
		return false, err.Error()
	}

	unlock, err := s.Credentials.Locker.Lock(ctx, accountLockKey(id))
	if err != nil {
		return false, err.Error()
	}
	defer unlock()

	acct, err := s.Store.TeamAccounts().GetTeamAccount(ctx, id)
	if err != nil {
		return false, err.Error()
	}
	acct.ExternalAccountID = externalID
	if err := s.Store.TeamAccounts().UpdateTeamAccount(ctx, acct); err != nil {
		return false, err.Error()
	}

	log.Info("external account id detected", slog.String("external_account_id", externalID))
	return true, ""
}

func (s *AccountService) Get(ctx context.Context, id int64) (domain.TeamAccount, error) {
	acct, err := s.Store.TeamAccounts().GetTeamAccount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.TeamAccount{}, ErrNotFound
	}
	return acct, err
}

func (s *AccountService) List(ctx context.Context) ([]domain.TeamAccount, error) {
	return s.Store.TeamAccounts().ListTeamAccounts(ctx)
}

// Status lists enabled accounts for the public team status view.
func (s *AccountService) Status(ctx context.Context) ([]domain.TeamAccount, error) {
	all, err := s.Store.TeamAccounts().ListTeamAccounts(ctx)
	if err != nil {
		return nil, err
	}
	enabled := make([]domain.TeamAccount, 0, len(all))
	for _, a := range all {
		if a.Enabled {
			enabled = append(enabled, a)
		}
	}
	return enabled, nil
}

// Delete refuses while invite codes still reference the account.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	n, err := s.Store.InviteCodes().CountInviteCodesForAccount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d invite codes reference it", ErrAccountInUse, n)
	}

	if err := s.Store.TeamAccounts().DeleteTeamAccount(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	slogx.FromContext(ctx).Info("team account deleted", slog.Int64("account_id", id))
	return nil
}

// Checkout creates a payment link for the account's owner.
func (s *AccountService) Checkout(ctx context.Context, id int64) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	bearer, err := s.Credentials.ValidBearer(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.API.CreateCheckout(ctx, bearer)
	if err != nil {
		return "", err
	}
	slogx.FromContext(ctx).Info("checkout link created", slog.Int64("account_id", id))
	return url, nil
}
