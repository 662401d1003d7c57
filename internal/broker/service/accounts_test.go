package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/upstream"
	"github.com/stretchr/testify/require"
)

func TestAccountCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges credential and detects account id", func(t *testing.T) {
		env := newTestEnv(t)

		res, err := env.accounts.Create(ctx, AccountInput{
			Name:       "  Team One ",
			Credential: &domain.Credential{Kind: domain.CredentialSession, Value: "session-cookie"},
		})
		require.NoError(t, err)
		require.True(t, res.AutoDetected)
		require.Empty(t, res.AutoError)

		acct := res.Account
		require.Equal(t, "Team One", acct.Name)
		require.Equal(t, DefaultSeatsEntitled, acct.SeatsEntitled)
		require.True(t, acct.Enabled)
		require.Equal(t, "team-discovered", acct.ExternalAccountID)
		require.Equal(t, "bearer-1", acct.BearerToken)
		require.EqualValues(t, 1, env.exchanger.calls.Load())
	})

	t.Run("explicit account id skips detection", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.discover = ""

		res, err := env.accounts.Create(ctx, AccountInput{
			Name:              "Team Two",
			Credential:        &domain.Credential{Kind: domain.CredentialBearer, Value: "eyJ..."},
			ExternalAccountID: "team-explicit",
		})
		require.NoError(t, err)
		require.False(t, res.AutoDetected)
		require.Empty(t, res.AutoError)
		require.Equal(t, "team-explicit", res.Account.ExternalAccountID)
	})

	t.Run("exchange failure is reported but the account is kept", func(t *testing.T) {
		env := newTestEnv(t)
		env.exchanger.failErr = upstream.ErrAuthRejected

		res, err := env.accounts.Create(ctx, AccountInput{
			Name:       "Team Three",
			Credential: &domain.Credential{Kind: domain.CredentialRefresh, Value: "rt_bad"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, res.AutoError)
		require.NotZero(t, res.Account.ID)
		require.Empty(t, res.Account.ExternalAccountID)
	})

	t.Run("without credential", func(t *testing.T) {
		env := newTestEnv(t)
		seats := 9
		res, err := env.accounts.Create(ctx, AccountInput{Name: "Bare", SeatsEntitled: &seats})
		require.NoError(t, err)
		require.Equal(t, 9, res.Account.SeatsEntitled)
		require.Zero(t, env.exchanger.calls.Load())
	})

	t.Run("validation", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Create(ctx, AccountInput{Name: "   "})
		require.ErrorIs(t, err, ErrValidation)

		_, err = env.accounts.Create(ctx, AccountInput{
			Name:       "kindless",
			Credential: &domain.Credential{Value: "something"},
		})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestAccountUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.addAccount(t, "A", 5, 0)

	_, err := env.credentials.ValidBearer(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "bearer-1", env.account(t, id).BearerToken)

	t.Run("plain edit keeps the cached bearer", func(t *testing.T) {
		disabled := false
		res, err := env.accounts.Update(ctx, id, AccountInput{Name: "A2", Enabled: &disabled})
		require.NoError(t, err)
		require.Equal(t, "A2", res.Account.Name)
		require.False(t, res.Account.Enabled)
		require.Equal(t, "bearer-1", res.Account.BearerToken)
		require.Equal(t, "team-A", res.Account.ExternalAccountID)
	})

	t.Run("credential change re-exchanges and re-detects", func(t *testing.T) {
		res, err := env.accounts.Update(ctx, id, AccountInput{
			Name:       "A2",
			Credential: &domain.Credential{Kind: domain.CredentialRefresh, Value: "rt_new"},
		})
		require.NoError(t, err)
		require.True(t, res.AutoDetected)
		require.Equal(t, "rt_new", res.Account.Credential.Value)
		require.Equal(t, "bearer-2", res.Account.BearerToken)
		require.Equal(t, "team-discovered", res.Account.ExternalAccountID)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := env.accounts.Update(ctx, id+50, AccountInput{Name: "x"})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAccountDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	used := env.addAccount(t, "used", 5, 0)
	free := env.addAccount(t, "free", 5, 0)
	env.addCode(t, "BOUND2345WXY", &used)

	err := env.accounts.Delete(ctx, used)
	require.ErrorIs(t, err, ErrAccountInUse)
	require.Equal(t, KindAccountInUse, ErrorKind(err))

	require.NoError(t, env.accounts.Delete(ctx, free))
	require.ErrorIs(t, env.accounts.Delete(ctx, free), ErrNotFound)
}

func TestAccountStatusAndCheckout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	on := env.addAccount(t, "on", 5, 1)
	off := env.addAccount(t, "off", 5, 0)
	acct := env.account(t, off)
	acct.Enabled = false
	require.NoError(t, env.store.TeamAccounts().UpdateTeamAccount(ctx, acct))

	status, err := env.accounts.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 1)
	require.Equal(t, on, status[0].ID)
	require.Equal(t, 1, status[0].SeatsInUse)

	url, err := env.accounts.Checkout(ctx, on)
	require.NoError(t, err)
	require.Equal(t, "https://pay.example/checkout/bearer-1", url)

	_, err = env.accounts.Checkout(ctx, on+99)
	require.ErrorIs(t, err, ErrNotFound)
}
