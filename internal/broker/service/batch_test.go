package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/seatbroker/internal/broker/upstream"
	"github.com/stretchr/testify/require"
)

func TestSmartInviteSpreadsOverAccounts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a := env.addAccount(t, "A", 5, 3) // 2 free
	b := env.addAccount(t, "B", 5, 4) // 1 free

	report, err := env.batch.SmartInvite(ctx, []string{
		"one@example.com", "two@example.com", "ONE@example.com", "three@example.com", "four@example.com", "",
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 4)
	require.Equal(t, 3, report.Succeeded)
	require.Equal(t, 1, report.Failed)

	require.Equal(t, a, report.Results[0].AccountID)
	require.ErrorIs(t, report.Results[3].Err, ErrNoCapacity)

	require.Len(t, env.api.invited("team-A"), 2)
	require.Len(t, env.api.invited("team-B"), 1)
	require.Equal(t, 2, env.account(t, a).PendingInvites)
	require.Equal(t, 1, env.account(t, b).PendingInvites)
}

func TestSmartInviteSkipsRejectedAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.addAccount(t, "A", 5, 0)
	b := env.addAccount(t, "B", 5, 2)
	env.api.setFailure("team-A", upstream.ErrAuthRejected)

	report, err := env.batch.SmartInvite(ctx, []string{"one@example.com", "two@example.com"})
	require.NoError(t, err)
	require.Equal(t, 2, report.Succeeded)
	for _, res := range report.Results {
		require.Equal(t, b, res.AccountID)
	}
	require.Empty(t, env.api.invited("team-A"))
}

func TestSmartInviteWithoutCapacity(t *testing.T) {
	env := newTestEnv(t)
	env.addAccount(t, "A", 1, 1)

	_, err := env.batch.SmartInvite(context.Background(), []string{"one@example.com"})
	require.ErrorIs(t, err, ErrNoCapacity)
}

func TestInviteToAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.addAccount(t, "A", 5, 0)

	report, err := env.batch.InviteToAccount(ctx, a, []string{"one@example.com", "bogus", "two@example.com"})
	require.NoError(t, err)
	require.Equal(t, 2, report.Succeeded)
	require.Equal(t, 1, report.Failed)
	require.ErrorIs(t, report.Results[1].Err, ErrValidation)
	require.Equal(t, 2, env.account(t, a).PendingInvites)

	_, err = env.batch.InviteToAccount(ctx, a+99, []string{"one@example.com"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.batch.InviteToAccount(ctx, a, nil)
	require.ErrorIs(t, err, ErrValidation)
}
