package sqlite

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/stretchr/testify/require"
)

var _ store.Store = (*Store)(nil)
var _ store.Tx = (*txStore)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createAccount(t *testing.T, s *Store, name string) int64 {
	t.Helper()

	id, err := s.TeamAccounts().CreateTeamAccount(context.Background(), domain.TeamAccount{
		Name:              name,
		Credential:        domain.Credential{Kind: domain.CredentialRefresh, Value: "rt_" + name},
		ExternalAccountID: "acct-" + name,
		SeatsEntitled:     5,
		Enabled:           true,
	})
	require.NoError(t, err)
	return id
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestTeamAccountsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id := createAccount(t, s, "alpha")

	got, err := s.TeamAccounts().GetTeamAccount(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alpha", got.Name)
	require.Equal(t, domain.CredentialRefresh, got.Credential.Kind)
	require.Equal(t, "rt_alpha", got.Credential.Value)
	require.Equal(t, 5, got.SeatsEntitled)
	require.True(t, got.Enabled)
	require.Nil(t, got.BearerExpiresAt)
	require.Nil(t, got.LastSyncAt)

	_, err = s.TeamAccounts().GetTeamAccount(ctx, id+100)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListSelectableSkipsDisabledAndUnbound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	live := createAccount(t, s, "live")

	disabled := createAccount(t, s, "off")
	acct, err := s.TeamAccounts().GetTeamAccount(ctx, disabled)
	require.NoError(t, err)
	acct.Enabled = false
	require.NoError(t, s.TeamAccounts().UpdateTeamAccount(ctx, acct))

	_, err = s.TeamAccounts().CreateTeamAccount(ctx, domain.TeamAccount{Name: "unbound", Enabled: true, SeatsEntitled: 5})
	require.NoError(t, err)

	all, err := s.TeamAccounts().ListTeamAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	selectable, err := s.TeamAccounts().ListSelectableTeamAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, selectable, 1)
	require.Equal(t, live, selectable[0].ID)
}

func TestStoreExchange(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := s.TeamAccounts()
	id := createAccount(t, s, "ex")
	expires := time.Now().Add(time.Hour).Truncate(time.Millisecond)

	t.Run("keeps credential when not rotated", func(t *testing.T) {
		require.NoError(t, repo.StoreExchange(ctx, id, "rt_ex", "", "bearer-1", expires))

		got, err := repo.GetTeamAccount(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "rt_ex", got.Credential.Value)
		require.Equal(t, "bearer-1", got.BearerToken)
		require.NotNil(t, got.BearerExpiresAt)
		require.True(t, got.BearerExpiresAt.Equal(expires))
	})

	t.Run("replaces credential when rotated", func(t *testing.T) {
		require.NoError(t, repo.StoreExchange(ctx, id, "rt_ex", "rt_ex2", "bearer-2", expires))

		got, err := repo.GetTeamAccount(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "rt_ex2", got.Credential.Value)
		require.Equal(t, "bearer-2", got.BearerToken)
	})

	t.Run("stale previous credential is rejected", func(t *testing.T) {
		err := repo.StoreExchange(ctx, id, "rt_ex", "rt_ex3", "bearer-3", expires)
		require.ErrorIs(t, err, store.ErrStale)

		got, err := repo.GetTeamAccount(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "rt_ex2", got.Credential.Value)
		require.Equal(t, "bearer-2", got.BearerToken)
	})
}

func TestApplySyncAndIncrement(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := s.TeamAccounts()
	id := createAccount(t, s, "sync")

	require.NoError(t, repo.IncrementPendingInvites(ctx, id))
	require.NoError(t, repo.IncrementPendingInvites(ctx, id))

	got, err := repo.GetTeamAccount(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 2, got.PendingInvites)
	require.Equal(t, 3, got.Available())

	syncedAt := time.Now().Truncate(time.Millisecond)
	require.NoError(t, repo.ApplySync(ctx, id, domain.SeatSync{
		SeatsInUse:     4,
		SeatsEntitled:  6,
		PendingInvites: 1,
		ActiveUntil:    "2026-12-01T00:00:00Z",
		SyncedAt:       syncedAt,
	}))

	got, err = repo.GetTeamAccount(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 4, got.SeatsInUse)
	require.Equal(t, 6, got.SeatsEntitled)
	require.Equal(t, 1, got.PendingInvites)
	require.Equal(t, "2026-12-01T00:00:00Z", got.ActiveUntil)
	require.NotNil(t, got.LastSyncAt)
	require.True(t, got.LastSyncAt.Equal(syncedAt))

	require.ErrorIs(t, repo.IncrementPendingInvites(ctx, id+1), store.ErrNotFound)
}

func TestInviteCodeLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	codes := s.InviteCodes()
	accountID := createAccount(t, s, "codes")

	require.NoError(t, codes.CreateInviteCodes(ctx, []domain.InviteCode{
		{Code: "ABCD1234WXYZ"},
		{Code: "ZZZZ2222YYYY"},
	}))

	now := time.Now()

	ok, err := codes.ReserveInviteCode(ctx, "ABCD1234WXYZ", "user@example.com", "r-user", now, now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	got, err := codes.GetInviteCode(ctx, "ABCD1234WXYZ")
	require.NoError(t, err)
	require.True(t, got.Used)
	require.True(t, got.Reserved())
	require.Equal(t, "user@example.com", got.UsedEmail)

	ok, err = codes.ReserveInviteCode(ctx, "ABCD1234WXYZ", "other@example.com", "r-other", now, now.Add(time.Minute))
	require.NoError(t, err)
	require.False(t, ok, "second reservation must lose")

	// Finalized codes are not release-able and are counted for the account.
	require.NoError(t, codes.FinalizeInviteCode(ctx, "ABCD1234WXYZ", "r-user", accountID))
	released, err := codes.ReleaseInviteCode(ctx, "ABCD1234WXYZ", "r-user")
	require.NoError(t, err)
	require.False(t, released)
	require.ErrorIs(t, codes.FinalizeInviteCode(ctx, "ABCD1234WXYZ", "r-user", accountID), store.ErrStale)

	count, err := codes.CountInviteCodesForAccount(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	unused, err := codes.ListUnusedInviteCodes(ctx)
	require.NoError(t, err)
	require.Len(t, unused, 1)
	require.Equal(t, "ZZZZ2222YYYY", unused[0].Code)

	all, err := codes.ListInviteCodes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "ZZZZ2222YYYY", all[0].Code, "newest first")

	n, err := codes.DeleteUsedInviteCodes(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = codes.GetInviteCode(ctx, "ABCD1234WXYZ")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestReleaseInviteCodeRestoresUnused(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	codes := s.InviteCodes()

	require.NoError(t, codes.CreateInviteCodes(ctx, []domain.InviteCode{{Code: "RELEASEME234"}}))

	now := time.Now()
	ok, err := codes.ReserveInviteCode(ctx, "RELEASEME234", "a@example.com", "r-1", now, now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	released, err := codes.ReleaseInviteCode(ctx, "RELEASEME234", "r-1")
	require.NoError(t, err)
	require.True(t, released)

	got, err := codes.GetInviteCode(ctx, "RELEASEME234")
	require.NoError(t, err)
	require.False(t, got.Used)
	require.Empty(t, got.UsedEmail)
	require.Nil(t, got.UsedAt)
	require.Nil(t, got.ReservedUntil)

	released, err = codes.ReleaseInviteCode(ctx, "RELEASEME234", "r-1")
	require.NoError(t, err)
	require.False(t, released)
}

func TestReleaseExpiredReservations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	codes := s.InviteCodes()

	require.NoError(t, codes.CreateInviteCodes(ctx, []domain.InviteCode{
		{Code: "EXPIRED22222"},
		{Code: "LIVELEASE333"},
	}))

	now := time.Now()
	_, err := codes.ReserveInviteCode(ctx, "EXPIRED22222", "a@example.com", "r-a", now.Add(-time.Hour), now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = codes.ReserveInviteCode(ctx, "LIVELEASE333", "b@example.com", "r-b", now, now.Add(time.Hour))
	require.NoError(t, err)

	released, err := codes.ReleaseExpiredReservations(ctx, now)
	require.NoError(t, err)
	require.Equal(t, []string{"EXPIRED22222"}, released)

	live, err := codes.GetInviteCode(ctx, "LIVELEASE333")
	require.NoError(t, err)
	require.True(t, live.Reserved())
}

func TestReservationTokenOwnsTheCode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	codes := s.InviteCodes()
	accountID := createAccount(t, s, "owner")

	require.NoError(t, codes.CreateInviteCodes(ctx, []domain.InviteCode{{Code: "HANDOVER2345"}}))

	// The first holder's lease runs out and housekeeping hands the code on.
	now := time.Now()
	ok, err := codes.ReserveInviteCode(ctx, "HANDOVER2345", "a@example.com", "r-first", now.Add(-time.Hour), now.Add(-time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = codes.ExtendReservation(ctx, "HANDOVER2345", "r-first", now, now.Add(time.Minute))
	require.NoError(t, err)
	require.False(t, ok, "an expired lease cannot be extended")

	released, err := codes.ReleaseExpiredReservations(ctx, now)
	require.NoError(t, err)
	require.Equal(t, []string{"HANDOVER2345"}, released)

	ok, err = codes.ReserveInviteCode(ctx, "HANDOVER2345", "b@example.com", "r-second", now, now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	// The first holder can no longer touch the row.
	released2, err := codes.ReleaseInviteCode(ctx, "HANDOVER2345", "r-first")
	require.NoError(t, err)
	require.False(t, released2)
	require.ErrorIs(t, codes.FinalizeInviteCode(ctx, "HANDOVER2345", "r-first", accountID), store.ErrStale)
	ok, err = codes.ExtendReservation(ctx, "HANDOVER2345", "r-first", now, now.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, ok)

	got, err := codes.GetInviteCode(ctx, "HANDOVER2345")
	require.NoError(t, err)
	require.True(t, got.Reserved())
	require.Equal(t, "b@example.com", got.UsedEmail)

	// The current holder extends and finalizes.
	later := now.Add(10 * time.Minute)
	ok, err = codes.ExtendReservation(ctx, "HANDOVER2345", "r-second", now, later)
	require.NoError(t, err)
	require.True(t, ok)
	got, err = codes.GetInviteCode(ctx, "HANDOVER2345")
	require.NoError(t, err)
	require.NotNil(t, got.ReservedUntil)
	require.WithinDuration(t, later, *got.ReservedUntil, time.Millisecond)

	require.NoError(t, codes.FinalizeInviteCode(ctx, "HANDOVER2345", "r-second", accountID))
	got, err = codes.GetInviteCode(ctx, "HANDOVER2345")
	require.NoError(t, err)
	require.True(t, got.Used)
	require.False(t, got.Reserved())
	require.Equal(t, "b@example.com", got.UsedEmail)
}

func TestCreateInviteCodesRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.InviteCodes().CreateInviteCodes(ctx, []domain.InviteCode{{Code: "DUPLICATE234"}}))

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.InviteCodes().CreateInviteCodes(ctx, []domain.InviteCode{
			{Code: "FRESHCODE234"},
			{Code: "DUPLICATE234"},
		})
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.InviteCodes().GetInviteCode(ctx, "FRESHCODE234")
	require.ErrorIs(t, err, store.ErrNotFound, "batch must roll back")
}

func TestConcurrentReservationHasOneWinner(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.InviteCodes().CreateInviteCodes(ctx, []domain.InviteCode{{Code: "RACECODE2345"}}))

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	now := time.Now()
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := s.InviteCodes().ReserveInviteCode(ctx, "RACECODE2345", "x@example.com", fmt.Sprintf("r-%d", i), now, now.Add(time.Minute))
			if err == nil && ok {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()
	require.EqualValues(t, 1, wins.Load())
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := s.Sessions()
	now := time.Now().Truncate(time.Millisecond)

	require.NoError(t, repo.CreateSession(ctx, domain.Session{
		Realm: domain.RealmAdmin, TokenHash: "h1", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, repo.CreateSession(ctx, domain.Session{
		Realm: domain.RealmAccess, TokenHash: "h1", CreatedAt: now, ExpiresAt: now.Add(-time.Second),
	}))

	got, err := repo.GetSession(ctx, domain.RealmAdmin, "h1")
	require.NoError(t, err)
	require.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))

	n, err := repo.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = repo.GetSession(ctx, domain.RealmAccess, "h1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, repo.DeleteRealmSessions(ctx, domain.RealmAdmin))
	_, err = repo.GetSession(ctx, domain.RealmAdmin, "h1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := s.Settings()

	_, err := repo.GetSetting(ctx, domain.SettingSiteTitle)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, repo.InsertSettingIfAbsent(ctx, domain.SettingSiteTitle, "first"))
	require.NoError(t, repo.InsertSettingIfAbsent(ctx, domain.SettingSiteTitle, "second"))

	v, err := repo.GetSetting(ctx, domain.SettingSiteTitle)
	require.NoError(t, err)
	require.Equal(t, "first", v)

	require.NoError(t, repo.SetSetting(ctx, domain.SettingSiteTitle, "third"))
	all, err := repo.ListSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{domain.SettingSiteTitle: "third"}, all)

	require.NoError(t, repo.DeleteSetting(ctx, domain.SettingSiteTitle))
	_, err = repo.GetSetting(ctx, domain.SettingSiteTitle)
	require.ErrorIs(t, err, store.ErrNotFound)
}
