package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCredentialKind(t *testing.T) {
	tests := map[string]CredentialKind{
		"":        CredentialNone,
		"RT":      CredentialRefresh,
		"refresh": CredentialRefresh,
		"st":      CredentialSession,
		"Session": CredentialSession,
		"AT":      CredentialBearer,
		"bearer":  CredentialBearer,
	}
	for in, want := range tests {
		got, err := ParseCredentialKind(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseCredentialKind("cookie")
	require.ErrorIs(t, err, ErrUnknownCredentialKind)
}

func TestTeamAccountAvailability(t *testing.T) {
	a := TeamAccount{SeatsEntitled: 5, SeatsInUse: 3, PendingInvites: 0, Enabled: true, ExternalAccountID: "acc-1"}
	require.Equal(t, 2, a.Available())
	require.True(t, a.Selectable())

	a.PendingInvites = 4
	require.Equal(t, -2, a.Available())

	a.ExternalAccountID = ""
	require.False(t, a.Selectable())
}

func TestBearerFresh(t *testing.T) {
	now := time.Now()
	soon := now.Add(30 * time.Second)
	later := now.Add(10 * time.Minute)

	require.False(t, TeamAccount{}.BearerFresh(now, time.Minute))
	require.False(t, TeamAccount{BearerToken: "b", BearerExpiresAt: &soon}.BearerFresh(now, time.Minute))
	require.True(t, TeamAccount{BearerToken: "b", BearerExpiresAt: &later}.BearerFresh(now, time.Minute))
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "ABCD1234WXYZ", NormalizeCode("  abcd1234wxyz\n"))
}

func TestRealm(t *testing.T) {
	require.Equal(t, "admin_session", RealmAdmin.CookieName())
	require.Equal(t, "access_session", RealmAccess.CookieName())
	require.Equal(t, 24*time.Hour, RealmAdmin.TTL())
	require.Equal(t, 7*24*time.Hour, RealmAccess.TTL())
	require.False(t, Realm("root").Valid())
}
