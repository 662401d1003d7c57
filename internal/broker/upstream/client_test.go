package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/outbound"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClient(Config{AuthBaseURL: srv.URL, ChatBaseURL: srv.URL}, outbound.New(nil, 5*time.Second))
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestRefreshExchangeRotation(t *testing.T) {
	var issued atomic.Value
	issued.Store("")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		require.Equal(t, "refresh_token", body["grant_type"])
		require.Equal(t, DefaultClientID, body["client_id"])
		require.Equal(t, DefaultRedirectURI, body["redirect_uri"])

		resp := map[string]string{"access_token": "bearer-for-" + body["refresh_token"].(string)}
		if rt := issued.Load().(string); rt != "" {
			resp["refresh_token"] = rt
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	client := newTestClient(t, mux)
	cred := domain.Credential{Kind: domain.CredentialRefresh, Value: "rt_old"}

	t.Run("no new refresh token leaves credential alone", func(t *testing.T) {
		out, err := client.Exchange(context.Background(), cred)
		require.NoError(t, err)
		require.Equal(t, "bearer-for-rt_old", out.Bearer)
		require.Empty(t, out.RotatedCredential)
	})

	t.Run("same refresh token is not a rotation", func(t *testing.T) {
		issued.Store("rt_old")
		out, err := client.Exchange(context.Background(), cred)
		require.NoError(t, err)
		require.Empty(t, out.RotatedCredential)
	})

	t.Run("new refresh token is returned", func(t *testing.T) {
		issued.Store("rt_new")
		out, err := client.Exchange(context.Background(), cred)
		require.NoError(t, err)
		require.Equal(t, "rt_new", out.RotatedCredential)
	})
}

func TestRefreshExchangeFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		switch decodeBody(t, r)["refresh_token"] {
		case "rt_dead":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"invalid_grant"}`)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
	client := newTestClient(t, mux)

	_, err := client.RefreshBearer(context.Background(), "rt_dead")
	require.ErrorIs(t, err, ErrAuthRejected)

	_, err = client.RefreshBearer(context.Background(), "rt_flaky")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSessionExchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookieName)
		if err != nil || c.Value != "good-session" {
			_, _ = io.WriteString(w, `{}`)
			return
		}
		_, _ = io.WriteString(w, `{"accessToken":"session-bearer"}`)
	})
	client := newTestClient(t, mux)

	out, err := client.Exchange(context.Background(), domain.Credential{Kind: domain.CredentialSession, Value: "good-session"})
	require.NoError(t, err)
	require.Equal(t, "session-bearer", out.Bearer)
	require.Empty(t, out.RotatedCredential, "session credentials never rotate")

	_, err = client.Exchange(context.Background(), domain.Credential{Kind: domain.CredentialSession, Value: "expired"})
	require.ErrorIs(t, err, ErrAuthRejected)
}

func TestStaticBearerPassthrough(t *testing.T) {
	client := NewClient(Config{}, outbound.New(nil, time.Second))

	out, err := client.Exchange(context.Background(), domain.Credential{Kind: domain.CredentialBearer, Value: "Bearer abc.def.ghi"})
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", out.Bearer)

	_, err = client.Exchange(context.Background(), domain.Credential{Kind: "mystery", Value: "x"})
	require.ErrorIs(t, err, domain.ErrUnknownCredentialKind)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(Config{AuthBaseURL: base, ChatBaseURL: base}, outbound.New(nil, time.Second))
	_, err := client.RefreshBearer(context.Background(), "rt_x")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestDiscoverAccountID(t *testing.T) {
	var payload string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /backend-api/accounts/check/v4-2023-04-27", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, payload)
	})
	client := newTestClient(t, mux)

	t.Run("prefers owned team", func(t *testing.T) {
		payload = `{"accounts":{
			"default":{"account":{"plan_type":"team","is_deactivated":false,"account_user_role":"account-owner"}},
			"a-member":{"account":{"plan_type":"team","is_deactivated":false,"account_user_role":"standard-user"}},
			"b-owner":{"account":{"plan_type":"team","is_deactivated":false,"account_user_role":"account-owner"}},
			"c-personal":{"account":{"plan_type":"plus","is_deactivated":false,"account_user_role":"account-owner"}}
		}}`
		id, err := client.DiscoverAccountID(context.Background(), "tok")
		require.NoError(t, err)
		require.Equal(t, "b-owner", id)
	})

	t.Run("falls back to any active team", func(t *testing.T) {
		payload = `{"accounts":{
			"a-dead":{"account":{"plan_type":"team","is_deactivated":true,"account_user_role":"account-owner"}},
			"b-member":{"account":{"plan_type":"team","is_deactivated":false,"account_user_role":"standard-user"}}
		}}`
		id, err := client.DiscoverAccountID(context.Background(), "tok")
		require.NoError(t, err)
		require.Equal(t, "b-member", id)
	})

	t.Run("no team", func(t *testing.T) {
		payload = `{"accounts":{}}`
		_, err := client.DiscoverAccountID(context.Background(), "tok")
		require.ErrorIs(t, err, ErrNoTeamAccount)
	})
}

func TestSendInvite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /backend-api/accounts/{id}/invites", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, r.PathValue("id"), r.Header.Get("Chatgpt-Account-Id"))

		body := decodeBody(t, r)
		require.Equal(t, "standard-user", body["role"])
		require.Equal(t, true, body["resend_emails"])

		emails := body["email_addresses"].([]any)
		if emails[0] == "full@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"detail":"workspace is full"}`)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, mux)

	require.NoError(t, client.SendInvite(context.Background(), "tok", "acct-1", "ok@example.com"))

	err := client.SendInvite(context.Background(), "tok", "acct-1", "full@example.com")
	require.ErrorIs(t, err, ErrRejected)
	require.Contains(t, err.Error(), "workspace is full")
}

func TestFetchSeats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /backend-api/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "acct-1", r.URL.Query().Get("account_id"))
		_, _ = io.WriteString(w, `{"seats_in_use":3,"seats_entitled":5,"active_until":"2026-12-01T00:00:00Z"}`)
	})
	mux.HandleFunc("GET /backend-api/accounts/{id}/invites", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"items":[],"total":2}`)
	})
	client := newTestClient(t, mux)

	sync, err := client.FetchSeats(context.Background(), "tok", "acct-1")
	require.NoError(t, err)
	require.Equal(t, 3, sync.SeatsInUse)
	require.Equal(t, 5, sync.SeatsEntitled)
	require.Equal(t, 2, sync.PendingInvites)
	require.Equal(t, "2026-12-01T00:00:00Z", sync.ActiveUntil)
}

func TestCreateCheckout(t *testing.T) {
	var withURL bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /backend-api/payments/checkout", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		require.Equal(t, "chatgptteamplan", body["plan_name"])
		if withURL {
			_, _ = io.WriteString(w, `{"url":"https://pay.example/session"}`)
			return
		}
		_, _ = io.WriteString(w, `{"checkout_session_id":"cs_123"}`)
	})
	client := newTestClient(t, mux)

	link, err := client.CreateCheckout(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, client.cfg.ChatBaseURL+"/checkout/openai_llc/cs_123", link)

	withURL = true
	link, err = client.CreateCheckout(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "https://pay.example/session", link)
}

func TestClassify(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "user",
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	c := Classify("rt_abcdef")
	require.Equal(t, domain.CredentialRefresh, c.Kind)

	c = Classify("Bearer " + signed)
	require.Equal(t, domain.CredentialBearer, c.Kind)
	require.NotNil(t, c.ExpiresAt)
	require.True(t, c.ExpiresAt.Equal(exp))

	c = Classify("eyJhbGciOiJkaXIiLCJlbmMiOiJBMjU2R0NNIn0..iv.ciphertext.tag")
	require.Equal(t, domain.CredentialSession, c.Kind)

	require.Equal(t, domain.CredentialNone, Classify("  ").Kind)
}
