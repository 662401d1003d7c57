package outbound

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticProxies struct {
	enabled bool
	list    []string
	err     error
}

func (s staticProxies) ProxyConfig(context.Context) (bool, []string, error) {
	return s.enabled, s.list, s.err
}

// fakeProxy answers every forwarded request itself and records the hit.
func fakeProxy(t *testing.T, name string, hits *[]string, mu *sync.Mutex) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		*hits = append(*hits, name)
		mu.Unlock()
		_, _ = io.WriteString(w, name)
	}))
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestProxyRotationRoundRobin(t *testing.T) {
	var (
		mu   sync.Mutex
		hits []string
	)
	h1 := fakeProxy(t, "h1", &hits, &mu)
	h2 := fakeProxy(t, "h2", &hits, &mu)

	tr := New(staticProxies{enabled: true, list: []string{h1, h2}}, 0)

	for i := 0; i < 3; i++ {
		resp, err := tr.Send(context.Background(), Request{
			Method: http.MethodGet,
			URL:    "http://upstream.invalid/ping",
		})
		require.NoError(t, err)
		require.True(t, resp.OK())
	}

	require.Equal(t, []string{"h1", "h2", "h1"}, hits)
}

func TestCursorAdvancesOnFailure(t *testing.T) {
	var (
		mu   sync.Mutex
		hits []string
	)
	good := fakeProxy(t, "good", &hits, &mu)

	dead := httptest.NewServer(http.NotFoundHandler())
	deadAddr := strings.TrimPrefix(dead.URL, "http://")
	dead.Close()

	tr := New(staticProxies{enabled: true, list: []string{deadAddr, good}}, 0)

	_, err := tr.Send(context.Background(), Request{Method: http.MethodGet, URL: "http://upstream.invalid/"})
	require.ErrorIs(t, err, ErrTransport)

	_, err = tr.Send(context.Background(), Request{Method: http.MethodGet, URL: "http://upstream.invalid/"})
	require.NoError(t, err)
	require.Equal(t, []string{"good"}, hits)
}

func TestDirectWhenDisabledOrEmpty(t *testing.T) {
	var calls int
	var mu sync.Mutex
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(target.Close)

	for _, src := range []ProxySource{
		nil,
		staticProxies{enabled: false, list: []string{"127.0.0.1:1"}},
		staticProxies{enabled: true},
	} {
		resp, err := New(src, 0).Send(context.Background(), Request{Method: http.MethodGet, URL: target.URL})
		require.NoError(t, err)
		require.Equal(t, http.StatusNoContent, resp.Status)
	}
	require.Equal(t, 3, calls)
}

func TestRemoteErrorsAreResponses(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "yes", r.Header.Get("X-Test"))
		c, err := r.Cookie("sid")
		require.NoError(t, err)
		require.Equal(t, "abc", c.Value)

		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"hello":"world"}`, string(body))

		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `{"detail":"boom"}`)
	}))
	t.Cleanup(target.Close)

	resp, err := New(nil, 0).Send(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     target.URL,
		Header:  map[string]string{"X-Test": "yes"},
		Cookies: []*http.Cookie{{Name: "sid", Value: "abc"}},
		Body:    map[string]string{"hello": "world"},
	})
	require.NoError(t, err)
	require.False(t, resp.OK())
	require.Equal(t, http.StatusBadGateway, resp.Status)

	var out struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, resp.JSON(&out))
	require.Equal(t, "boom", out.Detail)
}

// editableProxies lets a test change the list between calls.
type editableProxies struct {
	mu   sync.Mutex
	list []string
}

func (e *editableProxies) set(list ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = list
}

func (e *editableProxies) ProxyConfig(context.Context) (bool, []string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.list) > 0, e.list, nil
}

func (t *Transport) clientKeys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]string, 0, len(t.clients))
	for k := range t.clients {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestClientsFollowProxyListEdits(t *testing.T) {
	var (
		mu   sync.Mutex
		hits []string
	)
	h1 := fakeProxy(t, "h1", &hits, &mu)
	h2 := fakeProxy(t, "h2", &hits, &mu)
	h3 := fakeProxy(t, "h3", &hits, &mu)

	src := &editableProxies{}
	tr := New(src, 0)
	send := func() {
		t.Helper()
		_, err := tr.Send(context.Background(), Request{Method: http.MethodGet, URL: "http://upstream.invalid/"})
		require.NoError(t, err)
	}

	src.set(h1, h2)
	send()
	send()
	require.ElementsMatch(t, []string{"http://" + h1, "http://" + h2}, tr.clientKeys())

	src.set(h3)
	send()
	require.Equal(t, []string{"http://" + h3}, tr.clientKeys())

	// Repeated calls with an unchanged list reuse the same client.
	send()
	require.Equal(t, []string{"http://" + h3}, tr.clientKeys())

	src.set()
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(target.Close)
	_, err := tr.Send(context.Background(), Request{Method: http.MethodGet, URL: target.URL})
	require.NoError(t, err)
	require.Equal(t, []string{""}, tr.clientKeys())

	require.Equal(t, []string{"h1", "h2", "h3", "h3"}, hits)
}

func TestProxySourceErrorIsTransportError(t *testing.T) {
	tr := New(staticProxies{err: errors.New("settings unavailable")}, 0)
	_, err := tr.Send(context.Background(), Request{Method: http.MethodGet, URL: "http://upstream.invalid/"})
	require.ErrorIs(t, err, ErrTransport)
}

func TestParseProxy(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "h1:80", want: "http://h1:80"},
		{in: " proxy.local:3128 ", want: "http://proxy.local:3128"},
		{in: "h2:81:alice:s3cret", want: "http://alice:s3cret@h2:81"},
		{in: "http://bob:pw@h3:8080", want: "http://bob:pw@h3:8080"},
		{in: "socks5://h4:1080", want: "socks5://h4:1080"},
		{in: "ftp://h5:21", wantErr: true},
		{in: "justahost", wantErr: true},
		{in: "a:b:c", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := ParseProxy(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidProxy)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, u.String())
		})
	}
}

func TestSplitProxyList(t *testing.T) {
	require.Equal(t, []string{"h1:80", "h2:81"}, SplitProxyList("h1:80\n\n  h2:81  \n"))
	require.Nil(t, SplitProxyList(" \n"))
}
