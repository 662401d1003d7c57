package outbound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
	"github.com/go-resty/resty/v2"
)

// ErrTransport covers connection level failures: DNS, refused connections,
// proxy errors and timeouts. Remote 4xx/5xx are not errors.
var ErrTransport = errors.New("outbound: transport failure")

const DefaultTimeout = 20 * time.Second

var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Accept":          "*/*",
	"Accept-Language": "en-US,en;q=0.9",
}

// ProxySource supplies the live proxy configuration. It is consulted on
// every call so admin edits apply without a restart.
type ProxySource interface {
	ProxyConfig(ctx context.Context) (enabled bool, proxies []string, err error)
}

type Request struct {
	Method  string
	URL     string
	Header  map[string]string
	Cookies []*http.Cookie
	Body    any // JSON encoded when non-nil
}

type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

func (r Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

func (r Response) Text() string { return string(r.Body) }

func (r Response) JSON(v any) error { return json.Unmarshal(r.Body, v) }

// Transport sends requests directly or through a round-robin proxy pool.
type Transport struct {
	proxies ProxySource
	timeout time.Duration

	mu      sync.Mutex
	cursor  int
	pool    []string                 // proxy list the clients were built for
	clients map[string]*resty.Client // keyed by proxy URL, "" for direct
}

// New builds a Transport. A nil ProxySource always sends directly.
func New(proxies ProxySource, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Transport{
		proxies: proxies,
		timeout: timeout,
		clients: make(map[string]*resty.Client),
	}
}

// Send issues the request. The proxy cursor advances once per call whether
// or not the call succeeds.
func (t *Transport) Send(ctx context.Context, req Request) (Response, error) {
	proxy, err := t.nextProxy(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	log := slogx.FromContext(ctx)
	attrs := []any{slog.String("method", req.Method), slog.String("host", hostOf(req.URL))}
	if proxy != nil {
		attrs = append(attrs, slog.String("proxy", proxy.Redacted()))
	}
	log.Debug("outbound request", attrs...)

	r := t.client(proxy).R().
		SetContext(ctx).
		SetHeaders(req.Header).
		SetCookies(req.Cookies)
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		log.Warn("outbound request failed", append(attrs, slog.Any("err", err))...)
		return Response{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return Response{
		Status: resp.StatusCode(),
		Body:   resp.Body(),
		Header: resp.Header(),
	}, nil
}

// nextProxy returns the proxy for this call, or nil for a direct call.
func (t *Transport) nextProxy(ctx context.Context) (*url.URL, error) {
	if t.proxies == nil {
		return nil, nil
	}

	enabled, list, err := t.proxies.ProxyConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !enabled {
		list = nil
	}

	t.mu.Lock()
	if !slices.Equal(list, t.pool) {
		t.prune(list)
		t.pool = slices.Clone(list)
	}
	if len(list) == 0 {
		t.mu.Unlock()
		return nil, nil
	}
	idx := t.cursor % len(list)
	t.cursor = (idx + 1) % len(list)
	t.mu.Unlock()

	return ParseProxy(list[idx])
}

// prune drops clients for proxies no longer in list. Caller holds t.mu.
func (t *Transport) prune(list []string) {
	keep := map[string]bool{"": true}
	for _, raw := range list {
		if u, err := ParseProxy(raw); err == nil {
			keep[u.String()] = true
		}
	}
	for key, c := range t.clients {
		if keep[key] {
			continue
		}
		c.GetClient().CloseIdleConnections()
		delete(t.clients, key)
	}
}

func (t *Transport) client(proxy *url.URL) *resty.Client {
	key := ""
	if proxy != nil {
		key = proxy.String()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.clients[key]; ok {
		return c
	}

	c := resty.New().
		SetTimeout(t.timeout).
		SetHeaders(defaultHeaders)
	if proxy != nil {
		c.SetProxy(key)
	} else {
		c.RemoveProxy()
	}
	t.clients[key] = c
	return c
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
