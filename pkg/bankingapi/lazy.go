package bankingapi

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/Behyna/banking-portal/pkg/httpclient"
)

// BaseURLFunc yields the banking service base URL. It is called until it
// succeeds once.
type BaseURLFunc func(ctx context.Context) (string, error)

var _ Client = (*LazyClient)(nil)

// LazyClient builds the bound Client on first use and shares it afterwards.
// Errors from BaseURLFunc are returned unchanged and leave the client unbuilt.
type LazyClient struct {
	resolve BaseURLFunc
	cfg     Config
	http    httpclient.HTTPClient

	mu    sync.Mutex
	bound atomic.Pointer[client]
}

func NewLazyClient(resolve BaseURLFunc, cfg Config, httpClient httpclient.HTTPClient) *LazyClient {
	return &LazyClient{resolve: resolve, cfg: cfg, http: httpClient}
}

// Ready forces construction of the bound client.
func (l *LazyClient) Ready(ctx context.Context) error {
	_, err := l.client(ctx)
	return err
}

func (l *LazyClient) Get(ctx context.Context, path string, params url.Values, out any) error {
	c, err := l.client(ctx)
	if err != nil {
		return err
	}
	return c.Get(ctx, path, params, out)
}

func (l *LazyClient) Post(ctx context.Context, path string, body any, out any) error {
	c, err := l.client(ctx)
	if err != nil {
		return err
	}
	return c.Post(ctx, path, body, out)
}

func (l *LazyClient) client(ctx context.Context) (*client, error) {
	if c := l.bound.Load(); c != nil {
		return c, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if c := l.bound.Load(); c != nil {
		return c, nil
	}

	baseURL, err := l.resolve(ctx)
	if err != nil {
		return nil, err
	}

	cfg := l.cfg
	cfg.BaseURL = baseURL
	c := NewClient(cfg, l.http).(*client)
	l.bound.Store(c)

	return c, nil
}
