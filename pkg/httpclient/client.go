package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

var _ HTTPClient = (*httpClient)(nil)

type HTTPClient interface {
	Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error)
	Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration `mapstructure:"timeout"`
}

type httpClient struct {
	client *http.Client
}

func NewHTTPClient(cfg Config) HTTPClient {
	return &httpClient{client: &http.Client{Timeout: cfg.Timeout}}
}

// NewWithClient lets callers supply their own *http.Client, e.g. one from httptest.
func NewWithClient(client *http.Client) HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{client: client}
}

func (c *httpClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, url, nil, headers)
}

func (c *httpClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, url, body, headers)
}

func (c *httpClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

func (c *httpClient) send(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.client.Do(req)
}
