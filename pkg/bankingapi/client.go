package bankingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Behyna/banking-portal/pkg/httpclient"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-Id"

	maxErrorBody = 64 << 10
)

// Client is the calling surface every deposit, withdrawal, transfer and
// balance lookup goes through. Paths are relative to the API prefix.
type Client interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
}

type client struct {
	http    httpclient.HTTPClient
	baseURL string
}

type errorBody struct {
	Message string `json:"message"`
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Client {
	return &client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + cfg.prefix(),
	}
}

func (c *client) Get(ctx context.Context, path string, params url.Values, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	resp, err := c.http.Get(ctx, target, headers())
	if err != nil {
		return transportError(err)
	}

	defer resp.Body.Close()

	return decode(resp, out)
}

func (c *client) Post(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return &RequestError{Err: fmt.Errorf("encoding error: %w", err)}
	}

	resp, err := c.http.Post(ctx, c.baseURL+path, &buf, headers())
	if err != nil {
		return transportError(err)
	}

	defer resp.Body.Close()

	return decode(resp, out)
}

func headers() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		HeaderRequestID: uuid.NewString(),
	}
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &RequestError{Err: fmt.Errorf("%w: %w", ErrTimeout, err)}
	}

	return &RequestError{Err: fmt.Errorf("%w: %w", ErrNetwork, err)}
}

func decode(resp *http.Response, out any) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if out == nil {
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RequestError{
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("%w: decoding error: %w", ErrInvalidPayload, err),
			}
		}

		return nil
	}

	var body errorBody
	if data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil && len(data) > 0 {
		// Non-JSON error bodies carry no message; the status alone decides.
		_ = json.Unmarshal(data, &body)
	}

	return &RequestError{
		StatusCode: resp.StatusCode,
		Message:    body.Message,
		Err:        MapStatusToError(resp.StatusCode),
	}
}
