package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// BankingClient mocks bankingapi.Client. Tests fill the out parameter through
// Run callbacks.
type BankingClient struct {
	mock.Mock
}

func (c *BankingClient) Get(ctx context.Context, path string, params url.Values, out any) error {
	args := c.Called(ctx, path, params, out)
	return args.Error(0)
}

func (c *BankingClient) Post(ctx context.Context, path string, body any, out any) error {
	args := c.Called(ctx, path, body, out)
	return args.Error(0)
}
