package bankingapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Behyna/banking-portal/pkg/bankingapi"
	"github.com/Behyna/banking-portal/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transactionId":"wd1","status":"PENDING"}`))
	}))
	defer server.Close()

	hc := httpclient.NewWithClient(server.Client())

	t.Run("resolves once and shares the client", func(t *testing.T) {
		var calls atomic.Int32
		resolve := func(ctx context.Context) (string, error) {
			calls.Add(1)
			return server.URL, nil
		}

		lazy := bankingapi.NewLazyClient(resolve, bankingapi.Config{}, hc)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var result transactionResult
				assert.NoError(t, lazy.Post(context.Background(), "/withdrawals", depositBody{AccountID: "a", Amount: "1"}, &result))
				assert.Equal(t, "wd1", result.TransactionID)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("failed resolution is retried", func(t *testing.T) {
		configErr := errors.New("endpoint unavailable")
		var calls atomic.Int32
		resolve := func(ctx context.Context) (string, error) {
			if calls.Add(1) == 1 {
				return "", configErr
			}
			return server.URL, nil
		}

		lazy := bankingapi.NewLazyClient(resolve, bankingapi.Config{}, hc)

		err := lazy.Ready(context.Background())
		assert.ErrorIs(t, err, configErr)

		err = lazy.Get(context.Background(), "/accounts/account1/balance", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())

		require.NoError(t, lazy.Ready(context.Background()))
		assert.Equal(t, int32(2), calls.Load())
	})
}
