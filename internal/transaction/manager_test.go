package transaction_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/Behyna/banking-portal/internal/mocks"
	"github.com/Behyna/banking-portal/internal/transaction"
	"github.com/Behyna/banking-portal/pkg/bankingapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func respondWith(result transaction.Result) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		out := args.Get(3).(*transaction.Result)
		*out = result
	}
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) RecordTransaction(kind, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, kind+":"+outcome)
}

func TestManager_Submit(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("deposit succeeds with the server payload", func(t *testing.T) {
		client := &mocks.BankingClient{}
		rec := &outcomeRecorder{}
		manager := transaction.NewManager(transaction.KindDeposit, client, logger, rec)

		request := transaction.Deposit{AccountID: "acc123", Amount: "250.00"}
		client.On("Post", ctx, "/deposits", request, mock.AnythingOfType("*transaction.Result")).
			Run(respondWith(transaction.Result{TransactionID: "dep1", Status: transaction.ResultPending})).
			Return(nil).Once()

		state, err := manager.Submit(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, transaction.StatusSucceeded, state.Status)
		require.NotNil(t, state.Data)
		assert.Equal(t, "dep1", state.Data.TransactionID)
		assert.Equal(t, transaction.ResultPending, state.Data.Status)
		assert.Empty(t, state.Error)
		assert.Equal(t, state, manager.State())
		assert.Equal(t, []string{"deposit:succeeded"}, rec.outcomes)
		client.AssertExpectations(t)
	})

	t.Run("server message is used verbatim", func(t *testing.T) {
		client := &mocks.BankingClient{}
		manager := transaction.NewManager(transaction.KindDeposit, client, logger, nil)

		request := transaction.Deposit{AccountID: "acc123", Amount: "999999"}
		client.On("Post", ctx, "/deposits", request, mock.Anything).
			Return(&bankingapi.RequestError{StatusCode: 400, Message: "Insufficient funds", Err: bankingapi.ErrRejected}).
			Once()

		state, err := manager.Submit(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, transaction.StatusFailed, state.Status)
		assert.Equal(t, "Insufficient funds", state.Error)
		assert.Nil(t, state.Data)
		client.AssertExpectations(t)
	})

	t.Run("fallback message per kind", func(t *testing.T) {
		testCases := []struct {
			kind    transaction.Kind
			request transaction.Request
			err     error
		}{
			{
				kind:    transaction.KindDeposit,
				request: transaction.Deposit{AccountID: "a", Amount: "1"},
				err:     &bankingapi.RequestError{StatusCode: 500, Err: bankingapi.ErrServerError},
			},
			{
				kind:    transaction.KindWithdrawal,
				request: transaction.Withdrawal{AccountID: "a", Amount: "1"},
				err:     &bankingapi.RequestError{StatusCode: 400, Err: bankingapi.ErrRejected},
			},
			{
				kind:    transaction.KindTransfer,
				request: transaction.Transfer{FromAccountID: "a", ToAccountID: "b", Amount: "1"},
				err:     &bankingapi.RequestError{Err: bankingapi.ErrNetwork},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.kind.String(), func(t *testing.T) {
				client := &mocks.BankingClient{}
				manager := transaction.NewManager(tc.kind, client, logger, nil)
				client.On("Post", ctx, tc.kind.Path(), tc.request, mock.Anything).Return(tc.err).Once()

				state, err := manager.Submit(ctx, tc.request)

				require.NoError(t, err)
				assert.Equal(t, transaction.StatusFailed, state.Status)
				assert.Equal(t, tc.kind.FallbackMessage(), state.Error)
				assert.Nil(t, state.Data)
			})
		}
	})

	t.Run("transfer to an invalid account", func(t *testing.T) {
		client := &mocks.BankingClient{}
		manager := transaction.NewManager(transaction.KindTransfer, client, logger, nil)

		request := transaction.Transfer{FromAccountID: "acc123", ToAccountID: "invalid", Amount: "10.00"}
		client.On("Post", ctx, "/transfers", request, mock.Anything).
			Return(&bankingapi.RequestError{StatusCode: 400, Message: "Invalid destination account"}).Once()

		state, err := manager.Submit(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, transaction.StatusFailed, state.Status)
		assert.Equal(t, "Invalid destination account", state.Error)
	})

	t.Run("resubmission clears prior result before loading", func(t *testing.T) {
		client := &mocks.BankingClient{}
		manager := transaction.NewManager(transaction.KindWithdrawal, client, logger, nil)

		request := transaction.Withdrawal{AccountID: "acc123", Amount: "50.00"}
		client.On("Post", ctx, "/withdrawals", request, mock.Anything).
			Return(&bankingapi.RequestError{StatusCode: 400, Message: "Insufficient balance"}).Twice()
		client.On("Post", ctx, "/withdrawals", request, mock.Anything).
			Run(respondWith(transaction.Result{TransactionID: "wd1", Status: transaction.ResultPending})).
			Return(nil).Once()

		var seen []transaction.State
		unsubscribe := manager.Subscribe(func(s transaction.State) { seen = append(seen, s) })
		defer unsubscribe()

		for i := 0; i < 3; i++ {
			_, err := manager.Submit(ctx, request)
			require.NoError(t, err)
		}

		require.Len(t, seen, 6)
		for i := 0; i < 6; i += 2 {
			assert.Equal(t, transaction.State{Status: transaction.StatusLoading}, seen[i])
		}
		assert.Equal(t, "Insufficient balance", seen[1].Error)
		assert.Equal(t, "Insufficient balance", seen[3].Error)
		assert.Equal(t, transaction.StatusSucceeded, seen[5].Status)
		assert.Empty(t, seen[5].Error)
		assert.Equal(t, "wd1", seen[5].Data.TransactionID)
		client.AssertExpectations(t)
	})

	t.Run("unresolvable endpoint is returned", func(t *testing.T) {
		client := &mocks.BankingClient{}
		rec := &outcomeRecorder{}
		manager := transaction.NewManager(transaction.KindDeposit, client, logger, rec)

		configErr := &endpoint.ConfigError{Source: "document", Reason: "BANKING_SERVICE_URL missing"}
		request := transaction.Deposit{AccountID: "acc123", Amount: "1"}
		client.On("Post", ctx, "/deposits", request, mock.Anything).Return(configErr).Once()

		state, err := manager.Submit(ctx, request)

		assert.ErrorIs(t, err, configErr)
		assert.Equal(t, transaction.StatusFailed, state.Status)
		assert.Equal(t, configErr.Error(), state.Error)
		assert.Equal(t, []string{"deposit:config_error"}, rec.outcomes)
	})

	t.Run("kind mismatch issues no request", func(t *testing.T) {
		client := &mocks.BankingClient{}
		manager := transaction.NewManager(transaction.KindDeposit, client, logger, nil)

		state, err := manager.Submit(ctx, transaction.Transfer{FromAccountID: "a", ToAccountID: "b", Amount: "1"})

		assert.True(t, errors.Is(err, transaction.ErrKindMismatch))
		assert.Equal(t, transaction.StatusIdle, state.Status)
		client.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestManager_Reset(t *testing.T) {
	ctx := context.Background()
	client := &mocks.BankingClient{}
	manager := transaction.NewManager(transaction.KindDeposit, client, zap.NewNop(), nil)

	request := transaction.Deposit{AccountID: "acc123", Amount: "250.00"}
	client.On("Post", ctx, "/deposits", request, mock.Anything).
		Run(respondWith(transaction.Result{TransactionID: "dep1", Status: transaction.ResultCompleted})).
		Return(nil)

	assert.Equal(t, transaction.State{Status: transaction.StatusIdle}, manager.State())

	_, err := manager.Submit(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusSucceeded, manager.State().Status)

	state := manager.Reset()

	assert.Equal(t, transaction.State{Status: transaction.StatusIdle}, state)
	assert.Equal(t, state, manager.State())
}

func TestManager_StateIsASnapshot(t *testing.T) {
	ctx := context.Background()
	client := &mocks.BankingClient{}
	manager := transaction.NewManager(transaction.KindDeposit, client, zap.NewNop(), nil)

	request := transaction.Deposit{AccountID: "acc123", Amount: "250.00"}
	client.On("Post", ctx, "/deposits", request, mock.Anything).
		Run(respondWith(transaction.Result{TransactionID: "dep1", Status: transaction.ResultPending})).
		Return(nil)

	state, err := manager.Submit(ctx, request)
	require.NoError(t, err)

	state.Data.TransactionID = "tampered"

	assert.Equal(t, "dep1", manager.State().Data.TransactionID)
}

func TestManager_OverlappingSubmissions(t *testing.T) {
	ctx := context.Background()
	client := &mocks.BankingClient{}
	manager := transaction.NewManager(transaction.KindDeposit, client, zap.NewNop(), nil)

	slow := transaction.Deposit{AccountID: "acc123", Amount: "1.00"}
	fast := transaction.Deposit{AccountID: "acc123", Amount: "2.00"}

	release := make(chan struct{})
	client.On("Post", ctx, "/deposits", slow, mock.Anything).
		Run(func(args mock.Arguments) {
			<-release
			respondWith(transaction.Result{TransactionID: "slow", Status: transaction.ResultPending})(args)
		}).
		Return(nil).Once()
	client.On("Post", ctx, "/deposits", fast, mock.Anything).
		Run(respondWith(transaction.Result{TransactionID: "fast", Status: transaction.ResultPending})).
		Return(nil).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = manager.Submit(ctx, slow)
	}()

	require.Eventually(t, func() bool { return manager.State().Status == transaction.StatusLoading },
		time.Second, time.Millisecond)

	_, err := manager.Submit(ctx, fast)
	require.NoError(t, err)
	assert.Equal(t, "fast", manager.State().Data.TransactionID)

	close(release)
	<-done

	assert.Equal(t, "slow", manager.State().Data.TransactionID)
}
