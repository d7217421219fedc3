package balance

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/Behyna/banking-portal/pkg/bankingapi"
	"go.uber.org/zap"
)

const FallbackMessage = "Failed to fetch balance"

// Path is the banking API path serving the balance of accountID.
func Path(accountID string) string {
	return "/accounts/" + url.PathEscape(accountID) + "/balance"
}

const (
	OutcomeFound  = "found"
	OutcomeFailed = "failed"
	OutcomeConfig = "config_error"
)

type Result struct {
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"`
}

// State of the last lookup. After loading ends exactly one of Result and
// Error is set.
type State struct {
	Loading bool    `json:"loading"`
	Result  *Result `json:"result"`
	Error   string  `json:"error,omitempty"`
}

type Recorder interface {
	RecordBalanceQuery(outcome string, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordBalanceQuery(string, time.Duration) {}

type Inquiry struct {
	client   bankingapi.Client
	logger   *zap.Logger
	recorder Recorder

	mu    sync.RWMutex
	state State
}

func NewInquiry(client bankingapi.Client, logger *zap.Logger, recorder Recorder) *Inquiry {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Inquiry{client: client, logger: logger, recorder: recorder}
}

// Query looks up the balance of accountID and replaces the previous outcome.
// A blank accountID is ignored. As with transactions, only an unresolvable
// endpoint is returned as an error.
func (q *Inquiry) Query(ctx context.Context, accountID string) (State, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return q.State(), nil
	}

	start := time.Now()
	q.set(State{Loading: true})

	var result Result
	err := q.client.Get(ctx, Path(accountID), nil, &result)
	if err == nil {
		q.recorder.RecordBalanceQuery(OutcomeFound, time.Since(start))
		q.logger.Debug("Balance retrieved",
			zap.String("accountID", accountID),
			zap.Duration("duration", time.Since(start)))

		return q.set(State{Result: &result}), nil
	}

	var configErr *endpoint.ConfigError
	if errors.As(err, &configErr) {
		q.recorder.RecordBalanceQuery(OutcomeConfig, time.Since(start))
		q.logger.Error("Balance not requested, banking endpoint unavailable", zap.Error(err))
		return q.set(State{Error: configErr.Error()}), err
	}

	message := FallbackMessage
	if serverMessage, ok := bankingapi.ServerMessage(err); ok {
		message = serverMessage
	}

	q.recorder.RecordBalanceQuery(OutcomeFailed, time.Since(start))
	q.logger.Warn("Failed to fetch balance",
		zap.String("accountID", accountID),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))

	return q.set(State{Error: message}), nil
}

func (q *Inquiry) State() State {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.state.clone()
}

func (q *Inquiry) set(next State) State {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state = next
	return next.clone()
}

func (s State) clone() State {
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}
