package transaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/Behyna/banking-portal/pkg/bankingapi"
	"go.uber.org/zap"
)

var ErrKindMismatch = errors.New("KIND_MISMATCH")

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeConfig    = "config_error"
)

type Recorder interface {
	RecordTransaction(kind, outcome string, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordTransaction(string, string, time.Duration) {}

// Manager drives submissions of a single kind through
// idle -> loading -> succeeded | failed.
//
// Overlapping submissions are not rejected. Each one clears the state when it
// starts and the last response to arrive decides the terminal state.
type Manager struct {
	kind     Kind
	client   bankingapi.Client
	logger   *zap.Logger
	recorder Recorder

	mu        sync.RWMutex
	state     State
	observers map[int]func(State)
	nextID    int
}

func NewManager(kind Kind, client bankingapi.Client, logger *zap.Logger, recorder Recorder) *Manager {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Manager{
		kind:      kind,
		client:    client,
		logger:    logger.With(zap.String("kind", kind.String())),
		recorder:  recorder,
		state:     State{Status: StatusIdle},
		observers: make(map[int]func(State)),
	}
}

func (m *Manager) Kind() Kind {
	return m.kind
}

// Submit posts req and returns the terminal state it produced. Failures
// reported by the banking service end up in the state, not in the returned
// error. The error is non-nil only when the request could not be attempted:
// a kind mismatch, or an unresolvable endpoint (*endpoint.ConfigError).
func (m *Manager) Submit(ctx context.Context, req Request) (State, error) {
	if req == nil || req.Kind() != m.kind {
		return m.State(), fmt.Errorf("%w: %s manager", ErrKindMismatch, m.kind)
	}

	start := time.Now()
	m.transition(State{Status: StatusLoading})

	var result Result
	err := m.client.Post(ctx, m.kind.Path(), req, &result)
	if err == nil {
		m.recorder.RecordTransaction(m.kind.String(), OutcomeSucceeded, time.Since(start))
		m.logger.Info("Transaction submitted",
			zap.String("transactionID", result.TransactionID),
			zap.String("status", string(result.Status)),
			zap.Duration("duration", time.Since(start)))

		return m.transition(State{Status: StatusSucceeded, Data: &result}), nil
	}

	var configErr *endpoint.ConfigError
	if errors.As(err, &configErr) {
		m.recorder.RecordTransaction(m.kind.String(), OutcomeConfig, time.Since(start))
		m.logger.Error("Transaction not sent, banking endpoint unavailable", zap.Error(err))

		return m.transition(State{Status: StatusFailed, Error: configErr.Error()}), err
	}

	message := m.kind.FallbackMessage()
	if serverMessage, ok := bankingapi.ServerMessage(err); ok {
		message = serverMessage
	}

	m.recorder.RecordTransaction(m.kind.String(), OutcomeFailed, time.Since(start))
	m.logger.Warn("Transaction rejected",
		zap.String("message", message),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))

	return m.transition(State{Status: StatusFailed, Error: message}), nil
}

// Reset returns the manager to idle and drops any result or error.
func (m *Manager) Reset() State {
	return m.transition(State{Status: StatusIdle})
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// Subscribe registers fn to be called with every new state. Calls happen
// outside the manager's lock, in transition order per goroutine.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

func (m *Manager) transition(next State) State {
	m.mu.Lock()
	m.state = next
	snapshot := next.clone()
	observers := make([]func(State), 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot.clone())
	}

	return snapshot
}
