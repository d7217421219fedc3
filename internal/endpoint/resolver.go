package endpoint

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseResolving
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseResolving:
		return "resolving"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Recorder interface {
	RecordEndpointResolution(source string, success bool, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordEndpointResolution(string, bool, time.Duration) {}

type Option func(*Resolver)

func WithRecorder(recorder Recorder) Option {
	return func(r *Resolver) {
		if recorder != nil {
			r.recorder = recorder
		}
	}
}

// Resolver determines the service endpoints once and serves the memoized
// result afterwards. Concurrent first-time callers share a single load.
type Resolver struct {
	source   Source
	logger   *zap.Logger
	recorder Recorder
	group    singleflight.Group

	mu    sync.RWMutex
	cfg   *Config
	phase Phase
}

func NewResolver(source Source, logger *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{source: source, logger: logger, recorder: noopRecorder{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Resolve(ctx context.Context) (Config, error) {
	if cfg, ok := r.cached(); ok {
		return cfg, nil
	}

	// The shared load outlives any single caller; each caller only stops
	// waiting when its own context ends.
	ch := r.group.DoChan("endpoint", func() (interface{}, error) {
		if cfg, ok := r.cached(); ok {
			return cfg, nil
		}
		return r.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return Config{}, &ConfigError{Source: r.source.Name(), Reason: "resolution abandoned", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return Config{}, res.Err
		}
		return res.Val.(Config), nil
	}
}

func (r *Resolver) BankingServiceURL(ctx context.Context) (string, error) {
	cfg, err := r.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return cfg.BankingServiceURL, nil
}

func (r *Resolver) Phase() Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phase
}

func (r *Resolver) cached() (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cfg == nil {
		return Config{}, false
	}
	return *r.cfg, true
}

func (r *Resolver) load(ctx context.Context) (Config, error) {
	start := time.Now()
	r.setPhase(PhaseResolving)

	cfg, err := r.source.Load(ctx)
	if err != nil {
		var configErr *ConfigError
		if !errors.As(err, &configErr) {
			err = &ConfigError{Source: r.source.Name(), Reason: "load failed", Err: err}
		}

		r.setPhase(PhaseFailed)
		r.recorder.RecordEndpointResolution(r.source.Name(), false, time.Since(start))
		r.logger.Error("Failed to resolve banking service endpoint",
			zap.String("source", r.source.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))

		return Config{}, err
	}

	r.mu.Lock()
	r.cfg = &cfg
	r.phase = PhaseReady
	r.mu.Unlock()

	r.recorder.RecordEndpointResolution(r.source.Name(), true, time.Since(start))
	r.logger.Info("Banking service endpoint resolved",
		zap.String("source", r.source.Name()),
		zap.String("bankingServiceURL", cfg.BankingServiceURL),
		zap.Duration("duration", time.Since(start)))

	return cfg, nil
}

func (r *Resolver) setPhase(phase Phase) {
	r.mu.Lock()
	r.phase = phase
	r.mu.Unlock()
}
