package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/Behyna/banking-portal/internal/transaction"
	"go.uber.org/zap"
)

type PhaseReporter interface {
	Phase() endpoint.Phase
}

type Lifecycle interface {
	Kind() transaction.Kind
	State() transaction.State
}

// Collector samples the portal on a ticker: resolver phase, which kinds have a
// submission in flight, and process gauges. Phase changes are logged.
type Collector struct {
	metrics    *Metrics
	logger     *zap.Logger
	resolver   PhaseReporter
	lifecycles []Lifecycle
	startTime  time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}

	mu        sync.Mutex
	lastPhase endpoint.Phase
}

func NewCollector(metrics *Metrics, logger *zap.Logger, resolver PhaseReporter, lifecycles ...Lifecycle) *Collector {
	return &Collector{
		metrics:    metrics,
		logger:     logger,
		resolver:   resolver,
		lifecycles: lifecycles,
		startTime:  time.Now(),
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
		lastPhase:  endpoint.PhaseUninitialized,
	}
}

// Start samples once immediately, then every interval until Stop.
func (c *Collector) Start(interval time.Duration) {
	c.Collect()

	go func() {
		defer close(c.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Collect()
			case <-c.stopCh:
				return
			}
		}
	}()
}

// Stop is safe to call more than once. It waits for the sampling loop to exit.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		<-c.done
	})
}

// Collect takes one sample. Start calls it on every tick.
func (c *Collector) Collect() {
	if c.resolver != nil {
		phase := c.resolver.Phase()
		c.metrics.SetEndpointPhase(phase)
		c.notePhase(phase)
	}

	for _, lc := range c.lifecycles {
		c.metrics.SetTransactionInFlight(lc.Kind().String(), lc.State().Status == transaction.StatusLoading)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	c.metrics.UpdateSystemMetrics(time.Since(c.startTime), &memStats)
}

func (c *Collector) notePhase(phase endpoint.Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if phase == c.lastPhase {
		return
	}

	fields := []zap.Field{
		zap.String("from", c.lastPhase.String()),
		zap.String("to", phase.String()),
	}
	c.lastPhase = phase

	if phase == endpoint.PhaseFailed {
		c.logger.Warn("Banking endpoint unresolved", fields...)
		return
	}
	c.logger.Info("Banking endpoint phase changed", fields...)
}
