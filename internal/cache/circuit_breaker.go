package cache

import (
	"sync"
	"time"
)

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half-open"
)

// CircuitBreaker trips after a run of consecutive failures and probes the
// backend again once the cooldown has passed.
type CircuitBreaker struct {
	mu              sync.Mutex
	state           BreakerState
	failureCount    int
	probeSuccesses  int
	lastFailureTime time.Time

	maxFailures int
	cooldown    time.Duration
	probeCalls  int
}

type CircuitBreakerConfig struct {
	MaxFailures int           `json:"max_failures"`
	Cooldown    time.Duration `json:"cooldown"`
	ProbeCalls  int           `json:"probe_calls"`
}

func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		MaxFailures: 5,
		Cooldown:    30 * time.Second,
		ProbeCalls:  3,
	}
}

func NewCircuitBreaker(config *CircuitBreakerConfig) *CircuitBreaker {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}

	return &CircuitBreaker{
		state:       BreakerClosed,
		maxFailures: config.MaxFailures,
		cooldown:    config.Cooldown,
		probeCalls:  config.ProbeCalls,
	}
}

func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCacheDown
	}

	if err := fn(); err != nil {
		if err != ErrCacheMiss {
			cb.recordFailure()
		} else {
			cb.recordSuccess()
		}
		return err
	}

	cb.recordSuccess()
	return nil
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if time.Since(cb.lastFailureTime) >= cb.cooldown {
			cb.state = BreakerHalfOpen
			cb.probeSuccesses = 0
			return true
		}
		return false
	case BreakerHalfOpen:
		return cb.probeSuccesses < cb.probeCalls
	}
	return false
}

func (cb *CircuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = time.Now()

	switch cb.state {
	case BreakerClosed:
		if cb.failureCount >= cb.maxFailures {
			cb.state = BreakerOpen
		}
	case BreakerHalfOpen:
		cb.state = BreakerOpen
		cb.probeSuccesses = 0
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		cb.failureCount = 0
	case BreakerHalfOpen:
		cb.probeSuccesses++
		if cb.probeSuccesses >= cb.probeCalls {
			cb.state = BreakerClosed
			cb.failureCount = 0
			cb.probeSuccesses = 0
		}
	}
}

func (cb *CircuitBreaker) GetState() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) GetStats() map[string]interface{} {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return map[string]interface{}{
		"state":            string(cb.state),
		"failure_count":    cb.failureCount,
		"max_failures":     cb.maxFailures,
		"cooldown_seconds": cb.cooldown.Seconds(),
	}
}
