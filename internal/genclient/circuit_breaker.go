package genclient

import (
	"fmt"

	"campusworks/internal/config"
	"campusworks/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// Breaker wraps generation attempts with circuit breaker protection. A nil
// *Breaker means the breaker is disabled and calls pass straight through.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[string]
}

// NewBreaker creates a circuit breaker configured for a specific advisory
// use case. Returns nil when disabled in config.
func NewBreaker(useCase string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *Breaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        fmt.Sprintf("gen-%s", useCase),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"use_case", useCase,
					"from", from.String(),
					"to", to.String())
			}
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker[string](settings)}
}

// Execute runs fn with circuit breaker protection.
func (b *Breaker) Execute(fn func() (string, error)) (string, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// Stats returns current breaker statistics for the stats endpoint.
func (b *Breaker) Stats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// Healthy reports whether the breaker is closed (or disabled).
func (b *Breaker) Healthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
