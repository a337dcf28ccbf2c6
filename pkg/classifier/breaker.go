package classifier

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/soundprediction/relex/pkg/types"
)

// BreakerConfig configures the circuit breaker around a remote classifier.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	ReadyToTripRatio float64
}

// Breaker wraps a Classifier with circuit breaking so a failing remote model
// fails fast instead of stalling every candidate pair.
type Breaker struct {
	inner Classifier
	cb    *gobreaker.CircuitBreaker
}

// WithBreaker wraps the classifier in a circuit breaker.
func WithBreaker(inner Classifier, cfg BreakerConfig) *Breaker {
	if cfg.Name == "" {
		cfg.Name = "classifier"
	}
	if cfg.ReadyToTripRatio <= 0 {
		cfg.ReadyToTripRatio = 0.6
	}

	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
	}

	return &Breaker{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(st),
	}
}

// Classify implements Classifier.
func (b *Breaker) Classify(ctx context.Context, features []types.Feature) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Classify(ctx, features)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
