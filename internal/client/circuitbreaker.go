package client

import (
	"context"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushover-notification-service/internal/metrics"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type CircuitBreakerRegistry struct {
	breakers *sync.Map
	settings gobreaker.Settings
}

type CircuitBreakerRegistryParams struct {
	fx.In

	Config           CircuitBreakerRegistryConfig
	Logger           *zap.Logger
	MetricsCollector *metrics.HTTPClientCollector `optional:"true"`
}

func NewCircuitBreakerRegistry(params CircuitBreakerRegistryParams) *CircuitBreakerRegistry {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CircuitBreakerRegistry{
		breakers: &sync.Map{},
		settings: gobreaker.Settings{
			MaxRequests: params.Config.MaxHalfOpenRequests,
			Timeout:     params.Config.OpenStateTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

				return counts.Requests >= params.Config.MinRequestsBeforeTrip &&
					failureRatio >= (params.Config.FailureThresholdPercent/100)
			},
			// Breaker names are hosts.
			OnStateChange: func(host string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("host", host),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
				if params.MetricsCollector != nil {
					ctx := context.Background()
					params.MetricsCollector.RecordCircuitBreakerStateChange(ctx, host, from, to)
					params.MetricsCollector.RecordCircuitBreakerState(ctx, host, to)
				}
			},
		},
	}
}

type CircuitBreakerRegistryConfig struct {
	MaxHalfOpenRequests     uint32        `envconfig:"CIRCUIT_BREAKER_MAX_HALF_OPEN_REQUESTS" default:"1"`
	OpenStateTimeout        time.Duration `envconfig:"CIRCUIT_BREAKER_OPEN_STATE_TIMEOUT" default:"30s"`
	MinRequestsBeforeTrip   uint32        `envconfig:"CIRCUIT_BREAKER_MIN_REQUESTS_BEFORE_TRIP" default:"5"`
	FailureThresholdPercent float64       `envconfig:"CIRCUIT_BREAKER_FAILURE_THRESHOLD_PERCENT" default:"60"`
}

func NewCircuitBreakerRegistryConfig() CircuitBreakerRegistryConfig {
	var cfg CircuitBreakerRegistryConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

func (r *CircuitBreakerRegistry) GetOrCreate(host string) *gobreaker.CircuitBreaker[CircuitBreakerResponse] {
	if cb, ok := r.breakers.Load(host); ok {
		return cb.(*gobreaker.CircuitBreaker[CircuitBreakerResponse])
	}

	settings := r.settings
	settings.Name = host

	cb := gobreaker.NewCircuitBreaker[CircuitBreakerResponse](settings)

	actual, _ := r.breakers.LoadOrStore(host, cb)
	return actual.(*gobreaker.CircuitBreaker[CircuitBreakerResponse])
}
