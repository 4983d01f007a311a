package client

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/koungkub/pushover-notification-service/internal/metrics"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testBreakerConfig() CircuitBreakerRegistryConfig {
	return CircuitBreakerRegistryConfig{
		MaxHalfOpenRequests:     1,
		OpenStateTimeout:        30 * time.Second,
		MinRequestsBeforeTrip:   3,
		FailureThresholdPercent: 60,
	}
}

func newTestRegistry(config CircuitBreakerRegistryConfig) *CircuitBreakerRegistry {
	return NewCircuitBreakerRegistry(CircuitBreakerRegistryParams{
		Config: config,
		Logger: zap.NewNop(),
	})
}

func TestNewCircuitBreakerRegistry(t *testing.T) {
	registry := newTestRegistry(CircuitBreakerRegistryConfig{
		MaxHalfOpenRequests:     10,
		OpenStateTimeout:        45 * time.Second,
		MinRequestsBeforeTrip:   5,
		FailureThresholdPercent: 75,
	})

	assert.NotNil(t, registry.breakers)
	assert.Equal(t, uint32(10), registry.settings.MaxRequests)
	assert.Equal(t, 45*time.Second, registry.settings.Timeout)
	assert.NotNil(t, registry.settings.ReadyToTrip)
	assert.NotNil(t, registry.settings.OnStateChange)
}

func TestNewCircuitBreakerRegistryConfig(t *testing.T) {
	t.Setenv("CIRCUIT_BREAKER_MIN_REQUESTS_BEFORE_TRIP", "7")

	config := NewCircuitBreakerRegistryConfig()

	assert.Equal(t, uint32(7), config.MinRequestsBeforeTrip)
	assert.Equal(t, uint32(1), config.MaxHalfOpenRequests)
	assert.Equal(t, 30*time.Second, config.OpenStateTimeout)
	assert.Equal(t, float64(60), config.FailureThresholdPercent)
}

func TestCircuitBreakerRegistry_ReadyToTrip(t *testing.T) {
	tests := []struct {
		name                string
		counts              gobreaker.Counts
		expectedReadyToTrip bool
	}{
		{
			name:                "below minimum requests",
			counts:              gobreaker.Counts{Requests: 2, TotalFailures: 2},
			expectedReadyToTrip: false,
		},
		{
			name:                "failure ratio above threshold",
			counts:              gobreaker.Counts{Requests: 5, TotalFailures: 4},
			expectedReadyToTrip: true,
		},
		{
			name:                "failure ratio below threshold",
			counts:              gobreaker.Counts{Requests: 5, TotalFailures: 2},
			expectedReadyToTrip: false,
		},
		{
			name:                "failure ratio at threshold",
			counts:              gobreaker.Counts{Requests: 5, TotalFailures: 3},
			expectedReadyToTrip: true,
		},
		{
			name:                "exactly minimum requests",
			counts:              gobreaker.Counts{Requests: 3, TotalFailures: 2},
			expectedReadyToTrip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := newTestRegistry(testBreakerConfig())

			assert.Equal(t, tt.expectedReadyToTrip, registry.settings.ReadyToTrip(tt.counts))
		})
	}
}

func TestCircuitBreakerRegistry_GetOrCreate(t *testing.T) {
	t.Run("names breaker after host", func(t *testing.T) {
		registry := newTestRegistry(testBreakerConfig())

		cb := registry.GetOrCreate("api.pushover.net")

		assert.Equal(t, "api.pushover.net", cb.Name())
		assert.Equal(t, gobreaker.StateClosed, cb.State())
	})

	t.Run("returns existing breaker for same host", func(t *testing.T) {
		registry := newTestRegistry(testBreakerConfig())

		assert.Same(t, registry.GetOrCreate("api.pushover.net"), registry.GetOrCreate("api.pushover.net"))
	})

	t.Run("separates hosts", func(t *testing.T) {
		registry := newTestRegistry(testBreakerConfig())

		assert.NotSame(t, registry.GetOrCreate("api.pushover.net"), registry.GetOrCreate("localhost:8081"))
	})

	t.Run("concurrent access returns one breaker", func(t *testing.T) {
		registry := newTestRegistry(testBreakerConfig())

		numGoroutines := 100
		breakers := make([]*gobreaker.CircuitBreaker[CircuitBreakerResponse], numGoroutines)
		var wg sync.WaitGroup
		wg.Add(numGoroutines)
		for i := 0; i < numGoroutines; i++ {
			go func(index int) {
				defer wg.Done()
				breakers[index] = registry.GetOrCreate("api.pushover.net")
			}(i)
		}
		wg.Wait()

		for i := 1; i < numGoroutines; i++ {
			assert.Same(t, breakers[0], breakers[i])
		}
	})
}

func TestCircuitBreakerRegistry_OnStateChange(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	collector, err := metrics.NewHTTPClientCollector(provider.Meter("test"))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	registry := NewCircuitBreakerRegistry(CircuitBreakerRegistryParams{
		Config:           testBreakerConfig(),
		Logger:           zap.New(core),
		MetricsCollector: collector,
	})

	cb := registry.GetOrCreate("api.pushover.net")
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (CircuitBreakerResponse, error) {
			return CircuitBreakerResponse{StatusCode: http.StatusServiceUnavailable}, errServerFailure
		})
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	_, err = cb.Execute(func() (CircuitBreakerResponse, error) {
		t.Fatal("request must not run while the breaker is open")
		return CircuitBreakerResponse{}, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	entries := logs.FilterMessage("circuit breaker state changed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "api.pushover.net", entries[0].ContextMap()["host"])
	assert.Equal(t, "open", entries[0].ContextMap()["to"])

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	var foundChange bool
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name == "pushover.client.circuit_breaker.state_changes" {
			foundChange = true
			sum := m.Data.(metricdata.Sum[int64])
			require.Len(t, sum.DataPoints, 1)
			assert.Equal(t, int64(1), sum.DataPoints[0].Value)
		}
	}
	assert.True(t, foundChange, "state change should be recorded")
}

func TestCircuitBreakerRegistry_HalfOpenAfterTimeout(t *testing.T) {
	config := testBreakerConfig()
	config.OpenStateTimeout = 50 * time.Millisecond
	registry := newTestRegistry(config)

	cb := registry.GetOrCreate("api.pushover.net")
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (CircuitBreakerResponse, error) {
			return CircuitBreakerResponse{}, assert.AnError
		})
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, gobreaker.StateHalfOpen, cb.State())
}
