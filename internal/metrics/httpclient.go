package metrics

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ErrUnexpectedStatus marks a response whose status code is not 2xx.
var ErrUnexpectedStatus = errors.New("unexpected response status")

type HTTPClientCollector struct {
	requestCount          metric.Int64Counter
	requestDuration       metric.Float64Histogram
	errorCount            metric.Int64Counter
	circuitBreakerState   metric.Int64Gauge
	circuitBreakerChanges metric.Int64Counter
}

func NewHTTPClientCollector(meter metric.Meter) (*HTTPClientCollector, error) {
	// The noop meter never returns errors.
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}
	requestCount, err := meter.Int64Counter(
		"pushover.client.requests",
		metric.WithDescription("Total requests sent to the Pushover API"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"pushover.client.duration",
		metric.WithDescription("Pushover API round trip duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"pushover.client.errors",
		metric.WithDescription("Pushover API requests that failed or were rejected"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	circuitBreakerState, err := meter.Int64Gauge(
		"pushover.client.circuit_breaker.state",
		metric.WithDescription("Circuit breaker state (0=Closed, 1=Open, 2=HalfOpen)"),
		metric.WithUnit("{state}"),
	)
	if err != nil {
		return nil, err
	}

	circuitBreakerChanges, err := meter.Int64Counter(
		"pushover.client.circuit_breaker.state_changes",
		metric.WithDescription("Circuit breaker state changes"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPClientCollector{
		requestCount:          requestCount,
		requestDuration:       requestDuration,
		errorCount:            errorCount,
		circuitBreakerState:   circuitBreakerState,
		circuitBreakerChanges: circuitBreakerChanges,
	}, nil
}

// RecordRequest records one round trip. statusCode is zero when no response
// was received.
func (c *HTTPClientCollector) RecordRequest(
	ctx context.Context,
	method string,
	host string,
	statusCode int,
	duration time.Duration,
	err error,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.host", host),
		attribute.Int("http.status_code", statusCode),
	}

	c.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if err != nil {
		errorAttrs := []attribute.KeyValue{
			attribute.String("http.host", host),
			attribute.String("error.type", getErrorType(err)),
		}
		c.errorCount.Add(ctx, 1, metric.WithAttributes(errorAttrs...))
	}
}

func (c *HTTPClientCollector) RecordCircuitBreakerState(
	ctx context.Context,
	host string,
	state gobreaker.State,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.host", host),
		attribute.String("circuit_breaker.state", state.String()),
	}

	c.circuitBreakerState.Record(ctx, circuitBreakerStateToInt(state), metric.WithAttributes(attrs...))
}

func (c *HTTPClientCollector) RecordCircuitBreakerStateChange(
	ctx context.Context,
	host string,
	from gobreaker.State,
	to gobreaker.State,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.host", host),
		attribute.String("circuit_breaker.from_state", from.String()),
		attribute.String("circuit_breaker.to_state", to.String()),
	}

	c.circuitBreakerChanges.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func circuitBreakerStateToInt(state gobreaker.State) int64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return -1
	}
}

func getErrorType(err error) string {
	if err == nil {
		return "none"
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ErrUnexpectedStatus):
		return "invalid_status"
	case errors.Is(err, gobreaker.ErrOpenState):
		return "circuit_breaker_open"
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_breaker_half_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	default:
		return "transport"
	}
}
