package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/koungkub/pushover-notification-service/internal/metrics"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newTestHTTPClient(t *testing.T, config CircuitBreakerRegistryConfig) (*HTTPClient, *metric.ManualReader) {
	t.Helper()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	collector, err := metrics.NewHTTPClientCollector(provider.Meter("test"))
	require.NoError(t, err)

	client := NewHTTPClient(HTTPClientParams{
		Config: HTTPClientConfig{Timeout: 5 * time.Second},
		CircuitBreakerRegistry: NewCircuitBreakerRegistry(CircuitBreakerRegistryParams{
			Config:           config,
			Logger:           zap.NewNop(),
			MetricsCollector: collector,
		}),
		MetricsCollector: collector,
		Logger:           zap.NewNop(),
	})
	return client, reader
}

func newRequest(t *testing.T, ctx context.Context, method, u string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	require.NoError(t, err)
	return req
}

func collectMetrics(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func TestNewHTTPClient(t *testing.T) {
	metricsCollector, _ := metrics.NewHTTPClientCollector(nil)

	client := NewHTTPClient(HTTPClientParams{
		Config:                 HTTPClientConfig{Timeout: 10 * time.Second},
		CircuitBreakerRegistry: newTestRegistry(testBreakerConfig()),
		MetricsCollector:       metricsCollector,
	})

	assert.NotNil(t, client.httpclient)
	assert.NotNil(t, client.circuitBreakerRegistry)
	assert.NotNil(t, client.metricsCollector)
	assert.NotNil(t, client.logger)
	assert.Equal(t, 10*time.Second, client.httpclient.Timeout)
}

func TestNewHTTPClientConfig(t *testing.T) {
	t.Run("default timeout", func(t *testing.T) {
		config := NewHTTPClientConfig()

		assert.Equal(t, 10*time.Second, config.Timeout)
	})

	t.Run("timeout from environment", func(t *testing.T) {
		t.Setenv("HTTP_CLIENT_TIMEOUT", "3s")

		assert.Equal(t, 3*time.Second, NewHTTPClientConfig().Timeout)
	})
}

func TestHTTPClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "hello", r.PostForm.Get("message"))

		w.Header().Set("X-Request-Id", "5042853c-402d-4e69-b6f0-2f3f2d8c8c4e")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":1,"request":"5042853c-402d-4e69-b6f0-2f3f2d8c8c4e"}`))
	}))
	defer server.Close()

	client, reader := newTestHTTPClient(t, testBreakerConfig())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, server.URL+"/messages.json", strings.NewReader("message=hello"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "200 OK", resp.Status)
	assert.Equal(t, "5042853c-402d-4e69-b6f0-2f3f2d8c8c4e", resp.Header.Get("X-Request-Id"))
	assert.Same(t, req, resp.Request)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":1,"request":"5042853c-402d-4e69-b6f0-2f3f2d8c8c4e"}`, string(body))
	assert.Equal(t, int64(len(body)), resp.ContentLength)

	collected := collectMetrics(t, reader)
	requests := collected["pushover.client.requests"].Data.(metricdata.Sum[int64])
	require.Len(t, requests.DataPoints, 1)
	method, _ := requests.DataPoints[0].Attributes.Value(attribute.Key("http.method"))
	assert.Equal(t, http.MethodPost, method.AsString())
	_, hasErrors := collected["pushover.client.errors"]
	assert.False(t, hasErrors)
}

func TestHTTPClient_Do_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"invalid token", http.StatusBadRequest, `{"token":"invalid","errors":["application token is invalid"],"status":0}`},
		{"rate limited", http.StatusTooManyRequests, `{"status":0}`},
		{"server error", http.StatusInternalServerError, `internal error`},
		{"unavailable", http.StatusServiceUnavailable, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, reader := newTestHTTPClient(t, testBreakerConfig())

			resp, err := client.Do(newRequest(t, context.Background(), http.MethodGet, server.URL+"/sounds.json"))
			require.NoError(t, err, "status codes are returned to the caller, not turned into errors")
			defer resp.Body.Close()

			assert.Equal(t, tt.statusCode, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.body, string(body))

			errorsMetric, ok := collectMetrics(t, reader)["pushover.client.errors"]
			require.True(t, ok)
			sum := errorsMetric.Data.(metricdata.Sum[int64])
			require.Len(t, sum.DataPoints, 1)
			errorType, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("error.type"))
			assert.Equal(t, "invalid_status", errorType.AsString())
		})
	}
}

func TestHTTPClient_Do_BreakerCountsOnlyServerFailures(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		expectedState gobreaker.State
	}{
		{"client errors keep breaker closed", http.StatusBadRequest, gobreaker.StateClosed},
		{"server errors open breaker", http.StatusBadGateway, gobreaker.StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client, _ := newTestHTTPClient(t, testBreakerConfig())

			for i := 0; i < 5; i++ {
				resp, err := client.Do(newRequest(t, context.Background(), http.MethodGet, server.URL))
				if err != nil {
					break
				}
				resp.Body.Close()
			}

			req := newRequest(t, context.Background(), http.MethodGet, server.URL)
			assert.Equal(t, tt.expectedState, client.circuitBreakerRegistry.GetOrCreate(req.URL.Host).State())
		})
	}
}

func TestHTTPClient_Do_OpenBreaker(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, reader := newTestHTTPClient(t, testBreakerConfig())

	for i := 0; i < 3; i++ {
		resp, err := client.Do(newRequest(t, context.Background(), http.MethodPost, server.URL))
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := client.Do(newRequest(t, context.Background(), http.MethodPost, server.URL))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), calls.Load(), "open breaker must not reach the server")

	sum := collectMetrics(t, reader)["pushover.client.errors"].Data.(metricdata.Sum[int64])
	var openErrors int64
	for _, dp := range sum.DataPoints {
		errorType, _ := dp.Attributes.Value(attribute.Key("error.type"))
		if errorType.AsString() == "circuit_breaker_open" {
			openErrors += dp.Value
		}
	}
	assert.Equal(t, int64(1), openErrors)
}

func TestHTTPClient_Do_TransportFailure(t *testing.T) {
	t.Run("server closed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		u := server.URL
		server.Close()

		client, reader := newTestHTTPClient(t, testBreakerConfig())

		resp, err := client.Do(newRequest(t, context.Background(), http.MethodPost, u))

		assert.Nil(t, resp)
		assert.Error(t, err)

		requests := collectMetrics(t, reader)["pushover.client.requests"].Data.(metricdata.Sum[int64])
		require.Len(t, requests.DataPoints, 1)
		status, _ := requests.DataPoints[0].Attributes.Value(attribute.Key("http.status_code"))
		assert.Equal(t, int64(0), status.AsInt64())
	})

	t.Run("context canceled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client, _ := newTestHTTPClient(t, testBreakerConfig())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		resp, err := client.Do(newRequest(t, ctx, http.MethodPost, server.URL))

		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("client timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client, _ := newTestHTTPClient(t, testBreakerConfig())
		client.httpclient.Timeout = 20 * time.Millisecond

		resp, err := client.Do(newRequest(t, context.Background(), http.MethodGet, server.URL))

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}
