package client

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushover-notification-service/internal/metrics"
	"github.com/koungkub/pushover-notification-service/pushover"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// errServerFailure counts a 5xx response against the breaker while the
// response itself is still returned to the caller.
var errServerFailure = errors.New("upstream server failure")

var _ pushover.Doer = (*HTTPClient)(nil)

type HTTPClient struct {
	httpclient             *http.Client
	circuitBreakerRegistry *CircuitBreakerRegistry
	metricsCollector       *metrics.HTTPClientCollector
	logger                 *zap.Logger
}

type HTTPClientConfig struct {
	Timeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
}

type HTTPClientParams struct {
	fx.In

	Config                 HTTPClientConfig
	CircuitBreakerRegistry *CircuitBreakerRegistry
	MetricsCollector       *metrics.HTTPClientCollector
	Logger                 *zap.Logger
}

func NewHTTPClient(params HTTPClientParams) *HTTPClient {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPClient{
		httpclient: &http.Client{
			Timeout: params.Config.Timeout,
		},
		circuitBreakerRegistry: params.CircuitBreakerRegistry,
		metricsCollector:       params.MetricsCollector,
		logger:                 logger,
	}
}

func NewHTTPClientConfig() HTTPClientConfig {
	var cfg HTTPClientConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

// Do sends req through the circuit breaker of its host. The returned
// response body is already buffered. Non-2xx responses are returned without
// error; only transport failures and an open breaker produce one.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()
	host := req.URL.Host

	circuitBreaker := c.circuitBreakerRegistry.GetOrCreate(host)
	c.metricsCollector.RecordCircuitBreakerState(ctx, host, circuitBreaker.State())

	result, err := circuitBreaker.Execute(func() (CircuitBreakerResponse, error) {
		resp, err := c.httpclient.Do(req)
		if err != nil {
			return CircuitBreakerResponse{}, err
		}
		defer resp.Body.Close()

		rawBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return CircuitBreakerResponse{}, err
		}

		result := CircuitBreakerResponse{
			Body:       rawBody,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return result, errServerFailure
		}
		return result, nil
	})

	duration := time.Since(start)

	if err != nil && !errors.Is(err, errServerFailure) {
		c.metricsCollector.RecordRequest(ctx, req.Method, host, 0, duration, err)
		c.logger.Warn("upstream request failed",
			zap.String("method", req.Method),
			zap.String("host", host),
			zap.Error(err),
		)
		return nil, err
	}

	var statusErr error
	if result.StatusCode < http.StatusOK || result.StatusCode >= http.StatusMultipleChoices {
		statusErr = fmt.Errorf("%w: %d", metrics.ErrUnexpectedStatus, result.StatusCode)
	}
	c.metricsCollector.RecordRequest(ctx, req.Method, host, result.StatusCode, duration, statusErr)

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", result.StatusCode, http.StatusText(result.StatusCode)),
		StatusCode:    result.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        result.Header,
		Body:          io.NopCloser(bytes.NewReader(result.Body)),
		ContentLength: int64(len(result.Body)),
		Request:       req,
	}, nil
}
