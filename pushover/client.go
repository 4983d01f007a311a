package pushover

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	Version        = "1.0.0"
	DefaultBaseURL = "https://api.pushover.net/1"
	DefaultTimeout = 10 * time.Second

	messagesPath = "/messages.json"
	soundsPath   = "/sounds.json"

	formContentType = "application/x-www-form-urlencoded"
	userAgent       = "pushover-go/" + Version
)

const (
	opSendMessage          = "send message"
	opSendEmergencyMessage = "send emergency message"
	opSendGroupMessage     = "send group message"
	opListSounds           = "list sounds"
)

// Doer performs a single HTTP round trip. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Pushover API on behalf of one user key and one
// application token. It holds no per-call state and is safe for concurrent use.
type Client struct {
	userKey  string
	apiToken string
	baseURL  string
	timeout  time.Duration
	doer     Doer
	logger   *zap.Logger
	openFile func(name string) (attachmentFile, error)
}

type ClientOption func(*Client)

// WithBaseURL points the client at another API root, mostly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the transport. WithTimeout has no effect when it is set.
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithTimeout bounds each call of the default transport.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for the given user key and application token.
func New(userKey, apiToken string, opts ...ClientOption) (*Client, error) {
	if userKey == "" {
		return nil, &ValidationError{Field: "user key", Reason: "must not be empty"}
	}
	if apiToken == "" {
		return nil, &ValidationError{Field: "api token", Reason: "must not be empty"}
	}

	c := &Client{
		userKey:  userKey,
		apiToken: apiToken,
		baseURL:  DefaultBaseURL,
		timeout:  DefaultTimeout,
		openFile: openFile,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c, nil
}

// SendMessage sends a message to the client's user.
func (c *Client) SendMessage(ctx context.Context, message string, opts ...MessageOption) (Response, error) {
	r := newRequest(c.userKey, message)
	for _, opt := range opts {
		opt.applyMessage(r)
	}

	return c.post(ctx, opSendMessage, r)
}

// SendEmergencyMessage sends a priority 2 message that is re-sent every retry
// seconds until it is acknowledged or expire seconds have passed.
func (c *Client) SendEmergencyMessage(ctx context.Context, message string, opts ...EmergencyOption) (Response, error) {
	r := newRequest(c.userKey, message)
	r.fields.Set("retry", strconv.Itoa(DefaultRetry))
	r.fields.Set("expire", strconv.Itoa(DefaultExpire))
	for _, opt := range opts {
		opt.applyEmergency(r)
	}
	r.fields.Set("priority", strconv.Itoa(PriorityEmergency))

	return c.post(ctx, opSendEmergencyMessage, r)
}

// SendGroupMessage sends a message to every member of a delivery group.
func (c *Client) SendGroupMessage(ctx context.Context, message, groupKey string, opts ...MessageOption) (Response, error) {
	r := newRequest(groupKey, message)
	if groupKey == "" {
		r.fail("group key", "must not be empty")
	}
	for _, opt := range opts {
		opt.applyMessage(r)
	}

	return c.post(ctx, opSendGroupMessage, r)
}

// ListSounds returns the sounds available to the application. Use
// Response.Sounds to read the catalog.
func (c *Client) ListSounds(ctx context.Context) (Response, error) {
	query := url.Values{}
	query.Set("token", c.apiToken)
	query.Set("user", c.userKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+soundsPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &RequestError{Op: opListSounds, Err: err}
	}

	return c.do(opListSounds, req)
}

func (c *Client) post(ctx context.Context, op string, r *request) (Response, error) {
	if r.err != nil {
		return nil, r.err
	}

	values := r.values(c.apiToken)
	var (
		body        io.Reader
		contentType string
	)
	if r.attachment == nil {
		body = strings.NewReader(values.Encode())
		contentType = formContentType
	} else {
		file, err := c.openAttachment(*r.attachment)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		buf, ct, err := encodeMultipart(values, *r.attachment, file)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(op, req)
}

func (c *Client) do(op string, req *http.Request) (Response, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Warn("pushover request failed", zap.String("op", op), zap.Error(err))
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	var body Response
	decodeErr := json.Unmarshal(raw, &body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		reqErr := &RequestError{Op: op, StatusCode: resp.StatusCode}
		if decodeErr == nil {
			reqErr.Errors = body.Errors()
			reqErr.RequestID = body.Request()
		}
		c.logger.Warn("pushover rejected request",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode),
			zap.Strings("errors", reqErr.Errors),
			zap.String("request", reqErr.RequestID),
		)
		return nil, reqErr
	}
	if decodeErr != nil {
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode, Err: decodeErr}
	}

	c.logger.Debug("pushover request succeeded",
		zap.String("op", op),
		zap.Int("status_code", resp.StatusCode),
		zap.String("request", body.Request()),
		zap.Duration("duration", time.Since(start)),
	)
	return body, nil
}
