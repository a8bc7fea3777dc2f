package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nao1215/safelink/internal/model"
)

const (
	// DefaultEndpoint is the address of a locally running service.
	DefaultEndpoint = "http://127.0.0.1:5000/analyze"

	// DefaultTimeout bounds one request. Zero disables the bound.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries the inspection id to the service.
	RequestIDHeader = "X-Request-ID"
)

// requestIDKey is the context key for the request id.
type requestIDKey struct{}

// WithRequestID returns a context whose requests carry id in the
// X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Client talks to the classification service.
// It is safe for concurrent use.
type Client struct {
	endpoint string
	http     *resty.Client
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.http.SetHeader("User-Agent", ua)
	}
}

// New creates a client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	c := &Client{
		endpoint: endpoint,
		http: resty.New().
			SetTimeout(DefaultTimeout).
			SetRetryCount(0).
			SetHeader("User-Agent", "SafeLink/1.0"),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c, nil
}

// Endpoint returns the configured service address.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze submits url for classification and returns the verdict.
func (c *Client) Analyze(ctx context.Context, url string) (*model.AnalysisResponse, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(model.AnalysisRequest{URL: url})

	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.SetHeader(RequestIDHeader, id)
	}

	resp, err := req.Post(c.endpoint)
	if err != nil {
		return nil, &NetworkError{Endpoint: c.endpoint, Err: err}
	}

	if !resp.IsSuccess() {
		serr := &ServerError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
		var detail any
		if err := json.Unmarshal(resp.Body(), &detail); err != nil {
			serr.DetailNotJSON = true
		} else {
			serr.Detail = detail
		}
		c.logger.Debug("classification service returned an error",
			"url", url,
			"status", resp.StatusCode(),
			"detail_not_json", serr.DetailNotJSON,
		)
		return nil, serr
	}

	var verdict model.AnalysisResponse
	if err := json.Unmarshal(resp.Body(), &verdict); err != nil {
		return nil, &ServerError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Malformed:  true,
			Err:        fmt.Errorf("failed to decode verdict: %w", err),
		}
	}

	c.logger.Debug("classification verdict",
		"url", url,
		"is_malicious", verdict.IsMalicious,
		"threats", len(verdict.ThreatReport),
		"elapsed", resp.Time(),
	)
	return &verdict, nil
}
