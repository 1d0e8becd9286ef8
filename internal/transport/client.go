package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/MrEthical07/pmAuth/internal/transport"
	maxResponseSize = 1 << 20
	requestIDHeader = "X-Request-ID"
)

// TokenSource yields the current bearer token, or "" when there is none.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Config configures a Client.
type Config struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	// OnUnauthorized is called with the token that was rejected.
	OnUnauthorized func(ctx context.Context, token string)
	// Observe receives the duration of every completed round trip.
	Observe func(time.Duration)
	Logger  *log.Logger
}

// Client sends JSON requests to the backend.
type Client struct {
	base   string
	cfg    Config
	http   *http.Client
	tracer trace.Tracer
}

// New validates cfg and returns a Client. It performs no I/O.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}

	return &Client{
		base:   base,
		cfg:    cfg,
		http:   httpClient,
		tracer: otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the normalized API base.
func (c *Client) BaseURL() string {
	return c.base
}

// Do sends in as the JSON body (nil for none) and decodes a 2xx body into out
// (nil to discard it).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	err := c.do(ctx, span, method, path, in, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, span trace.Span, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, requestID)
	span.SetAttributes(attribute.String("pm.request_id", requestID))

	var token string
	if c.cfg.Tokens != nil {
		token = c.cfg.Tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	started := time.Now()
	resp, err := c.http.Do(req)
	if c.cfg.Observe != nil {
		c.cfg.Observe(time.Since(started))
	}
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: decodeMessage(data),
			Method:  method,
			Path:    path,
		}
		if apiErr.Unauthorized() && token != "" && !isCredentialExchange(ctx) && c.cfg.OnUnauthorized != nil {
			c.cfg.OnUnauthorized(ctx, token)
		}
		c.cfg.Logger.Printf("pmAuth: %s %s -> %d (request %s)", method, path, resp.StatusCode, requestID)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		if out != nil {
			return fmt.Errorf("%w: %s %s: empty body", ErrMalformedResponse, method, path)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// IsTransportFailure reports whether err carries no backend verdict.
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}
