// Package client talks to the external screening service over HTTP.
// Calls are never retried; a failed submission needs the analyst to resubmit.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"amlscope/internal/screening"
)

const (
	opRunScreening = "run_screening"
	opFetchTests   = "fetch_tests"
	opHealth       = "health"

	// maxErrorBody bounds how much of a failed response becomes the message.
	maxErrorBody = 4 << 10
)

// Client calls the screening service rooted at a base URL such as
// http://localhost:8000/api.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMetrics records call outcomes and latency.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client. timeout bounds each call end to end.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer("amlscope/screening/client"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// RunScreening submits one subject/article pair and returns the verdict.
func (c *Client) RunScreening(ctx context.Context, req screening.Request) (screening.Result, error) {
	var result screening.Result
	err := c.do(ctx, opRunScreening, http.MethodPost, "/run_screening", req, &result)
	return result, err
}

type testsResponse struct {
	Results []screening.TestCase `json:"results"`
}

// FetchTests loads the test-case catalogue. A missing or null results field
// is an empty catalogue.
func (c *Client) FetchTests(ctx context.Context) ([]screening.TestCase, error) {
	var resp testsResponse
	if err := c.do(ctx, opFetchTests, http.MethodGet, "/tests", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []screening.TestCase{}, nil
	}
	return resp.Results, nil
}

// Health checks the service's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, opHealth, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "screening."+op, trace.WithSpanKind(trace.SpanKindClient))
	start := time.Now()
	defer func() {
		c.metrics.observe(op, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(GetCategory(err)))
		}
		span.End()
	}()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", url),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServiceError{
			Category:   ErrorBadData,
			Operation:  op,
			Status:     resp.StatusCode,
			Message:    "Screening service returned an unreadable response",
			Underlying: err,
		}
	}
	return nil
}

func transportError(op string, err error) error {
	category := ErrorUnavailable
	message := "Screening service is unreachable"
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		category = ErrorTimeout
		message = "Screening service timed out"
	}
	return &ServiceError{Category: category, Operation: op, Message: message, Underlying: err}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// statusError uses the response body as the message. FastAPI-style
// {"detail": "..."} bodies are unwrapped; anything else is taken verbatim.
func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))
	var detail struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &detail) == nil && strings.TrimSpace(detail.Detail) != "" {
		msg = strings.TrimSpace(detail.Detail)
	}
	if msg == "" {
		msg = FallbackMessage
	}
	return &ServiceError{
		Category:  ErrorBadStatus,
		Operation: op,
		Status:    resp.StatusCode,
		Message:   msg,
	}
}
