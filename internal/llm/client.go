// Package llm is the client for the text generation service. It speaks the
// OpenAI-compatible chat completions protocol and Ollama's generate
// protocol, retries failed attempts, and decodes every known reply shape.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Generator produces text for a prompt.
// Implementations may call a remote service or return canned text (for tests).
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Client is a Generator backed by an HTTP generation service.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
	tracer trace.Tracer

	attempts metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// Compile-time check: *Client satisfies the Generator interface.
var _ Generator = (*Client)(nil)

// Option customises a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *clientOptions) { o.tracer = t }
}

func WithMeter(m metric.Meter) Option {
	return func(o *clientOptions) { o.meter = m }
}

// NewClient validates cfg and creates a client. Without options it logs
// nowhere and records no telemetry.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")

	o := clientOptions{
		httpClient: &http.Client{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:     tracenoop.NewTracerProvider().Tracer("llm"),
		meter:      metricnoop.NewMeterProvider().Meter("llm"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	attempts, err := o.meter.Int64Counter("llm.attempts",
		metric.WithDescription("Generation attempts sent to the service"))
	if err != nil {
		return nil, fmt.Errorf("llm: create attempts counter: %w", err)
	}
	failures, err := o.meter.Int64Counter("llm.failures",
		metric.WithDescription("Generation attempts that failed"))
	if err != nil {
		return nil, fmt.Errorf("llm: create failures counter: %w", err)
	}
	duration, err := o.meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("llm: create duration histogram: %w", err)
	}

	return &Client{
		cfg:      cfg,
		http:     o.httpClient,
		logger:   o.logger,
		tracer:   o.tracer,
		attempts: attempts,
		failures: failures,
		duration: duration,
	}, nil
}

// Generate sends prompt to the service and returns the generated text.
// It makes up to 1+MaxRetries attempts, waiting Retry.Delay between them.
// When every attempt fails the error is a *GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, span := c.tracer.Start(ctx, "llm.generate", trace.WithAttributes(
		attribute.String("llm.protocol", string(c.cfg.Protocol)),
		attribute.String("llm.model", c.cfg.Model),
		attribute.Int("llm.max_tokens", maxTokens),
	))
	defer span.End()

	var (
		lastErr    error
		lastStatus int
		made       int
		reason     = "retries exhausted"
	)

	for attempt := 1; attempt <= c.cfg.Retry.Attempts(); attempt++ {
		if attempt > 1 {
			if err := wait(ctx, c.cfg.Retry.Delay); err != nil {
				lastErr, reason = err, "cancelled"
				break
			}
		}

		made++
		text, status, err := c.attempt(ctx, prompt, maxTokens, attempt)
		if status != 0 {
			lastStatus = status
		}
		if err == nil {
			span.SetAttributes(attribute.Int("llm.attempts", attempt))
			return text, nil
		}

		lastErr = err
		c.failures.Add(ctx, 1)
		c.logger.Warn("generation attempt failed",
			"attempt", attempt,
			"max_attempts", c.cfg.Retry.Attempts(),
			"status", status,
			"error", err,
		)

		if ctx.Err() != nil {
			reason = "cancelled"
			break
		}
	}

	genErr := &GenerationError{
		Attempts:   made,
		StatusCode: lastStatus,
		Reason:     reason,
		Wrapped:    lastErr,
	}
	span.SetAttributes(attribute.Int("llm.attempts", made))
	span.RecordError(genErr)
	span.SetStatus(codes.Error, genErr.Reason)
	return "", genErr
}

// attempt performs one request. status is the HTTP status code, or zero if
// no response arrived.
func (c *Client) attempt(ctx context.Context, prompt string, maxTokens, n int) (text string, status int, err error) {
	ctx, span := c.tracer.Start(ctx, "llm.attempt", trace.WithAttributes(attribute.Int("llm.attempt", n)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "attempt failed")
		}
		span.End()
	}()

	c.attempts.Add(ctx, 1)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint, payload := c.buildRequest(prompt, maxTokens)
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Streamed replies are drained completely before decoding.
	body, err := io.ReadAll(resp.Body)
	c.duration.Record(ctx, float64(time.Since(start).Milliseconds()),
		metric.WithAttributes(attribute.Int("http.response.status_code", resp.StatusCode)))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, &statusError{code: resp.StatusCode, body: truncate(string(body), 200)}
	}

	decoded, err := Decode(body)
	if decoded.Skipped > 0 {
		c.logger.Debug("skipped malformed response chunks", "skipped", decoded.Skipped, "decoded", decoded.Fragments)
	}
	if err != nil {
		return "", resp.StatusCode, err
	}
	if strings.TrimSpace(decoded.Text) == "" {
		return "", resp.StatusCode, ErrEmptyText
	}
	return decoded.Text, resp.StatusCode, nil
}

// ── Request bodies ──────────────────────────────────────────────────

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

func (c *Client) buildRequest(prompt string, maxTokens int) (string, any) {
	if c.cfg.Protocol == ProtocolOllama {
		return c.cfg.URL + "/api/generate", generateRequest{
			Model:  c.cfg.Model,
			Prompt: prompt,
			Stream: c.cfg.Stream,
			Options: generateOptions{
				Temperature: c.cfg.Temperature,
				NumPredict:  maxTokens,
			},
		}
	}
	return c.cfg.URL + "/v1/chat/completions", chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: c.cfg.Temperature,
		Stream:      c.cfg.Stream,
	}
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// IsGenerationError reports whether err is a *GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
