package llm

import (
	"fmt"
	"strings"
	"time"
)

// Protocol selects the wire format spoken to the generation service.
type Protocol string

const (
	// ProtocolOpenAI is an OpenAI-compatible /v1/chat/completions endpoint
	// (LM Studio, vLLM, llama.cpp server, hosted providers).
	ProtocolOpenAI Protocol = "openai"
	// ProtocolOllama is Ollama's native /api/generate endpoint.
	ProtocolOllama Protocol = "ollama"
)

// ParseProtocol maps a configuration value to a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToLower(strings.TrimSpace(s))); p {
	case ProtocolOpenAI, ProtocolOllama:
		return p, nil
	default:
		return "", fmt.Errorf("unknown protocol %q (want %q or %q)", s, ProtocolOpenAI, ProtocolOllama)
	}
}

// RetryPolicy is how many extra attempts a request gets and how long to wait
// between them.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// Attempts is the total number of tries, including the first.
func (p RetryPolicy) Attempts() int {
	return 1 + p.MaxRetries
}

// Config is everything a Client needs to reach one generation service.
type Config struct {
	URL         string // base URL, e.g. "http://localhost:1234"
	Protocol    Protocol
	Model       string
	APIKey      string // sent as a bearer token when set
	Temperature float64
	Stream      bool
	Timeout     time.Duration // per attempt
	Retry       RetryPolicy
}

func DefaultConfig() Config {
	return Config{
		URL:         "http://localhost:1234",
		Protocol:    ProtocolOpenAI,
		Model:       "qwen3-8b",
		Temperature: 0.7,
		Timeout:     30 * time.Second,
		Retry: RetryPolicy{
			MaxRetries: 2,
			Delay:      time.Second,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("llm: url is required")
	}
	if _, err := ParseProtocol(string(c.Protocol)); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("llm: temperature must not be negative, got %v", c.Temperature)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("llm: timeout must be positive, got %s", c.Timeout)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("llm: max retries must not be negative, got %d", c.Retry.MaxRetries)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("llm: retry delay must not be negative, got %s", c.Retry.Delay)
	}
	return nil
}
