package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockinterview/interviewer/internal/llm"
)

func testConfig(url string, protocol llm.Protocol) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.URL = url
	cfg.Protocol = protocol
	cfg.Model = "test-model"
	cfg.Timeout = 2 * time.Second
	cfg.Retry.Delay = time.Millisecond
	return cfg
}

func newClient(t *testing.T, cfg llm.Config) *llm.Client {
	t.Helper()
	c, err := llm.NewClient(cfg)
	require.NoError(t, err)
	return c
}

func TestGenerate_OpenAI(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"content":"Question: Q1\nAnswer: A1"}}]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL+"/", llm.ProtocolOpenAI)
	cfg.APIKey = "secret"

	text, err := newClient(t, cfg).Generate(context.Background(), "ask something", 400)

	require.NoError(t, err)
	assert.Equal(t, "Question: Q1\nAnswer: A1", text)
	assert.Equal(t, "test-model", got["model"])
	assert.Equal(t, float64(400), got["max_tokens"])
	assert.Equal(t, 0.7, got["temperature"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "ask something", messages[0].(map[string]any)["content"])
}

func TestGenerate_OllamaStream(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, "{\"response\":\"Score: 0.9\\n\",\"done\":false}\n")
		io.WriteString(w, "{\"response\":\"Explanation: fine\",\"done\":true}\n")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, llm.ProtocolOllama)
	cfg.Stream = true

	text, err := newClient(t, cfg).Generate(context.Background(), "grade", 256)

	require.NoError(t, err)
	assert.Equal(t, "Score: 0.9\nExplanation: fine", text)
	assert.Equal(t, "grade", got["prompt"])
	assert.Equal(t, true, got["stream"])
	options := got["options"].(map[string]any)
	assert.Equal(t, float64(256), options["num_predict"])
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
		default:
			w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
		}
	}))
	defer srv.Close()

	text, err := newClient(t, testConfig(srv.URL, llm.ProtocolOpenAI)).Generate(context.Background(), "p", 10)

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newClient(t, testConfig(srv.URL, llm.ProtocolOpenAI)).Generate(context.Background(), "p", 10)

	var genErr *llm.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, 3, genErr.Attempts)
	assert.Equal(t, http.StatusTooManyRequests, genErr.StatusCode)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), calls.Load())
	assert.True(t, llm.IsGenerationError(err))
}

func TestGenerate_ErrorBodyKeepsRunesWhole(t *testing.T) {
	// 200 bytes of "€" ends two bytes into a three-byte rune.
	body := strings.Repeat("€", 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, llm.ProtocolOpenAI)
	cfg.Retry.MaxRetries = 0

	_, err := newClient(t, cfg).Generate(context.Background(), "p", 10)

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	msg := genErr.Wrapped.Error()
	assert.True(t, utf8.ValidString(msg), "invalid UTF-8 in %q", msg)
	assert.True(t, strings.HasSuffix(msg, strings.Repeat("€", 66)+"..."), msg)
}

func TestGenerate_ZeroRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, llm.ProtocolOpenAI)
	cfg.Retry.MaxRetries = 0

	_, err := newClient(t, cfg).Generate(context.Background(), "p", 10)

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 1, genErr.Attempts)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_UnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(t, testConfig(url, llm.ProtocolOpenAI)).Generate(context.Background(), "p", 10)

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 3, genErr.Attempts)
	assert.Zero(t, genErr.StatusCode)
}

func TestGenerate_CancelledContextStopsRetrying(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, llm.ProtocolOpenAI)
	cfg.Retry.Delay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(t, cfg).Generate(ctx, "p", 10)

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 1, genErr.Attempts)
	assert.Equal(t, "cancelled", genErr.Reason)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Protocol = "grpc"

	_, err := llm.NewClient(cfg)
	assert.Error(t, err)

	cfg = llm.DefaultConfig()
	cfg.Retry.MaxRetries = -1
	_, err = llm.NewClient(cfg)
	assert.Error(t, err)
}

func TestParseProtocol(t *testing.T) {
	p, err := llm.ParseProtocol(" Ollama ")
	require.NoError(t, err)
	assert.Equal(t, llm.ProtocolOllama, p)

	_, err = llm.ParseProtocol("soap")
	assert.Error(t, err)
}
