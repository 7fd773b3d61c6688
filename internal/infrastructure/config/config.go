package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mockinterview/interviewer/internal/llm"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration // idle HTTP sessions are dropped after this

	LLM llm.Config

	TranscriptDir   string
	InterviewConfig string // path to the YAML interview file

	LogFile      string // empty means stderr only
	LogLevel     slog.Level
	TelemetryDir string // empty disables trace and metric export
}

// Load reads the environment, after loading envFile if it exists. An empty
// envFile means ".env". Malformed values are errors.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	e := &env{}
	def := llm.DefaultConfig()

	cfg := &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: e.getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		SessionTTL:      e.getDuration("SESSION_TTL", 2*time.Hour),
		LLM: llm.Config{
			URL:         getenvDefault("LLM_URL", def.URL),
			Protocol:    e.getProtocol("LLM_PROTOCOL", def.Protocol),
			Model:       getenvDefault("LLM_MODEL", def.Model),
			APIKey:      os.Getenv("LLM_API_KEY"),
			Temperature: e.getFloat("LLM_TEMPERATURE", def.Temperature),
			Stream:      e.getBool("LLM_STREAM", def.Stream),
			Timeout:     e.getDuration("LLM_TIMEOUT", def.Timeout),
			Retry: llm.RetryPolicy{
				MaxRetries: e.getInt("LLM_MAX_RETRIES", def.Retry.MaxRetries),
				Delay:      e.getDuration("LLM_RETRY_DELAY", def.Retry.Delay),
			},
		},
		TranscriptDir:   getenvDefault("TRANSCRIPT_DIR", "report"),
		InterviewConfig: getenvDefault("INTERVIEW_CONFIG", "config/interview.yaml"),
		LogFile:         os.Getenv("LOG_FILE"),
		LogLevel:        e.getLevel("LOG_LEVEL", slog.LevelInfo),
		TelemetryDir:    os.Getenv("TELEMETRY_DIR"),
	}

	if e.err != nil {
		return nil, e.err
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// env parses typed variables, keeping the first error.
type env struct {
	err error
}

func (e *env) fail(k, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("config: %s=%q is invalid: %w", k, v, err)
	}
}

func (e *env) getDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(k, v, err)
		return fallback
	}
	return d
}

func (e *env) getInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(k, v, err)
		return fallback
	}
	return n
}

func (e *env) getFloat(k string, fallback float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(k, v, err)
		return fallback
	}
	return f
}

func (e *env) getBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(k, v, err)
		return fallback
	}
	return b
}

func (e *env) getProtocol(k string, fallback llm.Protocol) llm.Protocol {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	p, err := llm.ParseProtocol(v)
	if err != nil {
		e.fail(k, v, err)
		return fallback
	}
	return p
}

func (e *env) getLevel(k string, fallback slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	l, err := ParseLevel(v)
	if err != nil {
		e.fail(k, v, err)
		return fallback
	}
	return l
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
