package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mockinterview/interviewer/internal/grader"
	"github.com/mockinterview/interviewer/internal/infrastructure/config"
	"github.com/mockinterview/interviewer/internal/llm"
	"github.com/mockinterview/interviewer/internal/questioner"
	"github.com/mockinterview/interviewer/internal/service"
	"github.com/mockinterview/interviewer/internal/telemetry"
	"github.com/mockinterview/interviewer/internal/transcript"
)

// app is the wired set of dependencies shared by run and serve.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	telemetry  *telemetry.Telemetry
	interviews *service.InterviewService
	closeLog   func() error
}

// loadConfig reads the environment and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if interviewConfig != "" {
		cfg.InterviewConfig = interviewConfig
	}
	if logLevel != "" {
		lvl, err := config.ParseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// newApp builds the logger, telemetry, generation client and interview
// service from configuration. logToStderr mirrors logs to stderr, which the
// interactive driver leaves off so the conversation stays readable.
func newApp(ctx context.Context, logToStderr bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := telemetry.InitLogger(telemetry.LogOptions{
		File:   cfg.LogFile,
		Level:  cfg.LogLevel,
		Stderr: logToStderr,
	})
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.InitTelemetry(ctx, cfg.TelemetryDir)
	if err != nil {
		closeLog()
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, telemetry: tel, closeLog: closeLog}

	in, err := config.LoadInterview(cfg.InterviewConfig)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	client, err := llm.NewClient(cfg.LLM,
		llm.WithLogger(logger),
		llm.WithTracer(tel.Tracer),
		llm.WithMeter(tel.Meter),
	)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	a.interviews = service.NewInterviewService(
		questioner.NewLLMQuestioner(client, in.Bank, logger),
		grader.NewLLMGrader(client, logger),
		transcript.NewWriter(cfg.TranscriptDir),
		in.Config,
		logger,
	)

	logger.Debug("configuration loaded",
		"llm_url", cfg.LLM.URL,
		"llm_protocol", cfg.LLM.Protocol,
		"llm_model", cfg.LLM.Model,
		"max_questions", in.Config.MaxQuestions,
		"transcript_dir", cfg.TranscriptDir,
	)
	return a, nil
}

// close flushes telemetry and the log file.
func (a *app) close(ctx context.Context) error {
	return errors.Join(a.telemetry.Shutdown(ctx), a.closeLog())
}
