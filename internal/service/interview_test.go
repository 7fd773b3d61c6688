package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockinterview/interviewer/internal/domain/interview"
	"github.com/mockinterview/interviewer/internal/domain/questionbank"
	"github.com/mockinterview/interviewer/internal/grader"
	"github.com/mockinterview/interviewer/internal/llm"
	"github.com/mockinterview/interviewer/internal/questioner"
	"github.com/mockinterview/interviewer/internal/service"
	"github.com/mockinterview/interviewer/internal/transcript"
)

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedGenerator answers generation prompts with numbered questions and
// scoring prompts with a fixed score.
type scriptedGenerator struct {
	mu        sync.Mutex
	score     string
	questions int
	scorings  int
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if strings.Contains(prompt, "Score: <decimal number between 0 and 1>") {
		g.scorings++
		return "Score: " + g.score + "\nExplanation: scripted", nil
	}
	g.questions++
	return "Question: Q" + string(rune('0'+g.questions%10)) + "\nAnswer: A", nil
}

// countingWriter wraps a transcript writer and counts writes.
type countingWriter struct {
	inner service.TranscriptWriter
	err   error
	calls int
}

func (w *countingWriter) Write(s *interview.Session, at time.Time) (string, error) {
	w.calls++
	if w.err != nil {
		return "", w.err
	}
	return w.inner.Write(s, at)
}

func newService(t *testing.T, gen llm.Generator) (*service.InterviewService, *countingWriter) {
	t.Helper()
	logger := discardLogger()
	writer := &countingWriter{inner: transcript.NewWriter(t.TempDir())}
	svc := service.NewInterviewService(
		questioner.NewLLMQuestioner(gen, questionbank.New(), logger),
		grader.NewLLMGrader(gen, logger),
		writer,
		interview.DefaultConfig(),
		logger,
	)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, writer
}

func TestTenAnswersFinishExactlyOnce(t *testing.T) {
	gen := &scriptedGenerator{score: "0.8"}
	svc, writer := newService(t, gen)
	ctx := context.Background()

	sess, err := svc.Start(ctx, "Ada", "ada@example.com", "Data Analysis")
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Asked)

	for i := 1; i <= 10; i++ {
		fb, err := svc.Submit(ctx, sess, "=SUM(A:A)")
		require.NoError(t, err)
		assert.Equal(t, i == 10, fb.Finished, "answer %d", i)
		if i < 10 {
			assert.NotEmpty(t, fb.NextQuestion)
			assert.Equal(t, i+1, fb.Asked)
		}
	}

	assert.True(t, sess.Finished())
	assert.Equal(t, 1, writer.calls)
	assert.Equal(t, 10, sess.Asked)
	assert.Len(t, sess.History, 10)
	assert.Equal(t, 10, sess.Difficulty)
	assert.Equal(t, float64(sess.Correct)/10*100, sess.FinalScorePercent())
	assert.Equal(t, 10, gen.questions)
	assert.Equal(t, 10, gen.scorings)

	_, err = os.Stat(sess.TranscriptPath)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, sess, "one more")
	var stateErr *interview.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, 1, writer.calls)
}

func TestFinanceHalfScoresKeepDifficulty(t *testing.T) {
	svc, _ := newService(t, &scriptedGenerator{score: "0.5"})
	ctx := context.Background()

	sess, err := svc.Start(ctx, "Grace", "grace@example.com", "Finance")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := svc.Submit(ctx, sess, "partly right")
		require.NoError(t, err)
		assert.Equal(t, 5, sess.Difficulty)
	}

	assert.True(t, sess.Finished())
	assert.Zero(t, sess.Correct)
	assert.Zero(t, sess.Wrong)
	assert.Equal(t, 0.0, sess.FinalScorePercent())
}

func TestStart_GenerationDownUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.URL = srv.URL
	cfg.Retry.Delay = time.Millisecond
	client, err := llm.NewClient(cfg)
	require.NoError(t, err)

	svc, _ := newService(t, client)

	sess, err := svc.Start(context.Background(), "Ada", "ada@example.com", "Operations")
	require.NoError(t, err)

	assert.Equal(t, interview.StateInProgress, sess.State())
	assert.Equal(t, questionbank.DefaultFallback.Question, sess.CurrentQuestion)
	assert.Equal(t, questionbank.DefaultFallback.Answer, sess.ReferenceAnswer)
	assert.True(t, sess.FallbackQuestion)

	// Scoring with the service down is a zero score, not an error.
	fb, err := svc.Submit(context.Background(), sess, "=SUMIF(A:A,\"X\",B:B)")
	require.NoError(t, err)
	assert.Equal(t, 0.0, fb.Turn.Score)
	assert.Equal(t, grader.ExplanationUnavailable, fb.Turn.Explanation)
	assert.True(t, fb.Fallback)
}

func TestSkip(t *testing.T) {
	gen := &scriptedGenerator{score: "0.9"}
	svc, _ := newService(t, gen)
	ctx := context.Background()

	sess, err := svc.Start(ctx, "Ada", "ada@example.com", "Finance")
	require.NoError(t, err)

	fb, err := svc.Skip(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fb.Turn.Score)
	assert.Equal(t, "Question skipped by user.", fb.Turn.Explanation)
	assert.Equal(t, interview.SkipMarker, fb.Turn.Answer)
	assert.True(t, fb.Turn.Skipped)
	assert.Equal(t, 1, sess.Wrong)
	assert.Equal(t, 4, sess.Difficulty)

	// Typing "skip" behaves the same way.
	fb, err = svc.Submit(ctx, sess, "  SKIP ")
	require.NoError(t, err)
	assert.True(t, fb.Turn.Skipped)
	assert.Equal(t, 2, sess.Wrong)
	assert.Equal(t, 3, sess.Difficulty)

	assert.Zero(t, gen.scorings)
}

func TestExit(t *testing.T) {
	svc, writer := newService(t, &scriptedGenerator{score: "0.9"})
	ctx := context.Background()

	sess, err := svc.Start(ctx, "Ada", "ada@example.com", "Finance")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess, "a")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess, "b")
	require.NoError(t, err)

	require.NoError(t, svc.Exit(ctx, sess))

	assert.True(t, sess.Finished())
	assert.Equal(t, 3, sess.Asked)
	assert.Len(t, sess.History, 2)
	assert.NotEmpty(t, sess.TranscriptPath)
	assert.InDelta(t, 66.67, sess.FinalScorePercent(), 0.01)

	var stateErr *interview.InvalidStateError
	assert.ErrorAs(t, svc.Exit(ctx, sess), &stateErr)
	_, err = svc.Skip(ctx, sess)
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, 1, writer.calls)
}

func TestStart_Validation(t *testing.T) {
	gen := &scriptedGenerator{score: "1"}
	svc, _ := newService(t, gen)

	sess, err := svc.Start(context.Background(), "Ada", "", "Finance")

	assert.Nil(t, sess)
	var valErr *interview.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "email", valErr.Field)
	assert.Zero(t, gen.questions)

	_, err = svc.Start(context.Background(), "Ada", "ada@example.com", "Marketing")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "domain", valErr.Field)
}

func TestTranscriptFailureKeepsSessionOpen(t *testing.T) {
	svc, writer := newService(t, &scriptedGenerator{score: "0.9"})
	ctx := context.Background()

	sess, err := svc.Start(ctx, "Ada", "ada@example.com", "Finance")
	require.NoError(t, err)

	writer.err = errors.New("disk full")
	err = svc.Exit(ctx, sess)
	require.Error(t, err)
	assert.Equal(t, interview.StateInProgress, sess.State())
	assert.Empty(t, sess.TranscriptPath)

	writer.err = nil
	require.NoError(t, svc.Exit(ctx, sess))
	assert.True(t, sess.Finished())
}

func TestAlreadyWrittenIsSurfaced(t *testing.T) {
	svc, writer := newService(t, &scriptedGenerator{score: "0.9"})
	ctx := context.Background()

	sess, err := svc.Start(ctx, "Ada", "ada@example.com", "Finance")
	require.NoError(t, err)

	writer.err = &transcript.AlreadyWrittenError{Path: "report/x.txt"}
	err = svc.Exit(ctx, sess)

	var already *transcript.AlreadyWrittenError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "report/x.txt", already.Path)
	assert.False(t, sess.Finished())
}

func TestBusySessionRejectsOverlap(t *testing.T) {
	svc, _ := newService(t, &scriptedGenerator{score: "0.9"})
	ctx := context.Background()

	sess, err := svc.Start(ctx, "Ada", "ada@example.com", "Finance")
	require.NoError(t, err)

	require.NoError(t, sess.Acquire("test"))
	_, err = svc.Submit(ctx, sess, "answer")
	var stateErr *interview.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Empty(t, sess.History)

	sess.Release()
	_, err = svc.Submit(ctx, sess, "answer")
	assert.NoError(t, err)
}
