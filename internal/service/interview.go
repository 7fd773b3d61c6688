// Package service sequences an interview: questions, scoring, difficulty
// and the final transcript.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mockinterview/interviewer/internal/domain/interview"
	"github.com/mockinterview/interviewer/internal/grader"
	"github.com/mockinterview/interviewer/internal/questioner"
)

// TranscriptWriter persists the transcript of a session and returns where
// it was written.
type TranscriptWriter interface {
	Write(s *interview.Session, completedAt time.Time) (string, error)
}

// Feedback is what the candidate sees after answering or skipping.
type Feedback struct {
	Turn           interview.Turn
	NextQuestion   string // empty once the interview is finished
	Fallback       bool   // the next question came from the canned bank
	Asked          int
	Finished       bool
	TranscriptPath string
}

// InterviewService runs interviews. It holds no per-session state; every
// operation takes the session it acts on.
type InterviewService struct {
	questioner  questioner.Questioner
	grader      grader.Grader
	transcripts TranscriptWriter
	config      interview.Config
	logger      *slog.Logger
	now         func() time.Time
}

// NewInterviewService creates an InterviewService.
func NewInterviewService(q questioner.Questioner, g grader.Grader, tw TranscriptWriter, cfg interview.Config, logger *slog.Logger) *InterviewService {
	return &InterviewService{
		questioner:  q,
		grader:      g,
		transcripts: tw,
		config:      cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for timestamps.
func (svc *InterviewService) SetClock(now func() time.Time) {
	svc.now = now
}

func (svc *InterviewService) Config() interview.Config {
	return svc.config
}

// Start validates the candidate details, creates the session and shows the
// first question.
func (svc *InterviewService) Start(ctx context.Context, name, email, domain string) (*interview.Session, error) {
	sess, err := interview.New(name, email, domain, svc.config, svc.now())
	if err != nil {
		return nil, err
	}

	pair := svc.questioner.NextQuestion(ctx, svc.questionRequest(sess))
	if err := sess.Begin(pair); err != nil {
		return nil, err
	}

	svc.logger.Info("interview started",
		"session_id", sess.ID,
		"domain", sess.Category,
		"fallback_question", pair.Fallback,
	)
	return sess, nil
}

// Submit scores the candidate's answer to the current question. The text
// "skip" is treated as Skip.
func (svc *InterviewService) Submit(ctx context.Context, sess *interview.Session, answer string) (Feedback, error) {
	if interview.IsSkip(answer) {
		return svc.Skip(ctx, sess)
	}

	if err := sess.Acquire("submit answer"); err != nil {
		return Feedback{}, err
	}
	defer sess.Release()

	if err := sess.CanAnswer("submit answer"); err != nil {
		return Feedback{}, err
	}

	grade := svc.grader.GradeAnswer(ctx, sess.CurrentQuestion, sess.ReferenceAnswer, answer)
	if grade.Status != grader.StatusScored {
		svc.logger.Warn("answer scored as zero",
			"session_id", sess.ID,
			"question", sess.Asked,
			"status", grade.Status,
		)
	}

	return svc.record(ctx, sess, answer, grade.Score, grade.Explanation)
}

// Skip records the current question as skipped, with a zero score, without
// calling the generation service.
func (svc *InterviewService) Skip(ctx context.Context, sess *interview.Session) (Feedback, error) {
	if err := sess.Acquire("skip"); err != nil {
		return Feedback{}, err
	}
	defer sess.Release()

	if err := sess.CanAnswer("skip"); err != nil {
		return Feedback{}, err
	}

	return svc.record(ctx, sess, interview.SkipMarker, 0, interview.SkipExplanation)
}

// Exit ends the interview early. The pending question is left unanswered
// and still counts as asked.
func (svc *InterviewService) Exit(ctx context.Context, sess *interview.Session) error {
	if err := sess.Acquire("exit"); err != nil {
		return err
	}
	defer sess.Release()

	if err := sess.CanFinish(); err != nil {
		return err
	}

	svc.logger.Info("interview exited early", "session_id", sess.ID, "asked", sess.Asked)
	return svc.finish(sess)
}

func (svc *InterviewService) record(ctx context.Context, sess *interview.Session, answer string, score float64, explanation string) (Feedback, error) {
	turn, limitReached, err := sess.Record(answer, score, explanation)
	if err != nil {
		return Feedback{}, err
	}

	svc.logger.Info("answer recorded",
		"session_id", sess.ID,
		"question", len(sess.History),
		"score", turn.Score,
		"outcome", turn.Outcome,
		"skipped", turn.Skipped,
		"difficulty", sess.Difficulty,
	)

	fb := Feedback{Turn: turn}

	if limitReached {
		if err := svc.finish(sess); err != nil {
			fb.Asked = sess.Asked
			return fb, err
		}
	} else {
		pair := svc.questioner.NextQuestion(ctx, svc.questionRequest(sess))
		if err := sess.Advance(pair); err != nil {
			return fb, err
		}
		fb.NextQuestion = pair.Question
		fb.Fallback = pair.Fallback
	}

	fb.Asked = sess.Asked
	fb.Finished = sess.Finished()
	fb.TranscriptPath = sess.TranscriptPath
	return fb, nil
}

// finish writes the transcript and only then marks the session finished,
// so a failed write leaves it in progress and Exit can be retried.
func (svc *InterviewService) finish(sess *interview.Session) error {
	at := svc.now()

	path, err := svc.transcripts.Write(sess, at)
	if err != nil {
		svc.logger.Error("failed to write transcript", "session_id", sess.ID, "error", err)
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	if err := sess.Finish(at, path); err != nil {
		return err
	}

	svc.logger.Info("interview finished",
		"session_id", sess.ID,
		"asked", sess.Asked,
		"correct", sess.Correct,
		"wrong", sess.Wrong,
		"final_score", sess.FinalScorePercent(),
		"transcript", path,
	)
	return nil
}

func (svc *InterviewService) questionRequest(sess *interview.Session) questioner.Request {
	return questioner.Request{
		Category:   sess.Category,
		Difficulty: sess.Difficulty,
		Asked:      sess.Asked,
		Correct:    sess.Correct,
		Wrong:      sess.Wrong,
	}
}
