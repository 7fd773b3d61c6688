package interview

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/mockinterview/interviewer/internal/domain/category"
	"github.com/mockinterview/interviewer/internal/domain/difficulty"
	"github.com/mockinterview/interviewer/internal/domain/questionbank"
	"github.com/mockinterview/interviewer/internal/id"
)

// SkipMarker is recorded as the candidate answer of a skipped question.
const SkipMarker = "skip"

// SkipExplanation is the fixed explanation attached to skipped questions.
const SkipExplanation = "Question skipped by user."

// State is the lifecycle position of a session. Transitions only move forward.
type State string

const (
	StateAwaitingStart State = "awaiting_start"
	StateInProgress    State = "in_progress"
	StateFinished      State = "finished"
)

// Turn is one asked-and-answered question. Turns are never modified after
// they are appended to a session.
type Turn struct {
	Question        string
	Answer          string // raw candidate text or SkipMarker
	ReferenceAnswer string
	Score           float64 // in [0,1]
	Explanation     string
	Outcome         difficulty.Outcome
	Skipped         bool
}

// Session is a single candidate's interview. It is owned by exactly one
// caller and is not safe for concurrent mutation; Acquire guards against
// overlapping operations.
type Session struct {
	ID        string
	Name      string
	Email     string
	Category  category.Category
	CreatedAt time.Time

	Difficulty       int
	Asked            int
	Correct          int
	Wrong            int
	CurrentQuestion  string
	ReferenceAnswer  string
	FallbackQuestion bool
	History          []Turn

	FinishedAt     time.Time
	TranscriptPath string

	state   State
	pending bool
	config  Config
	busy    atomic.Bool
}

// IsSkip reports whether a candidate answer is the skip marker.
func IsSkip(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), SkipMarker)
}

// New validates the candidate details and creates a session awaiting its
// first question.
func New(name, email, domain string, config Config, now time.Time) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "name is required"}
	}
	if strings.ContainsAny(name, "\r\n") {
		return nil, &ValidationError{Field: "name", Reason: "name must be a single line"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "email is required"}
	}
	if strings.ContainsAny(email, "\r\n") {
		return nil, &ValidationError{Field: "email", Reason: "email must be a single line"}
	}
	cat, err := category.Parse(domain)
	if err != nil {
		return nil, &ValidationError{Field: "domain", Reason: err.Error()}
	}
	if err := config.Validate(); err != nil {
		return nil, &ValidationError{Field: "config", Reason: err.Error()}
	}

	return &Session{
		ID:         id.GenerateID(),
		Name:       name,
		Email:      email,
		Category:   cat,
		CreatedAt:  now,
		Difficulty: config.StartDifficulty,
		History:    []Turn{},
		state:      StateAwaitingStart,
		config:     config,
	}, nil
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Finished() bool {
	return s.state == StateFinished
}

// Pending reports whether a question is shown and not yet answered.
func (s *Session) Pending() bool {
	return s.pending
}

func (s *Session) MaxQuestions() int {
	return s.config.MaxQuestions
}

// Acquire marks the session busy for the duration of one operation.
// It fails with InvalidStateError if another operation is still running.
func (s *Session) Acquire(op string) error {
	if !s.busy.CompareAndSwap(false, true) {
		return &InvalidStateError{Op: op, State: s.state, Reason: "session is busy with another operation"}
	}
	return nil
}

func (s *Session) Release() {
	s.busy.Store(false)
}

// Begin shows the first question and moves the session to InProgress.
func (s *Session) Begin(q questionbank.Pair) error {
	if s.state != StateAwaitingStart {
		return &InvalidStateError{Op: "start", State: s.state}
	}
	s.state = StateInProgress
	s.show(q)
	return nil
}

// Record appends the scored answer to the pending question and updates the
// counters and difficulty. It reports whether the question limit is reached.
func (s *Session) Record(answer string, score float64, explanation string) (Turn, bool, error) {
	if err := s.requirePending("submit answer"); err != nil {
		return Turn{}, false, err
	}

	score = clampScore(score)
	turn := Turn{
		Question:        s.CurrentQuestion,
		Answer:          answer,
		ReferenceAnswer: s.ReferenceAnswer,
		Score:           score,
		Explanation:     explanation,
		Outcome:         difficulty.Classify(score),
		Skipped:         IsSkip(answer),
	}

	s.History = append(s.History, turn)
	s.pending = false
	s.Difficulty, s.Correct, s.Wrong = difficulty.Adjust(score, s.Difficulty, s.Correct, s.Wrong)

	return turn, s.LimitReached(), nil
}

// Advance shows the next question after an answer was recorded.
func (s *Session) Advance(q questionbank.Pair) error {
	if s.state != StateInProgress {
		return &InvalidStateError{Op: "ask next question", State: s.state}
	}
	if s.pending {
		return &InvalidStateError{Op: "ask next question", State: s.state, Reason: "current question is still unanswered"}
	}
	if s.LimitReached() {
		return &InvalidStateError{Op: "ask next question", State: s.state, Reason: "question limit reached"}
	}
	s.show(q)
	return nil
}

// CanAnswer reports whether an answer to the current question would be
// accepted by Record.
func (s *Session) CanAnswer(op string) error {
	return s.requirePending(op)
}

// LimitReached reports whether no further question may be asked.
func (s *Session) LimitReached() bool {
	return s.Asked >= s.config.MaxQuestions
}

// CanFinish reports whether Finish would succeed.
func (s *Session) CanFinish() error {
	if s.state != StateInProgress {
		return &InvalidStateError{Op: "finish", State: s.state}
	}
	return nil
}

// Finish moves the session to Finished and records where its transcript was
// written. A pending question stays unanswered and still counts as asked.
func (s *Session) Finish(at time.Time, transcriptPath string) error {
	if err := s.CanFinish(); err != nil {
		return err
	}
	if transcriptPath == "" {
		return &InvalidStateError{Op: "finish", State: s.state, Reason: "transcript location is required"}
	}
	s.state = StateFinished
	s.FinishedAt = at
	s.TranscriptPath = transcriptPath
	return nil
}

// FinalScorePercent is correct answers over asked questions, as a percentage.
// It is zero until the session is finished or when nothing was asked.
func (s *Session) FinalScorePercent() float64 {
	if s.state != StateFinished || s.Asked == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Asked) * 100
}

// ScorePercent is FinalScorePercent computed over the current counters,
// for progress displays while the interview runs.
func (s *Session) ScorePercent() float64 {
	if s.Asked == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Asked) * 100
}

func (s *Session) requirePending(op string) error {
	if s.state != StateInProgress {
		return &InvalidStateError{Op: op, State: s.state}
	}
	if !s.pending {
		return &InvalidStateError{Op: op, State: s.state, Reason: "no question is waiting for an answer"}
	}
	return nil
}

func (s *Session) show(q questionbank.Pair) {
	s.CurrentQuestion = q.Question
	s.ReferenceAnswer = q.Answer
	s.FallbackQuestion = q.Fallback
	s.Asked++
	s.pending = true
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
