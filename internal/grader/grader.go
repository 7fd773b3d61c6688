package grader

import (
	"context"
	"io"
	"log/slog"

	"github.com/mockinterview/interviewer/internal/llm"
	"github.com/mockinterview/interviewer/internal/prompt"
)

// Explanations attached to zero scores that did not come from the model.
const (
	ExplanationUnavailable = "Could not score answer: generation service unavailable."
	ExplanationUnparsable  = prompt.DefaultExplanation
)

// Status tells where a Grade came from.
type Status string

const (
	StatusScored      Status = "scored"
	StatusUnparsable  Status = "unparsable"
	StatusUnavailable Status = "unavailable"
)

// Grade is the outcome of scoring one answer.
type Grade struct {
	Score       float64 // in [0,1]
	Explanation string
	Status      Status
}

// Grader scores a candidate's answer against the reference answer.
// Implementations may call an LLM, use heuristics, or return canned results (for tests).
// A Grader never fails; problems are reported as zero-score grades.
type Grader interface {
	GradeAnswer(ctx context.Context, question, referenceAnswer, candidateAnswer string) Grade
}

// LLMGrader scores answers with a text generation service.
type LLMGrader struct {
	gen    llm.Generator
	logger *slog.Logger
}

// Compile-time check: *LLMGrader satisfies the Grader interface.
var _ Grader = (*LLMGrader)(nil)

func NewLLMGrader(gen llm.Generator, logger *slog.Logger) *LLMGrader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LLMGrader{gen: gen, logger: logger}
}

// GradeAnswer sends one scoring request. The generator's own retry policy
// covers transport failures; an unparsable reply scores zero and is not
// re-requested.
func (g *LLMGrader) GradeAnswer(ctx context.Context, question, referenceAnswer, candidateAnswer string) Grade {
	p := prompt.BuildScoringPrompt(question, referenceAnswer, candidateAnswer)

	text, err := g.gen.Generate(ctx, p, prompt.ScoringMaxTokens)
	if err != nil {
		g.logger.Warn("scoring failed", "error", err)
		return Grade{Score: 0, Explanation: ExplanationUnavailable, Status: StatusUnavailable}
	}

	res := prompt.ParseScoring(text)
	if !res.Parsed {
		g.logger.Warn("could not parse score", "response", text)
		return Grade{Score: 0, Explanation: ExplanationUnparsable, Status: StatusUnparsable}
	}

	return Grade{Score: res.Score, Explanation: res.Explanation, Status: StatusScored}
}
