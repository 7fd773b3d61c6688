// Package questioner produces the next interview question.
package questioner

import (
	"context"
	"io"
	"log/slog"

	"github.com/mockinterview/interviewer/internal/domain/category"
	"github.com/mockinterview/interviewer/internal/domain/questionbank"
	"github.com/mockinterview/interviewer/internal/llm"
	"github.com/mockinterview/interviewer/internal/prompt"
)

// Request is the running state of the interview the question is for.
type Request struct {
	Category   category.Category
	Difficulty int
	Asked      int
	Correct    int
	Wrong      int
}

// Questioner returns the next question and reference answer. It never fails:
// when generation is impossible it serves a canned pair.
type Questioner interface {
	NextQuestion(ctx context.Context, req Request) questionbank.Pair
}

// LLMQuestioner generates questions with a text generation service and falls
// back to the canned bank.
type LLMQuestioner struct {
	gen    llm.Generator
	bank   *questionbank.Bank
	logger *slog.Logger
}

// Compile-time check: *LLMQuestioner satisfies the Questioner interface.
var _ Questioner = (*LLMQuestioner)(nil)

func NewLLMQuestioner(gen llm.Generator, bank *questionbank.Bank, logger *slog.Logger) *LLMQuestioner {
	if bank == nil {
		bank = questionbank.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LLMQuestioner{gen: gen, bank: bank, logger: logger}
}

// NextQuestion asks the generator for a question at the requested difficulty.
// A generation failure or a reply without both a question and an answer
// yields the canned pair for the domain. Unparsable replies are not retried.
func (q *LLMQuestioner) NextQuestion(ctx context.Context, req Request) questionbank.Pair {
	p := prompt.BuildGenerationPrompt(prompt.QuestionRequest{
		Domain:     req.Category.String(),
		Difficulty: req.Difficulty,
		Asked:      req.Asked,
		Correct:    req.Correct,
		Wrong:      req.Wrong,
	})

	text, err := q.gen.Generate(ctx, p, prompt.GenerationMaxTokens)
	if err != nil {
		q.logger.Warn("question generation failed, using fallback",
			"domain", req.Category,
			"difficulty", req.Difficulty,
			"error", err,
		)
		return q.bank.Fallback(req.Category)
	}

	question, answer := prompt.ParseGeneration(text)
	pair := questionbank.Pair{Question: question, Answer: answer}
	if pair.Empty() {
		q.logger.Warn("could not parse generated question, using fallback",
			"domain", req.Category,
			"response", text,
		)
		return q.bank.Fallback(req.Category)
	}

	return pair
}
