package prompt_test

import (
	"strings"
	"testing"

	"github.com/mockinterview/interviewer/internal/prompt"
)

func TestBuildGenerationPrompt(t *testing.T) {
	req := prompt.QuestionRequest{Domain: "Finance", Difficulty: 7, Asked: 3, Correct: 2, Wrong: 1}

	p := prompt.BuildGenerationPrompt(req)

	for _, want := range []string{
		"Finance",
		"3 questions so far: 2 correct, 1 wrong",
		"difficulty level 7 (0=easy, 10=hard)",
		"Question: <your question>",
		"Answer: <the correct Excel answer>",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}

	if p != prompt.BuildGenerationPrompt(req) {
		t.Error("expected prompt to be deterministic")
	}
}

func TestBuildScoringPrompt(t *testing.T) {
	p := prompt.BuildScoringPrompt("What sums B where A is X?", `=SUMIF(A:A,"X",B:B)`, "use sumif")

	for _, want := range []string{
		"What sums B where A is X?",
		`=SUMIF(A:A,"X",B:B)`,
		"use sumif",
		"PivotTables",
		"Power Query",
		"partial credit",
		"Score: <decimal number between 0 and 1>",
		"Explanation: <brief reasoning>",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}
