// Package prompt builds the text sent to the generation service and parses
// its replies. Everything here is pure and deterministic.
package prompt

import (
	"fmt"
)

// Token budgets for the two kinds of request.
const (
	GenerationMaxTokens = 400
	ScoringMaxTokens    = 256
)

// QuestionRequest is the running state of an interview that shapes the
// next question.
type QuestionRequest struct {
	Domain     string
	Difficulty int // 0 = easy, 10 = hard
	Asked      int
	Correct    int
	Wrong      int
}

// ============================================================================
// Prompt builders
// ============================================================================

// BuildGenerationPrompt asks for one question and its reference answer at the
// requested difficulty, in the two-line Question/Answer format.
func BuildGenerationPrompt(req QuestionRequest) string {
	return fmt.Sprintf(`You are a knowledgeable Excel interviewer specialized in the %s domain.
The candidate has answered %d questions so far: %d correct, %d wrong.
Ask the next question at difficulty level %d (0=easy, 10=hard).
The question must be answerable with an Excel formula, feature or short procedure.

Output ONLY these two lines, with no extra words, numbering or markdown:
Question: <your question>
Answer: <the correct Excel answer>`,
		req.Domain, req.Asked, req.Correct, req.Wrong, req.Difficulty)
}

// BuildScoringPrompt asks the model to grade a candidate answer against the
// reference answer and reply with a Score line and an Explanation line.
func BuildScoringPrompt(question, referenceAnswer, candidateAnswer string) string {
	return fmt.Sprintf(`You are an expert Excel interviewer evaluator.

QUESTION:
%s

CORRECT ANSWER:
%s

CANDIDATE ANSWER:
%s

RULES:
- Accept formula answers even if rows or columns differ by one, or the syntax varies slightly, as long as the logic is correct.
- For PivotTables or other UI operations, award full credit when the candidate describes the correct steps or approach.
- For multi-sheet summaries, accept Power Query, formulas, the Consolidate tool or VBA solutions.
- For conceptual or complex problems, give partial credit for reasonable approaches, including stating the need for Solver or macros.
- Give partial credit when the answer is mostly correct but misses edge cases or details.
- Do not penalize formatting or phrasing differences.

Reply with a score between 0 (completely incorrect) and 1 (perfectly correct) on the first line
and a concise explanation on the second line, formatted strictly as:
Score: <decimal number between 0 and 1>
Explanation: <brief reasoning>`,
		question, referenceAnswer, candidateAnswer)
}
