package difficulty

const (
	Min   = 0
	Max   = 10
	Start = 5

	// CorrectAbove is the score an answer must exceed to count as correct.
	CorrectAbove = 0.7
	// WrongBelow is the score under which an answer counts as wrong.
	WrongBelow = 0.4
)

// Outcome classifies a single scored answer.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomePartial Outcome = "partial"
)

// Classify maps a score in [0,1] to its outcome bucket.
func Classify(score float64) Outcome {
	switch {
	case score > CorrectAbove:
		return OutcomeCorrect
	case score < WrongBelow:
		return OutcomeWrong
	default:
		return OutcomePartial
	}
}

// Adjust applies a single-step difficulty change for one scored answer and
// returns the new difficulty and counters. Only the latest score matters;
// earlier answers are not averaged in.
func Adjust(score float64, difficulty, correct, wrong int) (int, int, int) {
	difficulty = Clamp(difficulty)

	switch Classify(score) {
	case OutcomeCorrect:
		return Clamp(difficulty + 1), correct + 1, wrong
	case OutcomeWrong:
		return Clamp(difficulty - 1), correct, wrong + 1
	default:
		return difficulty, correct, wrong
	}
}

// Clamp bounds a difficulty to [Min, Max].
func Clamp(d int) int {
	if d < Min {
		return Min
	}
	if d > Max {
		return Max
	}
	return d
}
