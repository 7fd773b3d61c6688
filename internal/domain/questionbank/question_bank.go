package questionbank

import (
	"errors"
	"strings"

	"github.com/mockinterview/interviewer/internal/domain/category"
)

// Pair is a generated question together with its reference answer.
// Empty fields mean the generation output could not be parsed.
type Pair struct {
	Question string
	Answer   string
	Fallback bool // true when the pair came from the canned bank
}

// Empty reports whether either side of the pair is missing.
func (p Pair) Empty() bool {
	return strings.TrimSpace(p.Question) == "" || strings.TrimSpace(p.Answer) == ""
}

// DefaultFallback is served when generation fails and no domain-specific
// pair was configured.
var DefaultFallback = Pair{
	Question: "Create a sample Excel question: How to sum values in column B where column A equals 'X'?",
	Answer:   `Use SUMIF: =SUMIF(A:A, "X", B:B)`,
	Fallback: true,
}

// Bank holds the canned questions used when the generation service is
// unavailable. It is read-only after construction.
type Bank struct {
	def        Pair
	byCategory map[category.Category]Pair
}

func New() *Bank {
	return &Bank{
		def:        DefaultFallback,
		byCategory: make(map[category.Category]Pair),
	}
}

// AddFallback registers the canned pair for a domain, replacing any earlier one.
func (b *Bank) AddFallback(cat category.Category, question, answer string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("fallback question cannot be empty")
	}
	if strings.TrimSpace(answer) == "" {
		return errors.New("fallback answer cannot be empty")
	}

	b.byCategory[cat] = Pair{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
		Fallback: true,
	}
	return nil
}

// Fallback returns the canned pair for the domain, or the default pair.
func (b *Bank) Fallback(cat category.Category) Pair {
	if p, ok := b.byCategory[cat]; ok {
		return p
	}
	return b.def
}
