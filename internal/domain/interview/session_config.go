package interview

import (
	"fmt"

	"github.com/mockinterview/interviewer/internal/domain/difficulty"
)

// Config holds the per-interview limits.
type Config struct {
	MaxQuestions    int // the interview finishes once this many questions were asked
	StartDifficulty int
}

// DefaultConfig returns a ten-question interview starting at medium difficulty.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:    10,
		StartDifficulty: difficulty.Start,
	}
}

func (c Config) Validate() error {
	if c.MaxQuestions < 1 {
		return fmt.Errorf("max questions must be at least 1, got %d", c.MaxQuestions)
	}
	if c.StartDifficulty < difficulty.Min || c.StartDifficulty > difficulty.Max {
		return fmt.Errorf("start difficulty must be between %d and %d, got %d",
			difficulty.Min, difficulty.Max, c.StartDifficulty)
	}
	return nil
}
