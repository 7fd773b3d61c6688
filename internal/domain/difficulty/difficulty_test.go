package difficulty_test

import (
	"testing"

	"github.com/mockinterview/interviewer/internal/domain/difficulty"
)

func TestAdjust_AllLevels(t *testing.T) {
	for d := difficulty.Min; d <= difficulty.Max; d++ {
		// High score: one step harder, capped at Max
		nd, c, w := difficulty.Adjust(0.9, d, 2, 3)
		if nd != min(10, d+1) || c != 3 || w != 3 {
			t.Errorf("d=%d s=0.9: got (%d,%d,%d)", d, nd, c, w)
		}

		// Low score: one step easier, floored at Min
		nd, c, w = difficulty.Adjust(0.1, d, 2, 3)
		if nd != max(0, d-1) || c != 2 || w != 4 {
			t.Errorf("d=%d s=0.1: got (%d,%d,%d)", d, nd, c, w)
		}

		// Middle band: nothing changes
		for _, s := range []float64{0.4, 0.5, 0.7} {
			nd, c, w = difficulty.Adjust(s, d, 2, 3)
			if nd != d || c != 2 || w != 3 {
				t.Errorf("d=%d s=%v: got (%d,%d,%d)", d, s, nd, c, w)
			}
		}
	}
}

func TestAdjust_Boundaries(t *testing.T) {
	if nd, _, _ := difficulty.Adjust(0.9, 10, 0, 0); nd != 10 {
		t.Errorf("expected difficulty to stay 10, got %d", nd)
	}
	if nd, _, _ := difficulty.Adjust(0.1, 0, 0, 0); nd != 0 {
		t.Errorf("expected difficulty to stay 0, got %d", nd)
	}
}

func TestAdjust_ZeroScoreCountsAsWrong(t *testing.T) {
	nd, c, w := difficulty.Adjust(0.0, 5, 0, 0)
	if nd != 4 || c != 0 || w != 1 {
		t.Errorf("expected (4,0,1), got (%d,%d,%d)", nd, c, w)
	}
}

func TestAdjust_ClampsOutOfRangeInput(t *testing.T) {
	if nd, _, _ := difficulty.Adjust(0.5, 42, 0, 0); nd != 10 {
		t.Errorf("expected 10, got %d", nd)
	}
	if nd, _, _ := difficulty.Adjust(0.5, -3, 0, 0); nd != 0 {
		t.Errorf("expected 0, got %d", nd)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		score float64
		want  difficulty.Outcome
	}{
		{1.0, difficulty.OutcomeCorrect},
		{0.71, difficulty.OutcomeCorrect},
		{0.7, difficulty.OutcomePartial},
		{0.4, difficulty.OutcomePartial},
		{0.39, difficulty.OutcomeWrong},
		{0.0, difficulty.OutcomeWrong},
	}

	for _, c := range cases {
		if got := difficulty.Classify(c.score); got != c.want {
			t.Errorf("Classify(%v): expected %q, got %q", c.score, c.want, got)
		}
	}
}
