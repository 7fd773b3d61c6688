package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockinterview/interviewer/internal/domain/category"
	"github.com/mockinterview/interviewer/internal/domain/interview"
	"github.com/mockinterview/interviewer/internal/domain/questionbank"
	"github.com/mockinterview/interviewer/internal/infrastructure/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInterview_MissingFileUsesDefaults(t *testing.T) {
	in, err := config.LoadInterview(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, interview.DefaultConfig(), in.Config)
	assert.Equal(t, questionbank.DefaultFallback, in.Bank.Fallback(category.Finance))
}

func TestLoadInterview_Overrides(t *testing.T) {
	path := writeFile(t, `
max_questions: 5
start_difficulty: 0
fallbacks:
  - domain: finance
    question: "What does NPV compute?"
    answer: "=NPV(rate, values)"
`)

	in, err := config.LoadInterview(path)
	require.NoError(t, err)

	assert.Equal(t, interview.Config{MaxQuestions: 5, StartDifficulty: 0}, in.Config)
	assert.Equal(t, "What does NPV compute?", in.Bank.Fallback(category.Finance).Question)
	assert.Equal(t, questionbank.DefaultFallback, in.Bank.Fallback(category.Operations))
}

func TestLoadInterview_EmptyFile(t *testing.T) {
	in, err := config.LoadInterview(writeFile(t, "# nothing here\n"))
	require.NoError(t, err)
	assert.Equal(t, interview.DefaultConfig(), in.Config)
}

func TestLoadInterview_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero questions":   "max_questions: 0\n",
		"hard start":       "start_difficulty: 11\n",
		"unknown key":      "max_question: 3\n",
		"unknown domain":   "fallbacks:\n  - domain: Marketing\n    question: q\n    answer: a\n",
		"empty answer":     "fallbacks:\n  - domain: Finance\n    question: q\n    answer: ''\n",
		"duplicate domain": "fallbacks:\n  - {domain: Finance, question: q, answer: a}\n  - {domain: finance, question: r, answer: b}\n",
		"not yaml":         "max_questions: [\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadInterview(writeFile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadInterview_SampleFile(t *testing.T) {
	in, err := config.LoadInterview(filepath.Join("..", "..", "..", "config", "interview.yaml"))
	require.NoError(t, err)

	for _, c := range category.All() {
		assert.False(t, in.Bank.Fallback(c) == questionbank.DefaultFallback, "expected a fallback for %s", c)
	}
}
