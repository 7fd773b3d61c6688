package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mockinterview/interviewer/internal/domain/category"
	"github.com/mockinterview/interviewer/internal/domain/interview"
	"github.com/mockinterview/interviewer/internal/domain/questionbank"
)

// InterviewFile is the YAML interview settings file.
type InterviewFile struct {
	MaxQuestions    *int            `yaml:"max_questions"`
	StartDifficulty *int            `yaml:"start_difficulty"`
	Fallbacks       []FallbackEntry `yaml:"fallbacks"`
}

// FallbackEntry is a canned question for one domain.
type FallbackEntry struct {
	Domain   string `yaml:"domain"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Interview is the resolved interview settings.
type Interview struct {
	Config interview.Config
	Bank   *questionbank.Bank
}

// LoadInterview reads the interview file at path. A missing file yields the
// defaults; an invalid one is an error.
func LoadInterview(path string) (*Interview, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Interview{Config: interview.DefaultConfig(), Bank: questionbank.New()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file InterviewFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	in, err := file.resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid interview config %s: %w", path, err)
	}
	return in, nil
}

// resolve validates the file and applies defaults for omitted settings.
func (f *InterviewFile) resolve() (*Interview, error) {
	cfg := interview.DefaultConfig()
	if f.MaxQuestions != nil {
		cfg.MaxQuestions = *f.MaxQuestions
	}
	if f.StartDifficulty != nil {
		cfg.StartDifficulty = *f.StartDifficulty
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bank := questionbank.New()
	seen := make(map[category.Category]bool)
	for i, fb := range f.Fallbacks {
		cat, err := category.Parse(fb.Domain)
		if err != nil {
			return nil, fmt.Errorf("fallback %d: %w", i+1, err)
		}
		if seen[cat] {
			return nil, fmt.Errorf("fallback %d: duplicate domain %s", i+1, cat)
		}
		seen[cat] = true
		if err := bank.AddFallback(cat, fb.Question, fb.Answer); err != nil {
			return nil, fmt.Errorf("fallback %d: %w", i+1, err)
		}
	}

	return &Interview{Config: cfg, Bank: bank}, nil
}
