package prompt

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultExplanation is used when a scoring reply has no explanation line.
const DefaultExplanation = "Could not parse response."

// ScoreResult is the parsed outcome of a scoring reply.
type ScoreResult struct {
	Score       float64 // clamped to [0,1]
	Explanation string
	Parsed      bool // false when no score could be read
}

var (
	// A labelled line, tolerating markdown bullets, headings, quotes, list
	// numbers and bold markers around the label: "**Question:** ...",
	// "- Answer: ...", "1. Question: ...". The label may carry a number and
	// be followed by a dash instead of a colon: "Question 2 - ...".
	labelLine = regexp.MustCompile(`(?i)^[\s*#>\-]*(?:\d+[.)]\s*)?\**\s*(question|answer|score|explanation)(?:\s*\d+)?\s*\**\s*(?::|-(?:\s|$))\s*\**\s*(.*)$`)
	number    = regexp.MustCompile(`-?(?:\d+(?:\.\d*)?|\.\d+)`)
)

// ParseGeneration extracts the question and reference answer from a
// generation reply. Lines after a label are appended to it, separated by a
// single space. A label that never appears yields an empty string.
func ParseGeneration(text string) (question, answer string) {
	var q, a strings.Builder
	var active *strings.Builder

	for _, line := range splitLines(text) {
		label, rest, ok := matchLabel(line)
		if ok {
			switch label {
			case "question":
				q.Reset()
				active = &q
			case "answer":
				a.Reset()
				active = &a
			default:
				active = nil
				continue
			}
			active.WriteString(rest)
			continue
		}
		if active == nil {
			continue
		}
		if active.Len() > 0 {
			active.WriteByte(' ')
		}
		active.WriteString(line)
	}

	return strings.TrimSpace(q.String()), strings.TrimSpace(a.String())
}

// ParseScoring reads the first number on the first "Score:" line and the
// remainder of the first "Explanation:" line. Without a readable score the
// explanation is DefaultExplanation, whatever the reply said.
func ParseScoring(text string) ScoreResult {
	res := ScoreResult{Explanation: DefaultExplanation}
	seenScore, seenExplanation := false, false

	for _, line := range splitLines(text) {
		label, rest, ok := matchLabel(line)
		if !ok {
			continue
		}
		switch {
		case label == "score" && !seenScore:
			seenScore = true
			if m := number.FindString(rest); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil {
					res.Score = clamp(v)
					res.Parsed = true
				}
			}
		case label == "explanation" && !seenExplanation:
			seenExplanation = true
			if rest != "" {
				res.Explanation = rest
			}
		}
	}

	if !res.Parsed {
		res.Explanation = DefaultExplanation
	}
	return res
}

// splitLines returns the trimmed, non-blank lines of text.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func matchLabel(line string) (label, rest string, ok bool) {
	m := labelLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	rest = strings.TrimSpace(strings.TrimRight(m[2], "*"))
	return strings.ToLower(m[1]), rest, true
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
