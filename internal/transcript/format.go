// Package transcript renders finished interviews as plain-text reports,
// writes them to disk and reads them back.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mockinterview/interviewer/internal/domain/interview"
)

const (
	Title      = "Excel Mock Interview Report"
	DateLayout = "2006-01-02 15:04:05"
)

// Header and block labels, shared by Format and Read.
const (
	labelName      = "Name"
	labelEmail     = "Email"
	labelDomain    = "Domain"
	labelDate      = "Date"
	labelAsked     = "Questions Asked"
	labelAnswered  = "Questions Answered"
	labelCorrect   = "Correct Answers"
	labelWrong     = "Wrong Answers"
	labelFinal     = "Final Score"
	blockQuestion  = "Question:"
	blockAnswer    = "Your answer:"
	blockReference = "Correct answer:"
	prefixScore    = "Score: "
	prefixExplain  = "Explanation: "

	// indent starts every line of a block body, so free text can never be
	// mistaken for a label or a turn marker.
	indent = "  "
)

// Format writes the transcript of s as of completedAt. The output depends
// only on its arguments. Question, answer and reference bodies are indented
// by two spaces, as are explanation lines after the first.
func Format(w io.Writer, s *interview.Session, completedAt time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, Title)
	fmt.Fprintf(bw, "%s: %s\n", labelName, s.Name)
	fmt.Fprintf(bw, "%s: %s\n", labelEmail, s.Email)
	fmt.Fprintf(bw, "%s: %s\n", labelDomain, s.Category)
	fmt.Fprintf(bw, "%s: %s\n", labelDate, completedAt.Format(DateLayout))
	fmt.Fprintf(bw, "%s: %d\n", labelAsked, s.Asked)
	fmt.Fprintf(bw, "%s: %d\n", labelAnswered, len(s.History))
	fmt.Fprintf(bw, "%s: %d\n", labelCorrect, s.Correct)
	fmt.Fprintf(bw, "%s: %d\n", labelWrong, s.Wrong)
	fmt.Fprintf(bw, "%s: %.2f%%\n", labelFinal, s.ScorePercent())

	for i, turn := range s.History {
		fmt.Fprintf(bw, "\n--- Q%d ---\n", i+1)
		fmt.Fprintln(bw, blockQuestion)
		writeBody(bw, lines(turn.Question))
		fmt.Fprintln(bw, blockAnswer)
		writeBody(bw, lines(turn.Answer))
		fmt.Fprintln(bw, blockReference)
		writeBody(bw, lines(turn.ReferenceAnswer))
		fmt.Fprintf(bw, "%s%.2f\n", prefixScore, turn.Score)

		explanation := lines(turn.Explanation)
		fmt.Fprintf(bw, "%s%s\n", prefixExplain, explanation[0])
		writeBody(bw, explanation[1:])
	}

	return bw.Flush()
}

func writeBody(w io.Writer, body []string) {
	for _, l := range body {
		fmt.Fprintln(w, indent+l)
	}
}

// lines splits text on line breaks. It always returns at least one line.
func lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n")
}
