package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mockinterview/interviewer/internal/domain/difficulty"
	"github.com/mockinterview/interviewer/internal/transcript"
)

var showCmd = &cobra.Command{
	Use:   "show <transcript>",
	Short: "Print a saved interview report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := transcript.Read(f)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
		printDocument(cmd.OutOrStdout(), doc)
		return nil
	},
}

func printDocument(w io.Writer, doc *transcript.Document) {
	fmt.Fprintf(w, "%s  %s <%s>\n", color.CyanString("Candidate"), doc.Name, doc.Email)
	fmt.Fprintf(w, "%s     %s\n", color.CyanString("Domain"), doc.Domain)
	fmt.Fprintf(w, "%s       %s\n", color.CyanString("Date"), doc.Date.Format(transcript.DateLayout))
	fmt.Fprintf(w, "%s     %d asked, %d answered, %d correct, %d wrong\n",
		color.CyanString("Result"), doc.Asked, doc.Answered, doc.Correct, doc.Wrong)
	fmt.Fprintf(w, "%s %s\n", color.CyanString("Final score"), color.New(color.Bold).Sprintf("%.2f%%", doc.FinalScore))

	for i, t := range doc.Turns {
		fmt.Fprintf(w, "\n%s %s\n",
			color.HiBlackString("Q%d", i+1),
			t.Question)
		fmt.Fprintf(w, "  Answer:    %s\n", t.Answer)
		fmt.Fprintf(w, "  Reference: %s\n", t.ReferenceAnswer)
		fmt.Fprintf(w, "  Score:     %s  %s\n", scoreColor(difficulty.Classify(t.Score))("%.2f", t.Score), t.Explanation)
	}
}
