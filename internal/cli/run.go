package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mockinterview/interviewer/internal/domain/category"
	"github.com/mockinterview/interviewer/internal/domain/difficulty"
	"github.com/mockinterview/interviewer/internal/domain/interview"
	"github.com/mockinterview/interviewer/internal/service"
)

// exitCommand ends the interview early from the prompt.
const exitCommand = "exit"

var (
	runName   string
	runEmail  string
	runDomain string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take an interview in the terminal",
	Long: `Starts an interview on standard input. Details not given as flags are
asked for. Answer each question on one line; type "skip" to skip a question
or "exit" to finish early. The report is written when the interview ends.`,
	RunE: runInterview,
}

func init() {
	runCmd.Flags().StringVar(&runName, "name", "", "Candidate name")
	runCmd.Flags().StringVar(&runEmail, "email", "", "Candidate email")
	runCmd.Flags().StringVar(&runDomain, "domain", "", "Interview domain (see: interviewer domains)")
}

func runInterview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		a.close(shutdownCtx)
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	d := newDriver(a.interviews, os.Stdin, cmd.OutOrStdout())
	return d.run(ctx, runName, runEmail, runDomain)
}

// driver runs one interview over a line-oriented reader and writer.
type driver struct {
	interviews *service.InterviewService
	in         *bufio.Scanner
	out        io.Writer
}

func newDriver(svc *service.InterviewService, in io.Reader, out io.Writer) *driver {
	return &driver{
		interviews: svc,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// errInputClosed means the input ended before a required value was read.
var errInputClosed = errors.New("input closed")

func (d *driver) run(ctx context.Context, name, email, domain string) error {
	var err error
	if name, err = d.value(name, "Full name"); err != nil {
		return err
	}
	if email, err = d.value(email, "Email address"); err != nil {
		return err
	}
	if domain, err = d.value(domain, "Domain ("+domainList()+")"); err != nil {
		return err
	}

	sess, err := d.interviews.Start(ctx, name, email, domain)
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "\nWelcome, %s. This is a %d-question Excel interview in the %s domain.\n",
		sess.Name, sess.MaxQuestions(), sess.Category)
	fmt.Fprintf(d.out, "Type %q to skip a question or %q to finish early.\n",
		interview.SkipMarker, exitCommand)

	for !sess.Finished() {
		d.printQuestion(sess)

		answer, ok := d.readAnswer()
		if !ok || strings.EqualFold(answer, exitCommand) {
			if err := d.interviews.Exit(ctx, sess); err != nil {
				return err
			}
			break
		}

		fb, err := d.interviews.Submit(ctx, sess, answer)
		if err != nil {
			return err
		}
		d.printFeedback(fb.Turn)
	}

	d.printSummary(sess)
	return nil
}

// value returns v, or asks for it when empty.
func (d *driver) value(v, label string) (string, error) {
	if strings.TrimSpace(v) != "" {
		return v, nil
	}
	fmt.Fprintf(d.out, "%s: ", label)
	if !d.in.Scan() {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), d.scanErr())
	}
	return strings.TrimSpace(d.in.Text()), nil
}

// readAnswer reads the next non-blank line. ok is false once input ends.
func (d *driver) readAnswer() (string, bool) {
	for {
		fmt.Fprint(d.out, "> ")
		if !d.in.Scan() {
			fmt.Fprintln(d.out)
			return "", false
		}
		if answer := strings.TrimSpace(d.in.Text()); answer != "" {
			return answer, true
		}
	}
}

func (d *driver) scanErr() error {
	if err := d.in.Err(); err != nil {
		return err
	}
	return errInputClosed
}

func (d *driver) printQuestion(sess *interview.Session) {
	fmt.Fprintf(d.out, "\n%s %s\n",
		color.CyanString("Question %d/%d", sess.Asked, sess.MaxQuestions()),
		color.HiBlackString("(difficulty %d)", sess.Difficulty))
	if sess.FallbackQuestion {
		fmt.Fprintln(d.out, color.YellowString("The question service is unavailable; this is a standard question."))
	}
	fmt.Fprintln(d.out, sess.CurrentQuestion)
}

func (d *driver) printFeedback(t interview.Turn) {
	fmt.Fprintf(d.out, "Score: %s\n", scoreColor(t.Outcome)("%.2f", t.Score))
	fmt.Fprintf(d.out, "Explanation: %s\n", t.Explanation)
	fmt.Fprintf(d.out, "Correct answer: %s\n", t.ReferenceAnswer)
}

func (d *driver) printSummary(sess *interview.Session) {
	fmt.Fprintf(d.out, "\n%s\n", color.CyanString("Interview finished"))
	fmt.Fprintf(d.out, "Questions asked: %d, correct: %d, wrong: %d\n", sess.Asked, sess.Correct, sess.Wrong)
	fmt.Fprintf(d.out, "Final score: %s\n", color.New(color.Bold).Sprintf("%.2f%%", sess.FinalScorePercent()))
	fmt.Fprintf(d.out, "Transcript saved as: %s\n", sess.TranscriptPath)
}

func scoreColor(o difficulty.Outcome) func(format string, a ...interface{}) string {
	switch o {
	case difficulty.OutcomeCorrect:
		return color.GreenString
	case difficulty.OutcomeWrong:
		return color.RedString
	default:
		return color.YellowString
	}
}

func domainList() string {
	names := make([]string, 0, len(category.All()))
	for _, c := range category.All() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

