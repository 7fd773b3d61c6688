// Package cli defines the cobra commands of the interviewer binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile         string
	interviewConfig string
	logLevel        string
	version         = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "interviewer",
	Short: "Adaptive Excel mock interviews",
	Long: `interviewer runs Excel mock interviews. Questions are generated for the
chosen domain at a difficulty that follows the candidate's answers, each
answer is scored, and a plain-text report is written when the interview ends.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading configuration")
	rootCmd.PersistentFlags().StringVar(&interviewConfig, "interview-config", "", "Interview YAML file (overrides INTERVIEW_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(domainsCmd)
}
