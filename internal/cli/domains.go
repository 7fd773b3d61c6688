package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockinterview/interviewer/internal/domain/category"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the interview domains",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range category.All() {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
	},
}
