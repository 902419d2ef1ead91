package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/functions"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the builtin replace functions",
	Long: `Lists the replace functions usable with --mode function. In that
mode the --replace value names a function, which computes the
replacement text for each match.`,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range functions.NewBuiltinRegistry().Names() {
			cmd.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}
