// Package cli provides the cobra command tree for the Replaca CLI.
// Commands open a book container (an EPUB zip or an exploded
// directory), build an in-memory workspace over it, and drive the
// search service.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/replaca-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	bookFlag    string
	dirFlag     string
	storeFlag   string
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "replaca",
	Short: "Find and replace across the documents of an ebook",
	Long: `Replaca is a find/replace engine for ebooks.

It searches and rewrites text across the documents of a book - an EPUB
file or an exploded book directory - with literal, regex or
function-based replacements, deterministic multi-document ordering and
checkpointed replace-all.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&bookFlag, "book", "b", "", "path to an EPUB (zip) book")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "path to an exploded book directory")
	rootCmd.PersistentFlags().StringVarP(&storeFlag, "store", "s", "", "path to a SQLite working-copy data directory")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config directory (default ~/.replaca)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
