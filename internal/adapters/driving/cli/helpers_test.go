package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// newBookDir lays out a small exploded book on disk.
func newBookDir(t *testing.T, docs map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, text := range docs {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	return root
}

// resetCommands restores the package-level flag state after a test so
// executions do not leak into each other.
func resetCommands(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		verboseFlag, bookFlag, dirFlag, storeFlag, configFlag = false, "", "", "", ""
		searchMode, searchDirection, searchWhere, searchReplace, searchOpen = "", "", "", "", ""
		searchCase, searchDotAll, searchJSON = false, false, false
		searchWrap = true
		for _, c := range []*cobra.Command{findCmd, countCmd, replaceAllCmd, settingsSetCmd} {
			c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		}
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCommands(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
