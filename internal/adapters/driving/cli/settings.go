package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage search defaults",
	Long: `View and configure the defaults applied to searches when the
corresponding flag is not passed.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current defaults",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change search defaults",
	Long: `Change one or more search defaults. Only the flags you pass are
updated; the rest keep their stored values.

Examples:
  replaca settings set --mode regex
  replaca settings set --wrap=false --where text`,
	RunE: runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().String("mode", "", "default mode: literal, regex or function")
	settingsSetCmd.Flags().String("direction", "", "default direction: down or up")
	settingsSetCmd.Flags().String("where", "", "default scope: current, text, styles, selected or marked")
	settingsSetCmd.Flags().Bool("case-sensitive", false, "match case exactly by default")
	settingsSetCmd.Flags().Bool("wrap", true, "wrap past the end of the scope by default")
	settingsSetCmd.Flags().Bool("dot-all", false, "let . match newlines by default")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cfg, err := file.NewConfigStore(configFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	d := cfg.Defaults()

	cmd.Println("Search Defaults")
	cmd.Println("===============")
	cmd.Printf("  Mode:           %s\n", d.Mode)
	cmd.Printf("  Direction:      %s\n", d.Direction)
	cmd.Printf("  Where:          %s\n", d.Where)
	cmd.Printf("  Case sensitive: %t\n", d.CaseSensitive)
	cmd.Printf("  Wrap:           %t\n", d.Wrap)
	cmd.Printf("  Dot matches \\n: %t\n", d.DotAll)
	cmd.Println()
	cmd.Printf("Config file: %s\n", cfg.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	cfg, err := file.NewConfigStore(configFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	d := cfg.Defaults()

	flags := cmd.Flags()
	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		d.Mode = domain.Mode(v)
	}
	if flags.Changed("direction") {
		v, _ := flags.GetString("direction")
		d.Direction = domain.Direction(v)
	}
	if flags.Changed("where") {
		v, _ := flags.GetString("where")
		d.Where = domain.Where(v)
	}
	if flags.Changed("case-sensitive") {
		d.CaseSensitive, _ = flags.GetBool("case-sensitive")
	}
	if flags.Changed("wrap") {
		d.Wrap, _ = flags.GetBool("wrap")
	}
	if flags.Changed("dot-all") {
		d.DotAll, _ = flags.GetBool("dot-all")
	}

	// Validate the enum fields by building a throwaway request with
	// the new defaults. The replace text is a placeholder so that
	// function mode, which requires one per search, stays settable.
	if err := d.NewRequest("x", "y").Validate(); err != nil {
		return err
	}
	if err := cfg.SetDefaults(d); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Println("Defaults saved.")
	return nil
}
