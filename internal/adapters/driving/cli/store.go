package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/container/dir"
	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/container/epub"
	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a book into a SQLite working copy",
	Long: `Copies the documents of --book or --dir into the SQLite store at
--store, replacing whatever book the store held. Later commands run
against the store directly, with checkpoints persisted alongside the
documents.`,
	RunE: runImport,
}

var checkpointsCmd = &cobra.Command{
	Use:   "checkpoints",
	Short: "List kept checkpoints in a SQLite working copy",
	RunE:  runCheckpointsList,
}

var checkpointsRestoreCmd = &cobra.Command{
	Use:   "restore [checkpoint-id]",
	Short: "Rewind the store's documents to a kept checkpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckpointsRestore,
}

func init() {
	rootCmd.AddCommand(importCmd)
	checkpointsCmd.AddCommand(checkpointsRestoreCmd)
	rootCmd.AddCommand(checkpointsCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if storeFlag == "" {
		return errors.New("import needs --store <data dir>")
	}

	var source driven.Container
	switch {
	case bookFlag != "" && dirFlag != "":
		return errors.New("--book and --dir are mutually exclusive")
	case bookFlag != "":
		c, err := epub.Open(bookFlag)
		if err != nil {
			return err
		}
		source = c
	case dirFlag != "":
		c, err := dir.Open(dirFlag)
		if err != nil {
			return err
		}
		defer c.Close()
		source = c
	default:
		return errors.New("import needs --book <file.epub> or --dir <directory>")
	}

	st, err := sqlite.NewStore(storeFlag)
	if err != nil {
		return err
	}
	defer st.Close()

	refs, err := source.List(ctx)
	if err != nil {
		return err
	}
	text := make(map[string]string, len(refs))
	for _, ref := range refs {
		raw, err := source.RawText(ctx, ref.Name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", ref.Name, err)
		}
		text[ref.Name] = raw
	}

	if err := st.Import(ctx, refs, text); err != nil {
		return err
	}
	cmd.Printf("Imported %d documents into %s\n", len(refs), st.Path())
	return nil
}

func runCheckpointsList(cmd *cobra.Command, _ []string) error {
	if storeFlag == "" {
		return errors.New("checkpoints needs --store <data dir>")
	}
	st, err := sqlite.NewStore(storeFlag)
	if err != nil {
		return err
	}
	defer st.Close()

	kept, err := st.KeptCheckpoints(cmd.Context())
	if err != nil {
		return err
	}
	if len(kept) == 0 {
		cmd.Println("No kept checkpoints.")
		return nil
	}
	for _, cp := range kept {
		cmd.Printf("%s  %s\n", cp.ID, cp.Label)
	}
	return nil
}

func runCheckpointsRestore(cmd *cobra.Command, args []string) error {
	if storeFlag == "" {
		return errors.New("checkpoints restore needs --store <data dir>")
	}
	st, err := sqlite.NewStore(storeFlag)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RestoreCheckpoint(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Restored checkpoint %s\n", args[0])
	return nil
}
