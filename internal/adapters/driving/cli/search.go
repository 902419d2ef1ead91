package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

var (
	searchMode      string
	searchCase      bool
	searchDotAll    bool
	searchDirection string
	searchWrap      bool
	searchWhere     string
	searchReplace   string
	searchOpen      string
	searchJSON      bool
)

var findCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Find the next occurrence in the book",
	Long: `Finds the next occurrence of the query and reports which document
holds it. Use --open to start from a particular document's cursor.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

var countCmd = &cobra.Command{
	Use:   "count [query]",
	Short: "Count occurrences across the scope",
	Args:  cobra.ExactArgs(1),
	RunE:  runCount,
}

var replaceAllCmd = &cobra.Command{
	Use:   "replace-all [query]",
	Short: "Replace every occurrence across the scope",
	Long: `Replaces every occurrence of the query in the scope and writes the
book back. A checkpoint is taken first; when nothing matches, the book
is left byte-for-byte untouched and the checkpoint is discarded.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplaceAll,
}

func init() {
	for _, cmd := range []*cobra.Command{findCmd, countCmd, replaceAllCmd} {
		cmd.Flags().StringVarP(&searchMode, "mode", "m", "", "query mode: literal, regex or function")
		cmd.Flags().BoolVar(&searchCase, "case-sensitive", false, "match case exactly")
		cmd.Flags().BoolVar(&searchDotAll, "dot-all", false, "let . match newlines (regex modes)")
		cmd.Flags().StringVar(&searchDirection, "direction", "", "search direction: down or up")
		cmd.Flags().BoolVar(&searchWrap, "wrap", true, "wrap past the end of the scope")
		cmd.Flags().StringVarP(&searchWhere, "where", "w", "", "scope: current, text, styles, selected or marked")
		cmd.Flags().StringVar(&searchOpen, "open", "", "open this document as the current editor first")
		cmd.Flags().BoolVar(&searchJSON, "json", false, "output the outcome as JSON")
		cmd.Flags().StringVarP(&searchReplace, "replace", "r", "", "replacement template or function name")
		rootCmd.AddCommand(cmd)
	}
}

// buildRequest seeds a request from the configured defaults, then
// applies whichever flags were set on the command line. The CLI has no
// current editor unless --open names one, so the scope defaults to the
// whole text group rather than "current".
func buildRequest(cmd *cobra.Command, s *session, find string) (domain.SearchRequest, error) {
	req := s.defaults.NewRequest(find, searchReplace)
	if !cmd.Flags().Changed("where") && searchOpen == "" {
		req.Where = domain.WhereText
	}

	if cmd.Flags().Changed("mode") {
		req.Mode = domain.Mode(searchMode)
	}
	if cmd.Flags().Changed("case-sensitive") {
		req.CaseSensitive = searchCase
	}
	if cmd.Flags().Changed("dot-all") {
		req.DotAll = searchDotAll
	}
	if cmd.Flags().Changed("direction") {
		req.Direction = domain.Direction(searchDirection)
	}
	if cmd.Flags().Changed("wrap") {
		req.Wrap = searchWrap
	}
	if cmd.Flags().Changed("where") {
		req.Where = domain.Where(searchWhere)
	}
	if err := req.Validate(); err != nil {
		return domain.SearchRequest{}, err
	}
	return req, nil
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if searchOpen != "" {
		if _, err := s.workspace.OpenEditor(ctx, searchOpen); err != nil {
			return err
		}
	}
	req, err := buildRequest(cmd, s, args[0])
	if err != nil {
		return err
	}

	out, err := s.searcher.Find(ctx, req)
	if errors.Is(err, domain.ErrNoMatch) {
		cmd.Println(err.Error())
		return nil
	}
	if err != nil {
		return err
	}

	if searchJSON {
		return outputJSON(cmd, out)
	}
	cmd.Printf("Found a match in %s\n", out.Document)
	if ed, ok := s.workspace.Editor(out.Document); ok {
		if sel, ok := ed.(*memory.Editor); ok {
			start, end := sel.Selection()
			cmd.Printf("  at bytes [%d:%d): %q\n", start, end, sel.RawText()[start:end])
		}
	}
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if searchOpen != "" {
		if _, err := s.workspace.OpenEditor(ctx, searchOpen); err != nil {
			return err
		}
	}
	req, err := buildRequest(cmd, s, args[0])
	if err != nil {
		return err
	}

	out, err := s.searcher.Count(ctx, req)
	if err != nil {
		return err
	}
	if searchJSON {
		return outputJSON(cmd, out)
	}
	cmd.Printf("Found %d occurrences of %q\n", out.Occurrences, args[0])
	return nil
}

func runReplaceAll(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if searchOpen != "" {
		if _, err := s.workspace.OpenEditor(ctx, searchOpen); err != nil {
			return err
		}
	}
	req, err := buildRequest(cmd, s, args[0])
	if err != nil {
		return err
	}

	out, err := s.searcher.ReplaceAll(ctx, req)
	if err != nil {
		return err
	}
	if out.Occurrences > 0 {
		if err := s.persist(ctx); err != nil {
			return fmt.Errorf("saving book: %w", err)
		}
	}

	if searchJSON {
		return outputJSON(cmd, out)
	}
	cmd.Printf("Replaced %d occurrences of %q\n", out.Occurrences, args[0])
	for _, name := range out.Changed {
		cmd.Printf("  changed: %s\n", name)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, out domain.MatchOutcome) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling outcome: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
