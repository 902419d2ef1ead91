package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookDocs() map[string]string {
	return map[string]string{
		"OEBPS/ch1.xhtml": "<p>hello needle here</p>",
		"OEBPS/ch2.xhtml": "<p>a second needle and a needle more</p>",
		"OEBPS/main.css":  "p { color: red }",
	}
}

func TestFindCmd_Use(t *testing.T) {
	assert.Equal(t, "find [query]", findCmd.Use)
}

func TestFindCmd_Flags(t *testing.T) {
	flag := findCmd.Flags().Lookup("mode")
	require.NotNil(t, flag, "mode flag should exist")
	assert.Equal(t, "m", flag.Shorthand)

	flag = findCmd.Flags().Lookup("wrap")
	require.NotNil(t, flag, "wrap flag should exist")
	assert.Equal(t, "true", flag.DefValue)

	flag = findCmd.Flags().Lookup("replace")
	require.NotNil(t, flag, "replace flag should exist")
	assert.Equal(t, "r", flag.Shorthand)
}

func TestFindCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "find")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestFindCmd_NoContainer(t *testing.T) {
	_, err := execute(t, "find", "needle", "--config", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no book")
}

func TestFindCmd_ContainerFlagsAreExclusive(t *testing.T) {
	_, err := execute(t, "find", "needle",
		"--book", "a.epub", "--dir", "b", "--config", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestFindCmd_FindsInDirBook(t *testing.T) {
	root := newBookDir(t, bookDocs())

	out, err := execute(t, "find", "needle", "--dir", root, "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, "Found a match in OEBPS/ch1.xhtml")
	assert.Contains(t, out, `"needle"`)
}

func TestFindCmd_NoMatchIsInformational(t *testing.T) {
	root := newBookDir(t, bookDocs())

	out, err := execute(t, "find", "zebra", "--dir", root, "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, "no matches were found")
}

func TestFindCmd_JSONOutput(t *testing.T) {
	root := newBookDir(t, bookDocs())

	out, err := execute(t, "find", "needle", "--json", "--dir", root, "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, `"found": true`)
	assert.Contains(t, out, `"document": "OEBPS/ch1.xhtml"`)
}

func TestCountCmd_CountsAcrossTextDocuments(t *testing.T) {
	root := newBookDir(t, bookDocs())

	out, err := execute(t, "count", "needle", "--dir", root, "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, `Found 3 occurrences of "needle"`)
}

func TestCountCmd_StylesScope(t *testing.T) {
	root := newBookDir(t, bookDocs())

	out, err := execute(t, "count", "color", "--where", "styles", "--dir", root, "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, `Found 1 occurrences of "color"`)
}

func TestReplaceAllCmd_WritesThrough(t *testing.T) {
	root := newBookDir(t, bookDocs())

	out, err := execute(t, "replace-all", "needle",
		"--replace", "thread", "--dir", root, "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, `Replaced 3 occurrences of "needle"`)
	assert.Contains(t, out, "changed: OEBPS/ch1.xhtml")
	assert.Contains(t, out, "changed: OEBPS/ch2.xhtml")

	data, err := os.ReadFile(filepath.Join(root, "OEBPS", "ch1.xhtml"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hello thread here</p>", string(data))
}

func TestReplaceAllCmd_OpenEditorWritesThrough(t *testing.T) {
	root := newBookDir(t, bookDocs())

	// --open routes the edit through a live editor buffer; the result
	// must still land on disk when the command exits.
	out, err := execute(t, "replace-all", "needle",
		"--replace", "thread", "--open", "OEBPS/ch1.xhtml",
		"--dir", root, "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, `Replaced 1 occurrences of "needle"`)

	data, err := os.ReadFile(filepath.Join(root, "OEBPS", "ch1.xhtml"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hello thread here</p>", string(data))

	// The default scope with an open document is that document alone.
	data, err = os.ReadFile(filepath.Join(root, "OEBPS", "ch2.xhtml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "needle")
}

func TestReplaceAllCmd_NothingMatchesLeavesBookAlone(t *testing.T) {
	root := newBookDir(t, bookDocs())

	out, err := execute(t, "replace-all", "zebra",
		"--replace", "horse", "--dir", root, "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, `Replaced 0 occurrences of "zebra"`)

	data, err := os.ReadFile(filepath.Join(root, "OEBPS", "ch1.xhtml"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hello needle here</p>", string(data))
}

func TestReplaceAllCmd_InvalidModeFails(t *testing.T) {
	root := newBookDir(t, bookDocs())

	_, err := execute(t, "replace-all", "needle",
		"--mode", "bogus", "--dir", root, "--config", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
