package epub

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// writeBook builds a minimal zip book on disk and returns its path.
func writeBook(t *testing.T, members map[string]string, order ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.epub")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range order {
		mw, err := w.Create(name)
		require.NoError(t, err)
		_, err = mw.Write([]byte(members[name]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func testMembers() (map[string]string, []string) {
	return map[string]string{
		"mimetype":           "application/epub+zip",
		"OEBPS/ch1.xhtml":    "<p>chapter one</p>",
		"OEBPS/ch2.xhtml":    "<p>chapter two</p>",
		"OEBPS/css/main.css": "p { margin: 0 }",
	}, []string{"mimetype", "OEBPS/ch1.xhtml", "OEBPS/ch2.xhtml", "OEBPS/css/main.css"}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	members, order := testMembers()
	c, err := Open(writeBook(t, members, order...))
	require.NoError(t, err)

	refs, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 4)
	assert.Equal(t, "mimetype", refs[0].Name, "archive order is preserved")
	assert.Equal(t, domain.CategoryText, refs[1].Category)
	assert.Equal(t, domain.CategoryStyles, refs[3].Category)
	assert.Equal(t, domain.CategoryOther, refs[0].Category)

	raw, err := c.RawText(ctx, "OEBPS/ch1.xhtml")
	require.NoError(t, err)
	assert.Equal(t, "<p>chapter one</p>", raw)

	_, err = c.RawText(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	t.Run("missing book fails", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "none.epub"))
		assert.Error(t, err)
	})
}

func TestContainer_WriteAndSave(t *testing.T) {
	ctx := context.Background()
	members, order := testMembers()
	path := writeBook(t, members, order...)

	c, err := Open(path)
	require.NoError(t, err)
	assert.False(t, c.Modified())

	require.NoError(t, c.WriteRawText(ctx, "OEBPS/ch1.xhtml", "<p>rewritten</p>"))
	assert.True(t, c.Modified())
	assert.ErrorIs(t, c.WriteRawText(ctx, "missing", "x"), domain.ErrNotFound)

	require.NoError(t, c.Save())
	assert.False(t, c.Modified())

	// Reopen from disk and check the change and the member order
	// survived the round trip.
	reopened, err := Open(path)
	require.NoError(t, err)
	raw, err := reopened.RawText(ctx, "OEBPS/ch1.xhtml")
	require.NoError(t, err)
	assert.Equal(t, "<p>rewritten</p>", raw)

	refs, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mimetype", refs[0].Name)

	t.Run("mimetype member stays uncompressed", func(t *testing.T) {
		r, err := zip.OpenReader(path)
		require.NoError(t, err)
		defer r.Close()
		require.NotEmpty(t, r.File)
		assert.Equal(t, "mimetype", r.File[0].Name)
		assert.Equal(t, zip.Store, r.File[0].Method)
	})
}

func TestContainer_SaveAs(t *testing.T) {
	ctx := context.Background()
	members, order := testMembers()
	c, err := Open(writeBook(t, members, order...))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "copy.epub")
	require.NoError(t, c.SaveAs(out))

	copied, err := Open(out)
	require.NoError(t, err)
	raw, err := copied.RawText(ctx, "OEBPS/ch2.xhtml")
	require.NoError(t, err)
	assert.Equal(t, "<p>chapter two</p>", raw)
}
