package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists documents with categories", func(t *testing.T) {
		container := &mockContainer{refs: []domain.DocumentRef{
			{Name: "OEBPS/ch1.xhtml", Category: domain.CategoryText},
			{Name: "OEBPS/main.css", Category: domain.CategoryStyles},
		}}
		server, err := NewServer(&Ports{Searcher: &mockSearcher{}, Documents: container})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, readRequest(uriScheme+"documents"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "OEBPS/ch1.xhtml")
		assert.Contains(t, result.Contents[0].Text, `"category": "styles"`)
	})

	t.Run("no container yields an empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Searcher: &mockSearcher{}})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, readRequest(uriScheme+"documents"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()
	container := &mockContainer{text: map[string]string{
		"OEBPS/ch1.xhtml": "<p>hello</p>",
	}}
	server, err := NewServer(&Ports{Searcher: &mockSearcher{}, Documents: container})
	require.NoError(t, err)

	t.Run("returns the raw text", func(t *testing.T) {
		result, err := server.handleDocumentContentResource(ctx,
			readRequest(uriScheme+"documents/OEBPS/ch1.xhtml"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "<p>hello</p>", result.Contents[0].Text)
	})

	t.Run("unknown document fails", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx,
			readRequest(uriScheme+"documents/missing.xhtml"))
		assert.Error(t, err)
	})

	t.Run("malformed URI fails", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx,
			readRequest("bogus://nope"))
		assert.Error(t, err)
	})
}

func TestExtractDocumentName(t *testing.T) {
	assert.Equal(t, "OEBPS/ch1.xhtml", extractDocumentName(uriScheme+"documents/OEBPS/ch1.xhtml"))
	assert.Empty(t, extractDocumentName(uriScheme+"sources/x"))
	assert.Empty(t, extractDocumentName("http://example.com"))
}
