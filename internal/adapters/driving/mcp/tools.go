package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// SearchInput is the shared input schema for the search tools.
type SearchInput struct {
	Query         string `json:"query" jsonschema:"the text or pattern to search for"`
	Replace       string `json:"replace,omitempty" jsonschema:"replacement template, or function name in function mode"`
	Mode          string `json:"mode,omitempty" jsonschema:"query mode: literal, regex or function (default literal)"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"match case exactly"`
	DotAll        bool   `json:"dot_all,omitempty" jsonschema:"let . match newlines in regex modes"`
	Where         string `json:"where,omitempty" jsonschema:"scope: text or styles (default text)"`
}

// SearchOutput is the output schema for the search tools.
type SearchOutput struct {
	Found       bool     `json:"found"`
	Document    string   `json:"document,omitempty"`
	Occurrences int      `json:"occurrences"`
	Changed     []string `json:"changed,omitempty"`
	Message     string   `json:"message,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "count",
		Description: "Count occurrences of a query across the book's documents",
	}, s.handleCount)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find",
		Description: "Find the first document holding an occurrence of a query",
	}, s.handleFind)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "replace_all",
		Description: "Replace every occurrence of a query across the book's documents",
	}, s.handleReplaceAll)
}

// buildRequest maps tool input onto a search request. MCP calls are
// stateless, so there is no current editor and the scope defaults to
// the whole text group.
func buildRequest(input SearchInput) (domain.SearchRequest, error) {
	req := domain.SearchRequest{
		Find:          input.Query,
		Replace:       input.Replace,
		Mode:          domain.ModeLiteral,
		CaseSensitive: input.CaseSensitive,
		DotAll:        input.DotAll,
		Direction:     domain.DirectionDown,
		Wrap:          true,
		Where:         domain.WhereText,
	}
	if input.Mode != "" {
		req.Mode = domain.Mode(input.Mode)
	}
	if input.Where != "" {
		req.Where = domain.Where(input.Where)
	}
	if err := req.Validate(); err != nil {
		return domain.SearchRequest{}, err
	}
	return req, nil
}

func (s *Server) handleCount(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req, err := buildRequest(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	out, err := s.ports.Searcher.Count(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, outcomeOutput(out), nil
}

func (s *Server) handleFind(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req, err := buildRequest(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	out, err := s.ports.Searcher.Find(ctx, req)
	if errors.Is(err, domain.ErrNoMatch) {
		return nil, SearchOutput{Message: err.Error()}, nil
	}
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, outcomeOutput(out), nil
}

func (s *Server) handleReplaceAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req, err := buildRequest(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	out, err := s.ports.Searcher.ReplaceAll(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if out.Occurrences > 0 && s.ports.Save != nil {
		if err := s.ports.Save(); err != nil {
			return nil, SearchOutput{}, fmt.Errorf("saving book: %w", err)
		}
	}
	return nil, outcomeOutput(out), nil
}

func outcomeOutput(out domain.MatchOutcome) SearchOutput {
	return SearchOutput{
		Found:       out.Found,
		Document:    out.Document,
		Occurrences: out.Occurrences,
		Changed:     out.Changed,
	}
}
