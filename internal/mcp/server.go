// Package mcp exposes the document index, analyzer and knowledge
// tables as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Gloucester-City-Council/civic-docs/internal/analyzer"
	"github.com/Gloucester-City-Council/civic-docs/internal/harvester"
	"github.com/Gloucester-City-Council/civic-docs/internal/index"
	"github.com/Gloucester-City-Council/civic-docs/internal/knowledge"
	"github.com/Gloucester-City-Council/civic-docs/internal/ranker"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
}

// Server wraps the MCP server around the search and analysis core.
type Server struct {
	mcpServer *server.MCPServer
	store     *index.Store
	ranker    *ranker.Ranker
	registry  *knowledge.Registry
	fetcher   *harvester.Fetcher
}

// NewServer creates an MCP server exposing the civic document tools.
func NewServer(config Config, store *index.Store, registry *knowledge.Registry, fetcher *harvester.Fetcher) *Server {
	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		ranker:    ranker.New(store),
		registry:  registry,
		fetcher:   fetcher,
	}

	searchTool := mcp.NewTool("search_documents",
		mcp.WithDescription("Search indexed council documents by query. Returns ranked snippets with document metadata."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query string"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
		mcp.WithString("council",
			mcp.Description("Only return chunks from this council"),
		),
		mcp.WithString("committee",
			mcp.Description("Only return chunks from this committee"),
		),
		mcp.WithString("committee_id",
			mcp.Description("Only return chunks with this committee ID"),
		),
		mcp.WithString("meeting_id",
			mcp.Description("Only return chunks with this meeting ID"),
		),
		mcp.WithString("from_date",
			mcp.Description("Earliest meeting date, DD/MM/YYYY inclusive"),
		),
		mcp.WithString("to_date",
			mcp.Description("Latest meeting date, DD/MM/YYYY inclusive"),
		),
	)
	mcpServer.AddTool(searchTool, s.searchHandler)

	analyzeTool := mcp.NewTool("analyze_document",
		mcp.WithDescription("Analyze one council document: classify its type and extract title, sections, recommendations, questions, motion or amendment with a confidence assessment."),
		mcp.WithString("url",
			mcp.Description("URL of the document to fetch and analyze"),
		),
		mcp.WithString("text",
			mcp.Description("Document text to analyze directly (alternative to url)"),
		),
		mcp.WithString("sections",
			mcp.Description("Comma-separated section names to return (e.g. recommendations,financial_implications)"),
		),
		mcp.WithNumber("max_items",
			mcp.Description("Cap on sections, recommendations and questions returned"),
		),
	)
	mcpServer.AddTool(analyzeTool, s.analyzeHandler)

	statusTool := mcp.NewTool("index_status",
		mcp.WithDescription("Report whether an index is built and how many chunks it holds"),
	)
	mcpServer.AddTool(statusTool, s.statusHandler)

	councilsTool := mcp.NewTool("list_councils",
		mcp.WithDescription("List the known councils"),
	)
	mcpServer.AddTool(councilsTool, s.councilsHandler)

	committeesTool := mcp.NewTool("list_committees",
		mcp.WithDescription("List known committees, optionally for one council"),
		mcp.WithString("council",
			mcp.Description("Council name to filter by"),
		),
	)
	mcpServer.AddTool(committeesTool, s.committeesHandler)

	wardTool := mcp.NewTool("lookup_ward",
		mcp.WithDescription("Look a ward up by name"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Ward name (case-insensitive)"),
		),
	)
	mcpServer.AddTool(wardTool, s.wardHandler)

	return s
}

// searchHandler handles the search_documents tool call.
func (s *Server) searchHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	searchReq := models.SearchRequest{
		Query: query,
		TopK:  req.GetInt("limit", 0),
		Filters: models.SearchFilters{
			Council:     req.GetString("council", ""),
			Committee:   req.GetString("committee", ""),
			CommitteeID: req.GetString("committee_id", ""),
			MeetingID:   req.GetString("meeting_id", ""),
			FromDate:    req.GetString("from_date", ""),
			ToDate:      req.GetString("to_date", ""),
		},
	}

	response, err := s.ranker.Search(searchReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(response)
}

// analyzeHandler handles the analyze_document tool call.
func (s *Server) analyzeHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	pageURL := req.GetString("url", "")

	if text == "" && pageURL == "" {
		return mcp.NewToolResultError("either url or text parameter is required"), nil
	}
	if text == "" {
		fetched, _, err := s.fetcher.FetchText(ctx, pageURL)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
		}
		text = fetched
	}

	opts := analyzer.Options{
		MaxItems: req.GetInt("max_items", 0),
	}
	if raw := req.GetString("sections", ""); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.Sections = append(opts.Sections, name)
			}
		}
	}

	return jsonResult(analyzer.Analyze(text, opts))
}

// statusHandler handles the index_status tool call.
func (s *Server) statusHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, built := s.store.Chunks()
	status := struct {
		Built   bool   `json:"built"`
		Chunks  int    `json:"chunks"`
		Version uint64 `json:"version"`
	}{
		Built:   built,
		Chunks:  s.store.Len(),
		Version: s.store.Version(),
	}
	return jsonResult(status)
}

// councilsHandler handles the list_councils tool call.
func (s *Server) councilsHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.registry.Councils())
}

// committeesHandler handles the list_committees tool call.
func (s *Server) committeesHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	council := req.GetString("council", "")
	return jsonResult(s.registry.Committees(council))
}

// wardHandler handles the lookup_ward tool call.
func (s *Server) wardHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	ward, ok := s.registry.WardByName(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("ward not found: %s", name)), nil
	}
	return jsonResult(ward)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ServeStdio starts the MCP server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
