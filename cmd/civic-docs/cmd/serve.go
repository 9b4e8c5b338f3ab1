package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gloucester-City-Council/civic-docs/internal/chunker"
	"github.com/Gloucester-City-Council/civic-docs/internal/harvester"
	"github.com/Gloucester-City-Council/civic-docs/internal/index"
	"github.com/Gloucester-City-Council/civic-docs/internal/knowledge"
	"github.com/Gloucester-City-Council/civic-docs/internal/mcp"
)

var serveDocuments string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server for council document search and analysis.

The server communicates via stdio and provides these tools:
  - search_documents: BM25 search over the indexed chunks
  - analyze_document: classify and structurally analyze one document
  - index_status:     report index size and version
  - list_councils, list_committees, lookup_ward: knowledge lookups

Example:
  civic-docs serve --documents harvest.json`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveDocuments, "documents", "", "Harvested document dump to index at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	store := index.NewStore()
	if serveDocuments != "" {
		docs, err := harvester.LoadDocuments(serveDocuments)
		if err != nil {
			return fmt.Errorf("loading documents: %w", err)
		}
		chunks, _ := chunker.BuildIndex(docs, chunker.Options{
			ChunkSize: cfg.Index.ChunkSize,
			Overlap:   cfg.Index.Overlap,
		})
		store.Set(chunks)
	}

	registry, err := knowledge.Load(cfg.Knowledge.DataDir)
	if err != nil {
		return fmt.Errorf("loading knowledge tables: %w", err)
	}

	fetcher := harvester.New(harvester.Config{
		Timeout:   cfg.Harvester.Timeout,
		UserAgent: cfg.Harvester.UserAgent,
	})

	server := mcp.NewServer(mcp.Config{
		Name:    cfg.MCP.Name,
		Version: cfg.MCP.Version,
	}, store, registry, fetcher)

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server...")

	return server.ServeStdio()
}
