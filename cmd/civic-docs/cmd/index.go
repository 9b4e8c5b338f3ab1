package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gloucester-City-Council/civic-docs/internal/chunker"
	"github.com/Gloucester-City-Council/civic-docs/internal/harvester"
)

var indexDocuments string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build an index from a harvested document dump",
	Long: `Build an in-memory index from a harvested document JSON dump and
report its statistics. The index lives only for the lifetime of the
process; use "serve" to keep one available to MCP clients.

Example:
  civic-docs index --documents harvest.json`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&indexDocuments, "documents", "", "Path to the harvested document JSON dump")
	indexCmd.MarkFlagRequired("documents")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	docs, err := harvester.LoadDocuments(indexDocuments)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}

	chunks, result := chunker.BuildIndex(docs, chunker.Options{
		ChunkSize: cfg.Index.ChunkSize,
		Overlap:   cfg.Index.Overlap,
	})

	fmt.Printf("Indexed %d documents into %d chunks in %s\n",
		result.DocsChunked, len(chunks), result.Duration.Round(time.Millisecond))
	for _, e := range result.Errors {
		fmt.Printf("  warning: %s\n", e)
	}
	return nil
}
