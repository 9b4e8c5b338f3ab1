package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gloucester-City-Council/civic-docs/internal/chunker"
	"github.com/Gloucester-City-Council/civic-docs/internal/harvester"
	"github.com/Gloucester-City-Council/civic-docs/internal/index"
	"github.com/Gloucester-City-Council/civic-docs/internal/ranker"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

var (
	searchDocuments   string
	searchLimit       int
	searchFormat      string
	searchCouncil     string
	searchCommittee   string
	searchCommitteeID string
	searchMeetingID   string
	searchFromDate    string
	searchToDate      string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a harvested document dump",
	Long: `Build an in-memory index from a harvested document dump and run one
query against it.

Examples:
  # Basic search
  civic-docs search "parking enforcement" --documents harvest.json

  # Narrow to one council and date range
  civic-docs search "budget" --documents harvest.json \
    --council "Gloucester City Council" --from-date 01/01/2024

  # JSON output for scripting
  civic-docs search "local plan" --documents harvest.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchDocuments, "documents", "", "Path to the harvested document JSON dump")
	searchCmd.MarkFlagRequired("documents")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (default from config)")
	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "Output format: text or json")
	searchCmd.Flags().StringVar(&searchCouncil, "council", "", "Only return chunks from this council")
	searchCmd.Flags().StringVar(&searchCommittee, "committee", "", "Only return chunks from this committee")
	searchCmd.Flags().StringVar(&searchCommitteeID, "committee-id", "", "Only return chunks with this committee ID")
	searchCmd.Flags().StringVar(&searchMeetingID, "meeting-id", "", "Only return chunks with this meeting ID")
	searchCmd.Flags().StringVar(&searchFromDate, "from-date", "", "Earliest meeting date, DD/MM/YYYY inclusive")
	searchCmd.Flags().StringVar(&searchToDate, "to-date", "", "Latest meeting date, DD/MM/YYYY inclusive")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	cfg := GetConfig()

	docs, err := harvester.LoadDocuments(searchDocuments)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}

	chunks, _ := chunker.BuildIndex(docs, chunker.Options{
		ChunkSize: cfg.Index.ChunkSize,
		Overlap:   cfg.Index.Overlap,
	})
	store := index.NewStore()
	store.Set(chunks)

	limit := searchLimit
	if limit == 0 {
		limit = cfg.Search.DefaultLimit
	}

	response, err := ranker.New(store).Search(models.SearchRequest{
		Query: query,
		TopK:  limit,
		Filters: models.SearchFilters{
			Council:     searchCouncil,
			Committee:   searchCommittee,
			CommitteeID: searchCommitteeID,
			MeetingID:   searchMeetingID,
			FromDate:    searchFromDate,
			ToDate:      searchToDate,
		},
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchFormat == "json" {
		output, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	if len(response.Results) == 0 {
		if response.Note != "" {
			fmt.Println(response.Note)
		} else {
			fmt.Println("No results found.")
		}
		return nil
	}

	fmt.Printf("Found %d results (%d of %d chunks searched):\n\n",
		len(response.Results), response.FilteredChunks, response.TotalChunks)
	for i, result := range response.Results {
		fmt.Printf("─── Result %d ───\n", i+1)
		fmt.Printf("Score:    %.3f\n", result.Score)
		fmt.Printf("Title:    %s\n", result.DocumentTitle)
		if result.Council != "" {
			fmt.Printf("Council:  %s\n", result.Council)
		}
		if result.Committee != "" {
			fmt.Printf("Committee: %s\n", result.Committee)
		}
		if result.MeetingDate != "" {
			fmt.Printf("Meeting:  %s\n", result.MeetingDate)
		}
		fmt.Printf("Chunk:    %s\n", result.ChunkPosition)
		fmt.Printf("Snippet:\n%s\n\n", result.Snippet)
	}
	return nil
}
