package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Gloucester-City-Council/civic-docs/internal/analyzer"
	"github.com/Gloucester-City-Council/civic-docs/internal/harvester"
)

var (
	analyzeSections string
	analyzeMaxItems int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file or URL]",
	Short: "Classify and structurally analyze one document",
	Long: `Classify one council document (committee report, public questions,
motion or amendment) and extract its structure with a confidence
assessment. The argument is a local text file or an http(s) URL.

Examples:
  civic-docs analyze minutes.txt
  civic-docs analyze https://example.gov.uk/documents/s12345/report.html
  civic-docs analyze report.txt --sections recommendations,financial_implications`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeSections, "sections", "", "Comma-separated section names to return")
	analyzeCmd.Flags().IntVar(&analyzeMaxItems, "max-items", 0, "Cap on sections, recommendations and questions")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := args[0]
	cfg := GetConfig()

	var text string
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		fetcher := harvester.New(harvester.Config{
			Timeout:   cfg.Harvester.Timeout,
			UserAgent: cfg.Harvester.UserAgent,
		})
		fetched, _, err := fetcher.FetchText(ctx, source)
		if err != nil {
			return fmt.Errorf("fetching document: %w", err)
		}
		text = fetched
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		text = string(data)
	}

	opts := analyzer.Options{MaxItems: analyzeMaxItems}
	for _, name := range strings.Split(analyzeSections, ",") {
		if name = strings.TrimSpace(name); name != "" {
			opts.Sections = append(opts.Sections, name)
		}
	}

	analysis := analyzer.Analyze(text, opts)

	output, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
