// Package analyzer turns raw document text into a structured analysis:
// classify the archetype, run the matching extractors, accumulate
// warnings for whatever could not be extracted, and rate confidence.
// Extraction never fails; a malformed document yields a best-effort
// analysis with warnings and low confidence.
package analyzer

import (
	"strings"

	"github.com/Gloucester-City-Council/civic-docs/internal/classifier"
	"github.com/Gloucester-City-Council/civic-docs/internal/extractor"
	"github.com/Gloucester-City-Council/civic-docs/internal/textutil"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// summaryLength caps the fallback summary taken from the document head.
const summaryLength = 300

// Options narrows what the analysis returns. Zero values mean no
// narrowing.
type Options struct {
	// Sections keeps only the named report sections in the output.
	// Recommendations and the summary are still derived from the full
	// section set.
	Sections []string
	// MaxItems caps the sections, recommendations and questions lists.
	MaxItems int
}

// Analyze runs the full extraction pipeline over one document's text.
func Analyze(text string, opts Options) *models.DocumentAnalysis {
	analysis := &models.DocumentAnalysis{}

	if strings.TrimSpace(text) == "" {
		analysis.DocumentType = models.TypeUnknown
		analysis.Title = extractor.UntitledDocument
		analysis.Warnings = append(analysis.Warnings, "document text is empty")
		analysis.Confidence = extractor.Assess(analysis)
		return analysis
	}

	analysis.DocumentType = classifier.Classify(text)
	analysis.Title = extractor.Title(text)
	analysis.Author = extractor.Author(text)
	analysis.Date = extractor.DocumentDate(text)

	switch analysis.DocumentType {
	case models.TypeCommitteeReport:
		analyzeReport(text, opts, analysis)

	case models.TypeQuestions:
		analysis.Questions = extractor.Questions(text)
		if len(analysis.Questions) == 0 {
			analysis.Warnings = append(analysis.Warnings, "no questions could be extracted")
		}

	case models.TypeMotion:
		motion := extractor.Motion(text)
		analysis.Motion = motion
		if motion.Title != "" {
			analysis.Title = motion.Title
		}
		if motion.MotionText == "" {
			analysis.Warnings = append(analysis.Warnings, "no motion text found")
		}

	case models.TypeAmendment:
		amendment := extractor.Amendment(text)
		analysis.Amendment = amendment
		if amendment.Title != "" {
			analysis.Title = amendment.Title
		}
		if amendment.FullText != "" {
			analysis.Warnings = append(analysis.Warnings,
				"amendment extraction captured little of the document; full text attached")
		}

	default:
		analysis.Summary = headSummary(text)
		analysis.Warnings = append(analysis.Warnings, "document type could not be determined")
	}

	if opts.MaxItems > 0 {
		if len(analysis.Sections) > opts.MaxItems {
			analysis.Sections = analysis.Sections[:opts.MaxItems]
		}
		if len(analysis.Recommendations) > opts.MaxItems {
			analysis.Recommendations = analysis.Recommendations[:opts.MaxItems]
		}
		if len(analysis.Questions) > opts.MaxItems {
			analysis.Questions = analysis.Questions[:opts.MaxItems]
		}
	}

	analysis.Confidence = extractor.Assess(analysis)
	return analysis
}

// analyzeReport extracts sections and recommendations. The summary and
// the recommendations come from the full section set; the Sections
// option only filters what is returned.
func analyzeReport(text string, opts Options, analysis *models.DocumentAnalysis) {
	sections := extractor.Sections(text)
	analysis.Recommendations = extractor.Recommendations(text, sections)
	analysis.Summary = reportSummary(text, sections)

	if len(sections) == 0 {
		analysis.Warnings = append(analysis.Warnings, "no recognizable sections found")
	}
	if len(analysis.Recommendations) == 0 {
		analysis.Warnings = append(analysis.Warnings, "no recommendations found")
	}

	if len(opts.Sections) > 0 {
		keep := make(map[string]bool, len(opts.Sections))
		for _, name := range opts.Sections {
			keep[name] = true
		}
		var filtered []models.Section
		for _, section := range sections {
			if keep[section.Name] {
				filtered = append(filtered, section)
			}
		}
		sections = filtered
	}
	analysis.Sections = sections
}

// reportSummary prefers the reason-for-report section; without one the
// document head stands in.
func reportSummary(text string, sections []models.Section) string {
	for _, section := range sections {
		if section.Name == "reason_for_report" {
			return truncateAtWord(section.Content)
		}
	}
	return headSummary(text)
}

func headSummary(text string) string {
	return truncateAtWord(textutil.Clean(text))
}

func truncateAtWord(s string) string {
	if len(s) <= summaryLength {
		return s
	}
	cut := s[:summaryLength]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
