package analyzer

import (
	"strings"
	"testing"

	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

const reportText = `Housing Strategy Update

1.0 Purpose of Report
1.1 To update members on delivery of the housing strategy.

2.0 Recommendations
2.1. That Council approves the revised housing strategy.
2.2. That Cabinet receives a progress report every six months.

3.0 Financial Implications
3.1 The revised programme is contained within existing budgets.

4.0 Legal Implications
4.1 None arising directly from this report.`

func TestAnalyze_Report(t *testing.T) {
	analysis := Analyze(reportText, Options{})

	if analysis.DocumentType != models.TypeCommitteeReport {
		t.Fatalf("DocumentType = %q, want %q", analysis.DocumentType, models.TypeCommitteeReport)
	}
	if analysis.Title != "Housing Strategy Update" {
		t.Errorf("Title = %q", analysis.Title)
	}
	if len(analysis.Sections) != 4 {
		t.Errorf("got %d sections, want 4", len(analysis.Sections))
	}
	if len(analysis.Recommendations) != 2 {
		t.Errorf("got %d recommendations, want 2", len(analysis.Recommendations))
	}
	if !strings.Contains(analysis.Summary, "update members") {
		t.Errorf("Summary = %q, want the purpose section", analysis.Summary)
	}
	if len(analysis.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", analysis.Warnings)
	}
	if analysis.Confidence.Overall == "none" {
		t.Errorf("Confidence.Overall = none, ratio %v", analysis.Confidence.Ratio)
	}
}

func TestAnalyze_SectionFilterKeepsDerivedFields(t *testing.T) {
	analysis := Analyze(reportText, Options{Sections: []string{"financial_implications"}})

	if len(analysis.Sections) != 1 || analysis.Sections[0].Name != "financial_implications" {
		t.Fatalf("Sections = %+v, want financial_implications only", analysis.Sections)
	}
	// Filtering the returned sections must not lose recommendations or
	// the summary, which come from the full section set.
	if len(analysis.Recommendations) != 2 {
		t.Errorf("got %d recommendations, want 2", len(analysis.Recommendations))
	}
	if !strings.Contains(analysis.Summary, "update members") {
		t.Errorf("Summary = %q", analysis.Summary)
	}
}

func TestAnalyze_MaxItems(t *testing.T) {
	analysis := Analyze(reportText, Options{MaxItems: 1})

	if len(analysis.Sections) != 1 {
		t.Errorf("got %d sections, want 1", len(analysis.Sections))
	}
	if len(analysis.Recommendations) != 1 {
		t.Errorf("got %d recommendations, want 1", len(analysis.Recommendations))
	}
}

func TestAnalyze_Motion(t *testing.T) {
	text := "Notice of Motion: Save the Park\nProposed by: Councillor Smith\nSeconded by: Councillor Jones\nThis Council believes the park must be protected for future generations.\n\nBackground"

	analysis := Analyze(text, Options{})

	if analysis.DocumentType != models.TypeMotion {
		t.Fatalf("DocumentType = %q, want %q", analysis.DocumentType, models.TypeMotion)
	}
	if analysis.Motion == nil {
		t.Fatal("Motion is nil")
	}
	if analysis.Motion.Title != "Save the Park" {
		t.Errorf("Motion.Title = %q, want %q", analysis.Motion.Title, "Save the Park")
	}
	if analysis.Title != "Save the Park" {
		t.Errorf("Title = %q, want the motion title", analysis.Title)
	}
	if analysis.Motion.Proposer != "Smith" {
		t.Errorf("Proposer = %q, want %q", analysis.Motion.Proposer, "Smith")
	}
	if analysis.Motion.Seconder != "Jones" {
		t.Errorf("Seconder = %q, want %q", analysis.Motion.Seconder, "Jones")
	}
	if !strings.HasPrefix(analysis.Motion.MotionText, "This Council believes") {
		t.Errorf("MotionText = %q", analysis.Motion.MotionText)
	}
}

func TestAnalyze_Questions(t *testing.T) {
	text := `Public Questions

Question 1 from Mr Allen
Will the council resurface Barton Street?
Answer: The works are programmed for the autumn.

Question 2 from Mrs Price
When does the consultation open?
Answer: Next month.`

	analysis := Analyze(text, Options{})

	if analysis.DocumentType != models.TypeQuestions {
		t.Fatalf("DocumentType = %q, want %q", analysis.DocumentType, models.TypeQuestions)
	}
	if len(analysis.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(analysis.Questions))
	}
	if len(analysis.Warnings) != 0 {
		t.Errorf("Warnings = %v", analysis.Warnings)
	}
}

func TestAnalyze_UnknownType(t *testing.T) {
	analysis := Analyze("The weather in Gloucester was mild for the time of year.", Options{})

	if analysis.DocumentType != models.TypeUnknown {
		t.Fatalf("DocumentType = %q, want %q", analysis.DocumentType, models.TypeUnknown)
	}
	if !hasWarning(analysis, "could not be determined") {
		t.Errorf("Warnings = %v, want type warning", analysis.Warnings)
	}
	if analysis.Summary == "" {
		t.Error("Summary empty, want document head")
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	analysis := Analyze("   \n  ", Options{})

	if analysis.DocumentType != models.TypeUnknown {
		t.Errorf("DocumentType = %q", analysis.DocumentType)
	}
	if !hasWarning(analysis, "empty") {
		t.Errorf("Warnings = %v, want empty-text warning", analysis.Warnings)
	}
	if analysis.Confidence.Overall != "none" {
		t.Errorf("Confidence.Overall = %q, want none", analysis.Confidence.Overall)
	}
}

func hasWarning(analysis *models.DocumentAnalysis, substr string) bool {
	for _, w := range analysis.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
