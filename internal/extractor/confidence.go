package extractor

import (
	"fmt"
	"math"

	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// fieldSpec is one expected field for an archetype: its weight in the
// overall confidence and the content length below which the field only
// rates "low". Count-rated fields (sections, questions, ...) leave
// minLength at zero.
type fieldSpec struct {
	name      string
	weight    float64
	minLength int
}

var expectedFields = map[models.DocumentType][]fieldSpec{
	models.TypeCommitteeReport: {
		{name: "title", weight: 0.15, minLength: 5},
		{name: "sections", weight: 0.45},
		{name: "recommendations", weight: 0.25},
		{name: "summary", weight: 0.15, minLength: 40},
	},
	models.TypeQuestions: {
		{name: "title", weight: 0.2, minLength: 5},
		{name: "questions", weight: 0.55},
		{name: "answers", weight: 0.25},
	},
	models.TypeMotion: {
		{name: "title", weight: 0.15, minLength: 5},
		{name: "proposer", weight: 0.15, minLength: 2},
		{name: "seconder", weight: 0.1, minLength: 2},
		{name: "motion_text", weight: 0.5, minLength: 40},
		{name: "background", weight: 0.1, minLength: 20},
	},
	models.TypeAmendment: {
		{name: "title", weight: 0.1, minLength: 5},
		{name: "proposer", weight: 0.15, minLength: 2},
		{name: "seconder", weight: 0.15, minLength: 2},
		{name: "amendment_text", weight: 0.6, minLength: 40},
	},
	models.TypeUnknown: {
		{name: "title", weight: 0.5, minLength: 5},
		{name: "summary", weight: 0.5, minLength: 40},
	},
}

var statusValues = map[models.FieldStatus]float64{
	models.StatusMissing: 0,
	models.StatusLow:     1.0 / 3,
	models.StatusMedium:  2.0 / 3,
	models.StatusHigh:    1,
}

// Assess rates how completely the analysis filled the fields expected
// for its document type. It is a pure function over the extracted
// result: same analysis in, same confidence out.
func Assess(analysis *models.DocumentAnalysis) models.Confidence {
	specs := expectedFields[analysis.DocumentType]

	fields := make(map[string]models.FieldStatus, len(specs))
	var weightSum, valueSum float64
	found := 0

	for _, spec := range specs {
		status := fieldStatus(analysis, spec)
		fields[spec.name] = status
		weightSum += spec.weight
		valueSum += spec.weight * statusValues[status]
		if status != models.StatusMissing {
			found++
		}
	}

	ratio := 0.0
	if weightSum > 0 {
		ratio = valueSum / weightSum
	}

	overall := "none"
	switch {
	case ratio >= 0.75:
		overall = "high"
	case ratio >= 0.5:
		overall = "medium"
	case ratio > 0:
		overall = "low"
	}

	return models.Confidence{
		Overall: overall,
		Ratio:   math.Round(ratio*100) / 100,
		Fields:  fields,
		Detail:  fmt.Sprintf("%d/%d sections found", found, len(specs)),
	}
}

func fieldStatus(analysis *models.DocumentAnalysis, spec fieldSpec) models.FieldStatus {
	switch spec.name {
	case "title":
		if analysis.Title == "" || analysis.Title == UntitledDocument {
			return models.StatusMissing
		}
		return lengthStatus(analysis.Title, spec.minLength)
	case "summary":
		return lengthStatus(analysis.Summary, spec.minLength)
	case "sections":
		return countStatus(len(analysis.Sections))
	case "recommendations":
		return countStatus(len(analysis.Recommendations))
	case "questions":
		return countStatus(len(analysis.Questions))
	case "answers":
		answered := 0
		for _, q := range analysis.Questions {
			if q.Answer != "" {
				answered++
			}
		}
		return countStatus(answered)
	case "proposer":
		return lengthStatus(motionField(analysis, func(m *models.Motion) string { return m.Proposer },
			func(a *models.Amendment) string { return a.Proposer }), spec.minLength)
	case "seconder":
		return lengthStatus(motionField(analysis, func(m *models.Motion) string { return m.Seconder },
			func(a *models.Amendment) string { return a.Seconder }), spec.minLength)
	case "motion_text":
		if analysis.Motion == nil {
			return models.StatusMissing
		}
		return lengthStatus(analysis.Motion.MotionText, spec.minLength)
	case "background":
		if analysis.Motion == nil {
			return models.StatusMissing
		}
		return lengthStatus(analysis.Motion.Background, spec.minLength)
	case "amendment_text":
		if analysis.Amendment == nil {
			return models.StatusMissing
		}
		return lengthStatus(analysis.Amendment.AmendmentText, spec.minLength)
	}
	return models.StatusMissing
}

// motionField reads the same attribution field from whichever of
// motion/amendment is populated.
func motionField(analysis *models.DocumentAnalysis, fromMotion func(*models.Motion) string, fromAmendment func(*models.Amendment) string) string {
	if analysis.Motion != nil {
		return fromMotion(analysis.Motion)
	}
	if analysis.Amendment != nil {
		return fromAmendment(analysis.Amendment)
	}
	return ""
}

// lengthStatus rates a text field by length against its minimum:
// missing when empty, low under the minimum, high at three times the
// minimum or more.
func lengthStatus(value string, minLength int) models.FieldStatus {
	switch n := len(value); {
	case n == 0:
		return models.StatusMissing
	case n < minLength:
		return models.StatusLow
	case n >= 3*minLength:
		return models.StatusHigh
	default:
		return models.StatusMedium
	}
}

// countStatus rates a list field by item count.
func countStatus(n int) models.FieldStatus {
	switch {
	case n == 0:
		return models.StatusMissing
	case n == 1:
		return models.StatusLow
	case n == 2:
		return models.StatusMedium
	default:
		return models.StatusHigh
	}
}
