// Package classifier assigns a document archetype to raw document text
// using weighted lexical signals.
package classifier

import (
	"regexp"
	"strings"

	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// amendmentThreshold is the minimum amendment score at which the
// amendment archetype wins outright, provided the motion score does
// not exceed it.
const amendmentThreshold = 4

var (
	reasonForReport    = regexp.MustCompile(`reason(?:s)? for (?:the )?report|purpose of (?:the )?report`)
	recommendThat      = regexp.MustCompile(`\b(?:\d+[\.\)]\s+)?that\s+(?:the\s+)?(?:council|cabinet|committee)\b`)
	questionNumbered   = regexp.MustCompile(`question\s+\d+`)
	answerLine         = regexp.MustCompile(`(?m)^\s*(?:answer|response|reply)\b`)
	deleteInsertPhrase = regexp.MustCompile(`\b(?:delete|insert|substitute)\b`)
)

// Classify scores the text against each archetype and returns the best
// match, or TypeUnknown when nothing scores at all. Amendment is
// checked with priority: once its score reaches the threshold and is
// not exceeded by the motion score, amendment wins outright. Otherwise
// the strictly highest score wins, ties resolving toward the earlier
// archetype in listed order (report, questions, motion, amendment).
func Classify(text string) models.DocumentType {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return models.TypeUnknown
	}

	report := scoreReport(lower)
	questions := scoreQuestions(lower)
	motion := scoreMotion(lower)
	amendment := scoreAmendment(lower)

	if amendment >= amendmentThreshold && motion <= amendment {
		return models.TypeAmendment
	}

	ranked := []struct {
		docType models.DocumentType
		score   int
	}{
		{models.TypeCommitteeReport, report},
		{models.TypeQuestions, questions},
		{models.TypeMotion, motion},
		{models.TypeAmendment, amendment},
	}

	best := models.TypeUnknown
	bestScore := 0
	for _, candidate := range ranked {
		if candidate.score > bestScore {
			best = candidate.docType
			bestScore = candidate.score
		}
	}
	return best
}

func scoreReport(lower string) int {
	score := 0
	if reasonForReport.MatchString(lower) {
		score += 3
	}
	if recommendThat.MatchString(lower) {
		score += 2
	}
	if strings.Contains(lower, "recommendation") {
		score += 2
	}
	if strings.Contains(lower, "financial implications") {
		score += 2
	}
	if strings.Contains(lower, "legal implications") {
		score += 2
	}
	if strings.Contains(lower, "background papers") {
		score++
	}
	return score
}

func scoreQuestions(lower string) int {
	score := 0
	if len(questionNumbered.FindAllString(lower, 3)) >= 2 {
		score += 4
	}
	if strings.Contains(lower, "questions on notice") || strings.Contains(lower, "public questions") {
		score += 3
	}
	if len(answerLine.FindAllString(lower, 3)) >= 2 {
		score += 2
	}
	if strings.Contains(lower, "supplementary question") {
		score += 2
	}
	return score
}

func scoreMotion(lower string) int {
	score := 0
	if strings.Contains(lower, "notice of motion") {
		score += 4
	}
	if strings.Contains(lower, "this council") {
		score += 2
	}
	if strings.Contains(lower, "proposed by") {
		score += 2
	}
	if strings.Contains(lower, "seconded by") {
		score++
	}
	return score
}

func scoreAmendment(lower string) int {
	score := 0
	if strings.Count(lower, "amendment") >= 2 {
		score += 3
	}
	if strings.Contains(lower, "amended to read") {
		score += 3
	}
	if deleteInsertPhrase.MatchString(lower) {
		score += 2
	}
	if strings.Contains(lower, "amendment to motion") || strings.Contains(lower, "amended motion") {
		score += 2
	}
	if strings.Contains(lower, "proposed amendment") {
		score++
	}
	return score
}
