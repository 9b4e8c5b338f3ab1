package extractor

import (
	"regexp"
	"strings"

	"github.com/Gloucester-City-Council/civic-docs/internal/textutil"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

var (
	motionTitleLine = regexp.MustCompile(`(?i)notice of motion\s*(?:\d+\s*)?[:\-]\s*(.+)`)
	proposedByLine  = regexp.MustCompile(`(?i)proposed by\s*[:\-]?\s*(.+)`)
	secondedByLine  = regexp.MustCompile(`(?i)seconded by\s*[:\-]?\s*(.+)`)

	thisCouncil = regexp.MustCompile(`(?i)this council`)
	// motionEnd marks where the motion body stops: a background or
	// proposer/seconder block, or a triple newline.
	motionEnd     = regexp.MustCompile(`(?i)\n\s*(?:background|proposed by|seconded by)\b|\n[ \t]*\n[ \t]*\n`)
	backgroundKey = regexp.MustCompile(`(?i)\b(?:background|context|reasons?)\b`)
)

// Motion extracts the structured fields of a notice of motion. The
// motion body runs from the first "This Council" occurrence to the next
// background/proposer boundary; background is any text before "This
// Council" starting at a background/context/reason keyword.
func Motion(text string) *models.Motion {
	motion := &models.Motion{}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if motion.Title == "" {
			if m := motionTitleLine.FindStringSubmatch(line); m != nil {
				motion.Title = strings.TrimSpace(m[1])
				continue
			}
		}
		if motion.Proposer == "" {
			if m := proposedByLine.FindStringSubmatch(line); m != nil {
				motion.Proposer = cleanPerson(m[1])
				continue
			}
		}
		if motion.Seconder == "" {
			if m := secondedByLine.FindStringSubmatch(line); m != nil {
				motion.Seconder = cleanPerson(m[1])
			}
		}
	}

	motion.MotionText = councilResolutionBody(text)

	if loc := thisCouncil.FindStringIndex(text); loc != nil {
		before := text[:loc[0]]
		if bgLoc := backgroundKey.FindStringIndex(before); bgLoc != nil {
			background := textutil.Clean(before[bgLoc[0]:])
			// Drop proposer/seconder attribution lines caught in the slice.
			background = proposedByLine.ReplaceAllString(background, "")
			background = secondedByLine.ReplaceAllString(background, "")
			motion.Background = strings.TrimSpace(background)
		}
	}

	return motion
}

// councilResolutionBody captures the "This Council ..." body used by
// both motions and amendments. Returns "" when the text never says
// "This Council".
func councilResolutionBody(text string) string {
	loc := thisCouncil.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[0]:]
	if end := motionEnd.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}
	return textutil.Clean(body)
}
