// Package extractor turns unstructured civic document text into typed
// fields, one extraction strategy per document archetype. Extraction is
// pattern-driven and state-free: every function takes text in and
// returns structured fields out.
package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Gloucester-City-Council/civic-docs/internal/textutil"
)

// UntitledDocument is the title fallback when no candidate line is found.
const UntitledDocument = "Untitled Document"

// titleScanLines bounds how far into the document the title scan looks.
const titleScanLines = 20

var (
	titlePrefix = regexp.MustCompile(`(?i)^(?:title|subject)\s*:\s*(.+)$`)
	footerLine  = regexp.MustCompile(`(?i)^page\s+\d+(?:\s+of\s+\d+)?$`)
	dateLine    = regexp.MustCompile(`(?i)^(?:\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}|(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)?,?\s*\d{1,2}(?:st|nd|rd|th)?\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4})\s*$`)
	meetingLine = regexp.MustCompile(`(?i)\b(?:committee|cabinet|council|panel|board|scrutiny)\s*$`)

	authorLine  = regexp.MustCompile(`(?im)^\s*(?:author|report of|report by|contact officer)\s*:\s*(.+?)\s*$`)
	numericDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	writtenDate = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})\b`)
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
}

// Title scans the first few substantial lines for the document title.
// An explicit "Title:"/"Subject:" prefix wins; failing that an all-caps
// heading converted to title case; failing that the first substantial
// line of 10-150 characters. Date lines, page footers and lines ending
// in a committee name are never titles.
func Title(text string) string {
	lines := leadingLines(text, titleScanLines)

	for _, line := range lines {
		if m := titlePrefix.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	for _, line := range lines {
		if skipTitleLine(line) {
			continue
		}
		if isAllCaps(line) {
			return textutil.TitleCase(line)
		}
	}

	for _, line := range lines {
		if skipTitleLine(line) {
			continue
		}
		return line
	}

	return UntitledDocument
}

// Author returns the report author from an explicit attribution line,
// or "" when none is present.
func Author(text string) string {
	if m := authorLine.FindStringSubmatch(text); m != nil {
		return strings.TrimRight(strings.TrimSpace(m[1]), ".,;")
	}
	return ""
}

// DocumentDate returns the first date found in the text, normalized to
// DD/MM/YYYY, or "" when the text carries no recognizable date.
func DocumentDate(text string) string {
	numLoc := numericDate.FindStringSubmatchIndex(text)
	writtenLoc := writtenDate.FindStringSubmatchIndex(text)

	if numLoc != nil && (writtenLoc == nil || numLoc[0] < writtenLoc[0]) {
		m := numericDate.FindStringSubmatch(text[numLoc[0]:numLoc[1]])
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			return fmt.Sprintf("%02d/%02d/%s", day, month, m[3])
		}
	}
	if writtenLoc != nil {
		m := writtenDate.FindStringSubmatch(text[writtenLoc[0]:writtenLoc[1]])
		day, _ := strconv.Atoi(m[1])
		month := monthNumbers[strings.ToLower(m[2])]
		if day >= 1 && day <= 31 {
			return fmt.Sprintf("%02d/%02d/%s", day, month, m[3])
		}
	}
	return ""
}

// leadingLines returns up to n non-blank trimmed lines from the top of
// the text.
func leadingLines(text string, n int) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return lines
}

func skipTitleLine(line string) bool {
	if len(line) < 10 || len(line) > 150 {
		return true
	}
	return dateLine.MatchString(line) ||
		footerLine.MatchString(line) ||
		meetingLine.MatchString(line)
}

func isAllCaps(line string) bool {
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// cleanPerson strips honorifics and trailing clauses from a captured
// name: "Councillor Smith, Leader of the Council" -> "Smith".
func cleanPerson(name string) string {
	name = strings.TrimSpace(name)
	for _, sep := range []string{",", ";", " and "} {
		if idx := strings.Index(name, sep); idx >= 0 {
			name = name[:idx]
		}
	}
	name = personTitle.ReplaceAllString(name, "")
	return strings.TrimRight(strings.TrimSpace(name), ".")
}

var personTitle = regexp.MustCompile(`(?i)^(?:councillor|cllr\.?|mr|mrs|ms|miss|dr)\.?\s+`)
