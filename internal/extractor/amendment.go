package extractor

import (
	"regexp"
	"strings"

	"github.com/Gloucester-City-Council/civic-docs/internal/textutil"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

const (
	// shortDocumentWords is the size under which the line-filtering
	// body extractor is attempted.
	shortDocumentWords = 500
	// fullTextRatio: when the targeted extraction captured less than
	// this share of the cleaned document, the full text is attached so
	// lossy extraction is surfaced rather than silently dropped.
	fullTextRatio = 0.30
)

var (
	amendmentTitleLine = regexp.MustCompile(`(?i)^amendment(?:\s+to\s+motion(?:\s+\d+)?)?\s*[:\-]\s*(.+)$`)
	amendedToRead      = regexp.MustCompile(`(?is)amended to read\s*(?:as follows)?\s*[:\-]?\s*(.+?)(?:\n[ \t]*\n|$)`)
	amendedMotion      = regexp.MustCompile(`(?is)amended motion\s*[:\-]?\s*(.+?)(?:\n[ \t]*\n|$)`)
	deleteInsertLine   = regexp.MustCompile(`(?im)^\s*(?:delete|insert|add|replace|substitute)\b.*$`)
	listItemLine       = regexp.MustCompile(`(?m)^\s*(?:\d+[\.\)]|[a-z][\.\)]|\([a-z0-9]+\))\s+.+$`)
	groupNameLine      = regexp.MustCompile(`(?i)^(?:the\s+)?(?:labour|conservative|liberal democrat|green|independent)(?:\s+\S+)*\s+group$`)
)

// Amendment extracts amendment fields through a layered fallback chain:
// explicit "amended to read"/delete-insert/"amended motion" phrasing
// first, then a "This Council" body as for motions, then (for short
// documents) a line filter dropping group names and headers, then
// numbered/lettered list items or "that council ..." sentences. When
// the chain captures less than 30% of the cleaned text, the full text
// rides along in FullText.
func Amendment(text string) *models.Amendment {
	amendment := &models.Amendment{}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if amendment.Title == "" {
			if m := amendmentTitleLine.FindStringSubmatch(line); m != nil {
				amendment.Title = strings.TrimSpace(m[1])
				continue
			}
		}
		if amendment.Proposer == "" {
			if m := proposedByLine.FindStringSubmatch(line); m != nil {
				amendment.Proposer = cleanPerson(m[1])
				continue
			}
		}
		if amendment.Seconder == "" {
			if m := secondedByLine.FindStringSubmatch(line); m != nil {
				amendment.Seconder = cleanPerson(m[1])
			}
		}
	}

	cleaned := textutil.Clean(text)
	amendment.AmendmentText = amendmentBody(text, cleaned)

	captured := len(amendment.AmendmentText)
	if captured == 0 || float64(captured) < fullTextRatio*float64(len(cleaned)) {
		amendment.FullText = cleaned
	}

	return amendment
}

func amendmentBody(text, cleaned string) string {
	if m := amendedToRead.FindStringSubmatch(text); m != nil {
		if body := textutil.Clean(m[1]); body != "" {
			return body
		}
	}

	if lines := deleteInsertLine.FindAllString(text, -1); len(lines) > 0 {
		if body := textutil.Clean(strings.Join(lines, "\n")); body != "" {
			return body
		}
	}

	if m := amendedMotion.FindStringSubmatch(text); m != nil {
		if body := textutil.Clean(m[1]); body != "" {
			return body
		}
	}

	if body := councilResolutionBody(text); body != "" {
		return body
	}

	if len(strings.Fields(cleaned)) < shortDocumentWords {
		if body := shortDocumentBody(text); body != "" {
			return body
		}
	}

	if items := listItemLine.FindAllString(text, -1); len(items) > 0 {
		var kept []string
		for _, item := range items {
			kept = append(kept, strings.TrimSpace(item))
		}
		return textutil.Clean(strings.Join(kept, " "))
	}
	if sentences := thatSentence.FindAllString(cleaned, -1); len(sentences) > 0 {
		return textutil.Clean(strings.Join(sentences, " "))
	}

	return ""
}

// shortDocumentBody keeps the substantive lines of a short amendment
// document, skipping group names, all-caps headers, attribution lines
// and anything too short to be body text.
func shortDocumentBody(text string) string {
	var kept []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if len(line) < 10 {
			continue
		}
		if groupNameLine.MatchString(line) || isAllCaps(line) {
			continue
		}
		if amendmentTitleLine.MatchString(line) ||
			proposedByLine.MatchString(line) ||
			secondedByLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return textutil.Clean(strings.Join(kept, " "))
}
