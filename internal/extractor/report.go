package extractor

import (
	"regexp"
	"strings"

	"github.com/Gloucester-City-Council/civic-docs/internal/textutil"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// maxSectionLines caps how far a section's content can run when no
// further header is found.
const maxSectionLines = 100

// maxHeaderLength rejects body lines that happen to start with a
// section keyword; real headers are short.
const maxHeaderLength = 80

// sectionRule maps a header pattern to its canonical section name.
// Rules are evaluated in order against each line; numbered header
// variants ("1.0 Recommendations") are accepted by every pattern.
type sectionRule struct {
	name    string
	pattern *regexp.Regexp
}

func headerRule(name, body string) sectionRule {
	return sectionRule{
		name:    name,
		pattern: regexp.MustCompile(`(?i)^(?:\d+(?:\.\d+)*\.?\s+)?(?:` + body + `)\b`),
	}
}

var sectionRules = []sectionRule{
	headerRule("reason_for_report", `reasons?\s+for\s+(?:the\s+)?(?:report|decision|recommendation)|purpose\s+of\s+(?:the\s+)?report`),
	headerRule("recommendations", `recommendations?`),
	headerRule("financial_implications", `financial\s+implications?`),
	headerRule("legal_implications", `legal\s+implications?`),
	headerRule("risk_assessment", `risk\s+(?:assessment|implications?|management)`),
	headerRule("background", `background(?:\s+papers)?|introduction\s+and\s+background`),
}

var (
	itemMarker     = regexp.MustCompile(`\b\d+(?:\.\d+)*[\.\)]\s+`)
	thatSentence   = regexp.MustCompile(`(?i)that\s+(?:the\s+)?(?:council|cabinet|committee)[^.;]*[.;]?`)
	resolvedInline = regexp.MustCompile(`(?s)\b(?:RESOLVED|RECOMMENDED)\b\s*[:\-]?\s*(.+?)(?:\n\s*\n|$)`)
)

// Sections locates recognized section headers and captures the content
// between each header and the next one (or 100 lines, whichever comes
// first). Content is whitespace-normalized with line-break hyphenation
// repaired. Sections come back in document order; each header kind is
// captured once.
func Sections(text string) []models.Section {
	lines := strings.Split(text, "\n")

	type headerHit struct {
		line int
		name string
	}
	var hits []headerHit
	seen := make(map[string]bool)

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || len(line) > maxHeaderLength {
			continue
		}
		for _, rule := range sectionRules {
			if seen[rule.name] {
				continue
			}
			if rule.pattern.MatchString(line) {
				hits = append(hits, headerHit{line: i, name: rule.name})
				seen[rule.name] = true
				break
			}
		}
	}

	var sections []models.Section
	for k, hit := range hits {
		end := len(lines)
		if k+1 < len(hits) {
			end = hits[k+1].line
		}
		if end > hit.line+1+maxSectionLines {
			end = hit.line + 1 + maxSectionLines
		}
		content := textutil.Clean(strings.Join(lines[hit.line+1:end], "\n"))
		if content == "" {
			continue
		}
		sections = append(sections, models.Section{Name: hit.name, Content: content})
	}
	return sections
}

// Recommendations parses discrete recommendation items out of the
// recommendations section. Items split on leading numeric markers
// ("2.1 That ..."); failing that, sentence-level "That council/
// cabinet/committee ..." matches are taken. When header-based
// extraction found no recommendations section at all, inline RESOLVED/
// RECOMMENDED blocks anywhere in the text are tried instead.
func Recommendations(text string, sections []models.Section) []string {
	for _, section := range sections {
		if section.Name != "recommendations" {
			continue
		}
		if items := splitItems(section.Content); len(items) > 0 {
			return items
		}
	}

	if m := resolvedInline.FindStringSubmatch(text); m != nil {
		if items := splitItems(textutil.Clean(m[1])); len(items) > 0 {
			return items
		}
	}
	return nil
}

// splitItems breaks one normalized block into list items.
func splitItems(content string) []string {
	if content == "" {
		return nil
	}

	locs := itemMarker.FindAllStringIndex(content, -1)
	if len(locs) > 0 {
		var items []string
		for i, loc := range locs {
			end := len(content)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			item := strings.TrimSpace(content[loc[1]:end])
			if len(item) >= 10 {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			return items
		}
	}

	var items []string
	for _, match := range thatSentence.FindAllString(content, -1) {
		item := strings.TrimSpace(match)
		if len(item) >= 10 {
			items = append(items, item)
		}
	}
	return items
}
