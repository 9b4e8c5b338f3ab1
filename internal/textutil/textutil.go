package textutil

import (
	"regexp"
	"strings"
	"time"
)

// ukDateLayout is the DD/MM/YYYY format used throughout harvested
// council metadata.
const ukDateLayout = "02/01/2006"

var (
	tokenPattern  = regexp.MustCompile(`[a-z0-9]+`)
	spaceRuns     = regexp.MustCompile(`\s+`)
	brokenHyphens = regexp.MustCompile(`([a-zA-Z])-\s*\n\s*([a-zA-Z])`)
)

// Tokenize splits text into lowercase alphanumeric tokens, discarding
// tokens of length 1 or less. Punctuation acts as a separator.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	matches := tokenPattern.FindAllString(lower, -1)

	tokens := matches[:0]
	for _, match := range matches {
		if len(match) > 1 {
			tokens = append(tokens, match)
		}
	}
	return tokens
}

// Clean repairs words hyphenated across line breaks and collapses all
// whitespace runs to single spaces.
func Clean(text string) string {
	text = brokenHyphens.ReplaceAllString(text, "$1$2")
	return NormalizeSpace(text)
}

// NormalizeSpace collapses whitespace runs to single spaces and trims.
func NormalizeSpace(text string) string {
	return strings.TrimSpace(spaceRuns.ReplaceAllString(text, " "))
}

// ParseUKDate parses a DD/MM/YYYY calendar date.
func ParseUKDate(s string) (time.Time, error) {
	return time.Parse(ukDateLayout, strings.TrimSpace(s))
}

// TitleCase converts an ALL-CAPS heading to title case, keeping short
// joining words lowercase except at the start.
func TitleCase(s string) string {
	minor := map[string]bool{
		"a": true, "an": true, "and": true, "at": true, "by": true,
		"for": true, "in": true, "of": true, "on": true, "or": true,
		"the": true, "to": true, "with": true,
	}

	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		if i > 0 && minor[word] {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
