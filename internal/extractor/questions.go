package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Gloucester-City-Council/civic-docs/internal/textutil"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// The questions extractor is a line-classification state machine: each
// line either starts a new question, switches the current record into
// its answer or supplementary part, overrides the asker, or accumulates
// into whichever part is open.
type questionState int

const (
	stateInQuestion questionState = iota
	stateInAnswer
	stateInSupplementary
)

var (
	questionNumberLine = regexp.MustCompile(`(?i)^question\s+(\d+)\b\s*[:\.\)]?\s*(.*)$`)
	questionFromStart  = regexp.MustCompile(`(?i)^question\s+from\s+(.+?)\s*[:\.]?$`)
	inlineFrom         = regexp.MustCompile(`(?i)^from\s+(.+?)\s*[:\.]?$`)
	fromOverride       = regexp.MustCompile(`(?i)^from\s*:\s*(.+)$`)
	answerStart        = regexp.MustCompile(`(?i)^(?:answer|response|reply)\b\s*[:\.\-]?\s*(.*)$`)
	supplementaryStart = regexp.MustCompile(`(?i)^supplementary(?:\s+question)?\b\s*[:\.\-]?\s*(.*)$`)
)

// Questions scans the text line by line and emits one record per
// question. A "Question N" or "Question from X" line closes the
// previous record and opens a new one; "Response"/"Answer"/"Reply"
// lines open the answer part; an explicit "From:" line overrides the
// asker.
func Questions(text string) []models.Question {
	var questions []models.Question
	var current *models.Question
	var parts [3][]string // indexed by questionState
	state := stateInQuestion

	emit := func() {
		if current == nil {
			return
		}
		current.Question = textutil.Clean(strings.Join(parts[stateInQuestion], " "))
		current.Answer = textutil.Clean(strings.Join(parts[stateInAnswer], " "))
		current.Supplementary = textutil.Clean(strings.Join(parts[stateInSupplementary], " "))
		if current.Question != "" || current.Answer != "" {
			questions = append(questions, *current)
		}
		current = nil
		parts = [3][]string{}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := questionNumberLine.FindStringSubmatch(line); m != nil {
			emit()
			number, _ := strconv.Atoi(m[1])
			current = &models.Question{Number: number}
			state = stateInQuestion
			if rest := strings.TrimSpace(m[2]); rest != "" {
				if fm := inlineFrom.FindStringSubmatch(rest); fm != nil {
					current.From = cleanPerson(fm[1])
				} else {
					parts[stateInQuestion] = append(parts[stateInQuestion], rest)
				}
			}
			continue
		}
		if m := questionFromStart.FindStringSubmatch(line); m != nil {
			emit()
			current = &models.Question{From: cleanPerson(m[1])}
			state = stateInQuestion
			continue
		}
		if current == nil {
			continue // preamble before the first question
		}

		if m := fromOverride.FindStringSubmatch(line); m != nil {
			current.From = cleanPerson(m[1])
			continue
		}
		if m := supplementaryStart.FindStringSubmatch(line); m != nil {
			state = stateInSupplementary
			if rest := strings.TrimSpace(m[1]); rest != "" {
				parts[state] = append(parts[state], rest)
			}
			continue
		}
		if m := answerStart.FindStringSubmatch(line); m != nil {
			state = stateInAnswer
			if rest := strings.TrimSpace(m[1]); rest != "" {
				parts[state] = append(parts[state], rest)
			}
			continue
		}

		parts[state] = append(parts[state], line)
	}
	emit()

	return questions
}
