// Package chunker splits harvested documents into overlapping
// word-window chunks ready for indexing.
package chunker

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// Default window geometry, in words.
const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

// Options controls the chunk window geometry.
type Options struct {
	ChunkSize int
	Overlap   int
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Overlap < 0 || o.Overlap >= o.ChunkSize {
		o.Overlap = DefaultOverlap
	}
	return o
}

// Result summarizes one index build.
type Result struct {
	DocsChunked int
	ChunksBuilt int
	Duration    time.Duration
	Errors      []string
}

// Split slices text into overlapping word windows. A document at or
// under ChunkSize words becomes a single chunk. The window advances by
// ChunkSize-Overlap words each step; when fewer than 2*Overlap words
// remain past the new window start, they are emitted as one final chunk
// and the loop stops. The final pair of chunks may therefore overlap by
// more than Overlap words.
func Split(text string, opts Options) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	opts = opts.withDefaults()
	if len(words) <= opts.ChunkSize {
		return []string{strings.Join(words, " ")}
	}

	step := opts.ChunkSize - opts.Overlap
	var chunks []string
	start := 0
	for start < len(words) {
		end := start + opts.ChunkSize
		if end >= len(words) {
			chunks = append(chunks, strings.Join(words[start:], " "))
			break
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))

		start += step
		if remaining := len(words) - start; remaining < 2*opts.Overlap {
			chunks = append(chunks, strings.Join(words[start:], " "))
			break
		}
	}
	return chunks
}

// BuildIndex chunks every document and decorates each chunk with the
// document's metadata. Chunk IDs are globally unique and monotonically
// increasing across the whole build; chunk_index restarts at 0 per
// document. The returned list is not stored anywhere; handing it to an
// index store is the caller's job.
func BuildIndex(documents []models.SourceDocument, opts Options) ([]models.Chunk, *Result) {
	start := time.Now()
	result := &Result{}

	var chunks []models.Chunk
	nextID := 0
	for _, doc := range documents {
		pieces := Split(doc.Text, opts)
		if len(pieces) == 0 {
			slog.Warn("skipping empty document", "url", doc.DocumentURL)
			result.Errors = append(result.Errors, "empty document: "+doc.DocumentURL)
			continue
		}

		for i, piece := range pieces {
			chunks = append(chunks, models.Chunk{
				ID:           nextID,
				Text:         piece,
				ChunkIndex:   i,
				TotalChunks:  len(pieces),
				DocumentMeta: doc.DocumentMeta,
			})
			nextID++
		}
		result.DocsChunked++
	}

	result.ChunksBuilt = len(chunks)
	result.Duration = time.Since(start)
	slog.Debug("index built",
		"docs", result.DocsChunked,
		"chunks", result.ChunksBuilt,
		"duration", result.Duration)

	return chunks, result
}
