// Package ranker scores corpus chunks against free-text queries using
// BM25 term weighting combined with literal-phrase and metadata boosts.
package ranker

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Gloucester-City-Council/civic-docs/internal/index"
	"github.com/Gloucester-City-Council/civic-docs/internal/textutil"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// BM25 parameters.
const (
	paramK1 = 1.5
	paramB  = 0.75
)

const (
	defaultTopK  = 10
	snippetWidth = 300
)

// Ranker serves search queries over a corpus index store.
type Ranker struct {
	store *index.Store
}

// New creates a ranker over the given store.
func New(store *index.Store) *Ranker {
	return &Ranker{store: store}
}

type scoredChunk struct {
	chunk models.Chunk
	tf    map[string]int
	score float64
}

// Search ranks chunks against the query and returns the top results.
// Input conditions (no index built, blank query, nothing matching the
// filters) come back as a response with an explanatory Note, never as
// an error; errors signal caller misuse such as a malformed filter.
func (r *Ranker) Search(req models.SearchRequest) (*models.SearchResponse, error) {
	if r == nil || r.store == nil {
		return nil, errors.New("ranker: no index store configured")
	}
	if req.TopK < 0 {
		return nil, fmt.Errorf("ranker: top_k must be non-negative, got %d", req.TopK)
	}
	topK := req.TopK
	if topK == 0 {
		topK = defaultTopK
	}

	resp := &models.SearchResponse{
		Query:   req.Query,
		Results: []models.SearchResult{},
	}

	chunks, stats, err := r.store.Snapshot()
	if err != nil {
		if errors.Is(err, index.ErrNoIndex) {
			resp.Note = "no index built - load documents first"
			return resp, nil
		}
		return nil, err
	}
	resp.TotalChunks = len(chunks)

	// Filters narrow the candidate set only. IDF and average chunk
	// length always come from the full corpus.
	candidates, err := applyFilters(chunks, req.Filters)
	if err != nil {
		return nil, err
	}
	resp.FilteredChunks = len(candidates)

	if strings.TrimSpace(req.Query) == "" {
		resp.Note = "empty query"
		return resp, nil
	}
	if len(candidates) == 0 {
		resp.Note = "no chunks match the given filters"
		return resp, nil
	}

	tokens := textutil.Tokenize(req.Query)
	if len(tokens) == 0 {
		resp.Note = "query produced no searchable terms"
		return resp, nil
	}

	start := time.Now()
	queryLower := strings.ToLower(strings.TrimSpace(req.Query))

	var scored []scoredChunk
	for _, ci := range candidates {
		tf := stats.TermFreqs[ci]
		base := bm25Score(tokens, tf, stats.Lengths[ci], stats)
		if base <= 0 {
			continue
		}
		score := base
		score *= keywordBoost(chunks[ci].Text, queryLower, tf)
		score *= metadataBoost(chunks[ci].DocumentMeta, queryLower)
		scored = append(scored, scoredChunk{chunk: chunks[ci], tf: tf, score: score})
	}

	// Stable sort: equal scores keep corpus order (document order,
	// then chunk_index), making ranked output deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}

	for _, sc := range scored {
		resp.Results = append(resp.Results, models.SearchResult{
			Snippet:       snippet(sc.chunk.Text, queryLower),
			Score:         math.Round(sc.score*1000) / 1000,
			ChunkPosition: sc.chunk.Position(),
			DocumentMeta:  sc.chunk.DocumentMeta,
		})
	}

	slog.Debug("search served",
		"query", req.Query,
		"candidates", len(candidates),
		"results", len(resp.Results),
		"duration", time.Since(start))

	return resp, nil
}

// applyFilters returns the indices of chunks passing every set filter.
// String filters match exactly; date filters are inclusive UK-format
// range checks on meeting_date. A malformed from/to date is caller
// misuse and fails fast.
func applyFilters(chunks []models.Chunk, f models.SearchFilters) ([]int, error) {
	var from, to time.Time
	var hasFrom, hasTo bool
	var err error

	if f.FromDate != "" {
		if from, err = textutil.ParseUKDate(f.FromDate); err != nil {
			return nil, fmt.Errorf("ranker: invalid from_date %q: %w", f.FromDate, err)
		}
		hasFrom = true
	}
	if f.ToDate != "" {
		if to, err = textutil.ParseUKDate(f.ToDate); err != nil {
			return nil, fmt.Errorf("ranker: invalid to_date %q: %w", f.ToDate, err)
		}
		hasTo = true
	}

	indices := make([]int, 0, len(chunks))
	for i, chunk := range chunks {
		if f.Council != "" && chunk.Council != f.Council {
			continue
		}
		if f.Committee != "" && chunk.Committee != f.Committee {
			continue
		}
		if f.CommitteeID != "" && chunk.CommitteeID != f.CommitteeID {
			continue
		}
		if f.MeetingID != "" && chunk.MeetingID != f.MeetingID {
			continue
		}
		if hasFrom || hasTo {
			date, err := textutil.ParseUKDate(chunk.MeetingDate)
			if err != nil {
				continue // undated chunks never match a date filter
			}
			if hasFrom && date.Before(from) {
				continue
			}
			if hasTo && date.After(to) {
				continue
			}
		}
		indices = append(indices, i)
	}
	return indices, nil
}

// bm25Score computes the BM25 contribution of the query tokens against
// one chunk's term frequencies.
func bm25Score(tokens []string, termFreq map[string]int, length int, stats *index.Stats) float64 {
	if stats.AvgLength == 0 {
		return 0
	}

	var score float64
	for _, token := range tokens {
		idf, ok := stats.IDF[token]
		if !ok {
			continue
		}
		tf := float64(termFreq[token])
		if tf == 0 {
			continue
		}
		numerator := tf * (paramK1 + 1)
		denominator := tf + paramK1*(1-paramB+paramB*float64(length)/stats.AvgLength)
		score += idf * numerator / denominator
	}
	return score
}

// keywordBoost rewards chunks containing the literal query phrase
// (+0.5) and scales up to +0.3 with the fraction of query words longer
// than two characters that occur as whole words in the chunk.
func keywordBoost(chunkText, queryLower string, termFreq map[string]int) float64 {
	boost := 1.0
	if strings.Contains(strings.ToLower(chunkText), queryLower) {
		boost += 0.5
	}

	var considered, matched int
	for _, word := range strings.Fields(queryLower) {
		if len(word) <= 2 {
			continue
		}
		considered++
		for _, token := range textutil.Tokenize(word) {
			if termFreq[token] > 0 {
				matched++
				break
			}
		}
	}
	if considered > 0 {
		boost += 0.3 * float64(matched) / float64(considered)
	}
	return boost
}

// metadataBoost rewards queries that mention the chunk's council or
// committee (first word, +0.2 each) and scales up to +0.3 with the
// fraction of query words found in the document title.
func metadataBoost(meta models.DocumentMeta, queryLower string) float64 {
	boost := 1.0

	if first := firstWordLower(meta.Council); first != "" && strings.Contains(queryLower, first) {
		boost += 0.2
	}
	if first := firstWordLower(meta.Committee); first != "" && strings.Contains(queryLower, first) {
		boost += 0.2
	}

	if words := strings.Fields(queryLower); len(words) > 0 && meta.DocumentTitle != "" {
		titleLower := strings.ToLower(meta.DocumentTitle)
		matched := 0
		for _, word := range words {
			if strings.Contains(titleLower, word) {
				matched++
			}
		}
		boost += 0.3 * float64(matched) / float64(len(words))
	}
	return boost
}

func firstWordLower(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// snippet extracts ~300 characters centred on the first occurrence of
// the query (or its first word) in the chunk text, with ellipses where
// truncated.
func snippet(text, queryLower string) string {
	if len(text) <= snippetWidth {
		return text
	}

	lower := strings.ToLower(text)
	idx := strings.Index(lower, queryLower)
	if idx < 0 {
		if words := strings.Fields(queryLower); len(words) > 0 {
			idx = strings.Index(lower, words[0])
		}
	}
	if idx < 0 {
		idx = 0
	}

	start := idx - snippetWidth/2
	if start < 0 {
		start = 0
	}
	end := start + snippetWidth
	if end > len(text) {
		end = len(text)
		start = end - snippetWidth
	}

	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out += "..."
	}
	return out
}
