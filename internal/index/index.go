// Package index holds the process-wide corpus of chunks and the term
// statistics derived from it.
package index

import (
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/Gloucester-City-Council/civic-docs/internal/textutil"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

// ErrNoIndex is returned when no corpus has been set yet. Callers must
// be able to tell "never built" apart from "built but empty".
var ErrNoIndex = errors.New("no corpus index built")

// Stats are the corpus-wide term statistics used by the ranker. They
// are always computed over the full chunk set, never a filtered subset.
type Stats struct {
	// IDF maps term -> inverse document frequency weight.
	IDF map[string]float64
	// TermFreqs[i] is the term frequency map for chunk i.
	TermFreqs []map[string]int
	// Lengths[i] is the token count of chunk i.
	Lengths []int
	// AvgLength is the mean token count across all chunks.
	AvgLength float64
}

// Store owns the current chunk list and lazily derives Stats from it.
// Replacement is atomic: Set swaps the slice reference under a lock and
// bumps a version counter, so an interleaved search sees either the old
// corpus or the new one, never a half-rebuilt state. The cached Stats
// record the version they were computed for and are rebuilt on the
// first search after any swap.
type Store struct {
	mu       sync.RWMutex
	chunks   []models.Chunk
	has      bool
	version  uint64
	stats    *Stats
	statsFor uint64
}

// NewStore creates an empty store with no index built.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the corpus with the given chunk list. An empty (or nil)
// list is a valid corpus, distinct from a cleared store.
func (s *Store) Set(chunks []models.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = chunks
	s.has = true
	s.version++
	slog.Debug("corpus index set", "chunks", len(chunks), "version", s.version)
}

// Chunks returns the current chunk list. ok is false when no index has
// ever been set.
func (s *Store) Chunks() (chunks []models.Chunk, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunks, s.has
}

// Len returns the current chunk count, 0 when no index is set.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Version returns the monotonic corpus version, bumped on every Set and
// Clear.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Clear discards the corpus, returning the store to the "never built"
// state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	s.has = false
	s.stats = nil
	s.version++
}

// Snapshot returns the chunk list together with its Stats, computing
// the statistics on first use and whenever the corpus version changed
// since they were last built. Returns ErrNoIndex before any Set.
func (s *Store) Snapshot() ([]models.Chunk, *Stats, error) {
	s.mu.RLock()
	if !s.has {
		s.mu.RUnlock()
		return nil, nil, ErrNoIndex
	}
	if s.stats != nil && s.statsFor == s.version {
		chunks, stats := s.chunks, s.stats
		s.mu.RUnlock()
		return chunks, stats, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.has {
		return nil, nil, ErrNoIndex
	}
	if s.stats == nil || s.statsFor != s.version {
		s.stats = computeStats(s.chunks)
		s.statsFor = s.version
		slog.Debug("corpus statistics rebuilt",
			"chunks", len(s.chunks), "terms", len(s.stats.IDF), "version", s.version)
	}
	return s.chunks, s.stats, nil
}

// computeStats tokenizes every chunk and derives term frequencies,
// lengths and the IDF table:
//
//	idf(term) = ln((N - df + 0.5) / (df + 0.5) + 1)
//
// where N is the chunk count and df the number of chunks containing the
// term at least once.
func computeStats(chunks []models.Chunk) *Stats {
	stats := &Stats{
		IDF:       make(map[string]float64),
		TermFreqs: make([]map[string]int, len(chunks)),
		Lengths:   make([]int, len(chunks)),
	}

	docFreq := make(map[string]int)
	totalLength := 0

	for i, chunk := range chunks {
		tokens := textutil.Tokenize(chunk.Text)
		stats.Lengths[i] = len(tokens)
		totalLength += len(tokens)

		termFreq := make(map[string]int)
		for _, token := range tokens {
			if termFreq[token] == 0 {
				docFreq[token]++
			}
			termFreq[token]++
		}
		stats.TermFreqs[i] = termFreq
	}

	if len(chunks) > 0 {
		stats.AvgLength = float64(totalLength) / float64(len(chunks))
	}

	n := float64(len(chunks))
	for term, df := range docFreq {
		stats.IDF[term] = math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
	}

	return stats
}
