package index

import (
	"math"
	"testing"

	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

func chunksFromTexts(texts ...string) []models.Chunk {
	chunks := make([]models.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = models.Chunk{ID: i, Text: text, ChunkIndex: 0, TotalChunks: 1}
	}
	return chunks
}

func TestStore_NeverBuiltVersusEmpty(t *testing.T) {
	store := NewStore()

	if _, ok := store.Chunks(); ok {
		t.Error("Chunks() before any Set should report ok=false")
	}
	if _, _, err := store.Snapshot(); err != ErrNoIndex {
		t.Errorf("Snapshot() error = %v, want ErrNoIndex", err)
	}

	// An explicitly-set empty corpus is not the same as "never built".
	store.Set(nil)
	if _, ok := store.Chunks(); !ok {
		t.Error("Chunks() after Set(nil) should report ok=true")
	}
	if _, _, err := store.Snapshot(); err != nil {
		t.Errorf("Snapshot() after Set(nil) error = %v, want nil", err)
	}

	store.Clear()
	if _, ok := store.Chunks(); ok {
		t.Error("Chunks() after Clear should report ok=false")
	}
}

func TestStore_VersionBumps(t *testing.T) {
	store := NewStore()
	v0 := store.Version()

	store.Set(chunksFromTexts("one"))
	v1 := store.Version()
	if v1 <= v0 {
		t.Errorf("version did not increase on Set: %d -> %d", v0, v1)
	}

	store.Clear()
	if store.Version() <= v1 {
		t.Error("version did not increase on Clear")
	}
}

func TestStore_StatsRebuildOnSwap(t *testing.T) {
	store := NewStore()
	store.Set(chunksFromTexts("housing budget", "planning appeal"))

	_, stats1, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	// Same corpus: cached stats are reused.
	_, stats2, _ := store.Snapshot()
	if stats1 != stats2 {
		t.Error("Snapshot() rebuilt stats without a corpus change")
	}

	// Swapping in a same-length corpus must still invalidate the cache.
	store.Set(chunksFromTexts("heritage assets", "council tax"))
	_, stats3, _ := store.Snapshot()
	if stats3 == stats1 {
		t.Error("Snapshot() reused stale stats after corpus swap")
	}
	if _, ok := stats3.IDF["heritage"]; !ok {
		t.Error("rebuilt stats missing term from new corpus")
	}
	if _, ok := stats3.IDF["housing"]; ok {
		t.Error("rebuilt stats still contain term from old corpus")
	}
}

func TestComputeStats_IDF(t *testing.T) {
	// "council" appears in all 4 chunks, "heritage" in exactly 1.
	chunks := chunksFromTexts(
		"council housing report",
		"council budget report",
		"council planning meeting",
		"council heritage assets",
	)
	stats := computeStats(chunks)

	idf := func(df int) float64 {
		n := 4.0
		return math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1)
	}

	if got, want := stats.IDF["council"], idf(4); math.Abs(got-want) > 1e-12 {
		t.Errorf("IDF(council) = %v, want %v", got, want)
	}
	if got, want := stats.IDF["heritage"], idf(1); math.Abs(got-want) > 1e-12 {
		t.Errorf("IDF(heritage) = %v, want %v", got, want)
	}
	if stats.IDF["heritage"] <= stats.IDF["council"] {
		t.Error("rare term should outweigh ubiquitous term")
	}
	if stats.AvgLength != 3 {
		t.Errorf("AvgLength = %v, want 3", stats.AvgLength)
	}
	if stats.TermFreqs[0]["council"] != 1 || stats.Lengths[0] != 3 {
		t.Errorf("per-chunk stats wrong: tf=%d len=%d",
			stats.TermFreqs[0]["council"], stats.Lengths[0])
	}
}

func TestComputeStats_EmptyCorpus(t *testing.T) {
	stats := computeStats(nil)
	if stats.AvgLength != 0 || len(stats.IDF) != 0 {
		t.Errorf("empty corpus stats = %+v, want zeroes", stats)
	}
}
