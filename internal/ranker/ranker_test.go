package ranker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Gloucester-City-Council/civic-docs/internal/index"
	"github.com/Gloucester-City-Council/civic-docs/pkg/models"
)

func storeWith(chunks []models.Chunk) *index.Store {
	store := index.NewStore()
	store.Set(chunks)
	return store
}

func testChunks() []models.Chunk {
	mk := func(id int, text string, meta models.DocumentMeta) models.Chunk {
		return models.Chunk{ID: id, Text: text, ChunkIndex: 0, TotalChunks: 1, DocumentMeta: meta}
	}
	return []models.Chunk{
		mk(0, "The committee considered the housing strategy and agreed the recommendation on affordable housing delivery.",
			models.DocumentMeta{
				Council:       "Gloucester City Council",
				Committee:     "Cabinet",
				MeetingID:     "m-101",
				MeetingDate:   "14/03/2024",
				DocumentTitle: "Housing Strategy Update",
				DocumentURL:   "https://example.org/housing.pdf",
			}),
		mk(1, "Members discussed the annual budget and treasury management position for the coming financial year.",
			models.DocumentMeta{
				Council:       "Gloucester City Council",
				Committee:     "Audit and Governance Committee",
				MeetingID:     "m-102",
				MeetingDate:   "21/05/2024",
				DocumentTitle: "Budget Monitoring Report",
				DocumentURL:   "https://example.org/budget.pdf",
			}),
		mk(2, "A question was raised about parking enforcement near the city centre and the response from officers.",
			models.DocumentMeta{
				Council:       "Stroud District Council",
				Committee:     "Environment Committee",
				MeetingID:     "m-201",
				MeetingDate:   "02/06/2024",
				DocumentTitle: "Public Questions",
				DocumentURL:   "https://example.org/questions.pdf",
			}),
	}
}

func TestSearch_NoIndexBuilt(t *testing.T) {
	r := New(index.NewStore())
	resp, err := r.Search(models.SearchRequest{Query: "housing"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Note == "" {
		t.Error("expected explanatory note when no index is built")
	}
	if len(resp.Results) != 0 || resp.TotalChunks != 0 {
		t.Errorf("expected empty result set, got %+v", resp)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	r := New(storeWith(testChunks()))
	for _, q := range []string{"", "   ", "\t\n"} {
		resp, err := r.Search(models.SearchRequest{Query: q})
		if err != nil {
			t.Fatalf("Search(%q) error = %v", q, err)
		}
		if resp.Note == "" || len(resp.Results) != 0 {
			t.Errorf("Search(%q) should return an explanatory empty response, got %+v", q, resp)
		}
		if resp.TotalChunks != 3 {
			t.Errorf("TotalChunks = %d, want 3", resp.TotalChunks)
		}
	}
}

func TestSearch_NoMatchingTerms(t *testing.T) {
	r := New(storeWith(testChunks()))
	resp, err := r.Search(models.SearchRequest{Query: "zygomorphic quasar"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected no results, got %d", len(resp.Results))
	}
	if resp.TotalChunks != 3 {
		t.Errorf("TotalChunks = %d, want 3", resp.TotalChunks)
	}
}

func TestSearch_RanksMatchingChunkFirst(t *testing.T) {
	r := New(storeWith(testChunks()))
	resp, err := r.Search(models.SearchRequest{Query: "housing strategy"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}
	top := resp.Results[0]
	if top.DocumentTitle != "Housing Strategy Update" {
		t.Errorf("top result = %q, want the housing document", top.DocumentTitle)
	}
	if top.Score <= 0 {
		t.Errorf("top score = %v, want > 0", top.Score)
	}
	if top.ChunkPosition != "1/1" {
		t.Errorf("ChunkPosition = %q, want 1/1", top.ChunkPosition)
	}
	if strings.Contains(top.Snippet, "treasury") {
		t.Error("snippet taken from wrong chunk")
	}
}

func TestSearch_FiltersNarrowCandidatesNotStatistics(t *testing.T) {
	r := New(storeWith(testChunks()))

	resp, err := r.Search(models.SearchRequest{
		Query:   "parking enforcement",
		Filters: models.SearchFilters{Council: "Stroud District Council"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalChunks != 3 {
		t.Errorf("TotalChunks = %d, want 3 (filters must not change corpus totals)", resp.TotalChunks)
	}
	if resp.FilteredChunks != 1 {
		t.Errorf("FilteredChunks = %d, want 1", resp.FilteredChunks)
	}
	if resp.FilteredChunks > resp.TotalChunks {
		t.Error("filtered_chunks must never exceed total_chunks")
	}
	for _, result := range resp.Results {
		if result.Council != "Stroud District Council" {
			t.Errorf("filter leaked result from %q", result.Council)
		}
	}
}

func TestSearch_DateRangeFilter(t *testing.T) {
	r := New(storeWith(testChunks()))

	resp, err := r.Search(models.SearchRequest{
		Query: "committee budget question",
		Filters: models.SearchFilters{
			FromDate: "01/05/2024",
			ToDate:   "31/05/2024",
		},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.FilteredChunks != 1 {
		t.Fatalf("FilteredChunks = %d, want 1 (only the 21/05/2024 meeting)", resp.FilteredChunks)
	}
	if len(resp.Results) != 1 || resp.Results[0].MeetingDate != "21/05/2024" {
		t.Errorf("results = %+v, want the May meeting only", resp.Results)
	}

	// Inclusive bounds.
	resp, err = r.Search(models.SearchRequest{
		Query:   "budget",
		Filters: models.SearchFilters{FromDate: "21/05/2024", ToDate: "21/05/2024"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.FilteredChunks != 1 {
		t.Errorf("date range bounds should be inclusive, FilteredChunks = %d", resp.FilteredChunks)
	}
}

func TestSearch_ZeroFilterMatches(t *testing.T) {
	r := New(storeWith(testChunks()))
	resp, err := r.Search(models.SearchRequest{
		Query:   "housing",
		Filters: models.SearchFilters{Council: "Cotswold District Council"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.Note == "" || len(resp.Results) != 0 {
		t.Errorf("expected explanatory empty response, got %+v", resp)
	}
	if resp.TotalChunks != 3 || resp.FilteredChunks != 0 {
		t.Errorf("totals = %d/%d, want 3/0", resp.TotalChunks, resp.FilteredChunks)
	}
}

func TestSearch_InvalidDateFilterFailsFast(t *testing.T) {
	r := New(storeWith(testChunks()))
	if _, err := r.Search(models.SearchRequest{
		Query:   "housing",
		Filters: models.SearchFilters{FromDate: "2024-05-01"},
	}); err == nil {
		t.Error("malformed from_date should be an error, not an empty result")
	}
}

func TestSearch_NegativeTopKFailsFast(t *testing.T) {
	r := New(storeWith(testChunks()))
	if _, err := r.Search(models.SearchRequest{Query: "housing", TopK: -1}); err == nil {
		t.Error("negative top_k should be an error")
	}
}

func TestSearch_TopKLimit(t *testing.T) {
	var chunks []models.Chunk
	for i := 0; i < 25; i++ {
		chunks = append(chunks, models.Chunk{
			ID:          i,
			Text:        fmt.Sprintf("recycling collection schedule item %d", i),
			ChunkIndex:  i,
			TotalChunks: 25,
		})
	}
	r := New(storeWith(chunks))

	resp, err := r.Search(models.SearchRequest{Query: "recycling"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 10 {
		t.Errorf("default top_k should cap at 10, got %d", len(resp.Results))
	}

	resp, err = r.Search(models.SearchRequest{Query: "recycling", TopK: 3})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 3 {
		t.Errorf("top_k=3 should cap at 3, got %d", len(resp.Results))
	}
}

func TestSearch_DeterministicTieBreak(t *testing.T) {
	// Identical chunks score identically; stable sort must keep corpus order.
	var chunks []models.Chunk
	for i := 0; i < 6; i++ {
		chunks = append(chunks, models.Chunk{
			ID:          i,
			Text:        "allotment waiting list report",
			ChunkIndex:  i,
			TotalChunks: 6,
		})
	}
	r := New(storeWith(chunks))

	first, err := r.Search(models.SearchRequest{Query: "allotment"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for i, result := range first.Results {
		want := fmt.Sprintf("%d/6", i+1)
		if result.ChunkPosition != want {
			t.Errorf("result %d position = %q, want %q (corpus order)", i, result.ChunkPosition, want)
		}
	}

	second, _ := r.Search(models.SearchRequest{Query: "allotment"})
	for i := range first.Results {
		if first.Results[i] != second.Results[i] {
			t.Fatal("repeated identical search returned different ranking")
		}
	}
}

func TestSearch_LiteralPhraseBoost(t *testing.T) {
	chunks := []models.Chunk{
		{ID: 0, Text: "strategy for housing across the district with wider housing aims", ChunkIndex: 0, TotalChunks: 1},
		{ID: 1, Text: "the housing strategy was approved with minor amendments noted", ChunkIndex: 0, TotalChunks: 1},
	}
	r := New(storeWith(chunks))

	resp, err := r.Search(models.SearchRequest{Query: "housing strategy"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if !strings.Contains(resp.Results[0].Snippet, "housing strategy was approved") {
		t.Errorf("literal-phrase chunk should rank first, got %q", resp.Results[0].Snippet)
	}
}

func TestSearch_MetadataBoostPrefersNamedCouncil(t *testing.T) {
	chunks := []models.Chunk{
		{ID: 0, Text: "leisure centre refurbishment programme", ChunkIndex: 0, TotalChunks: 1,
			DocumentMeta: models.DocumentMeta{Council: "Stroud District Council"}},
		{ID: 1, Text: "leisure centre refurbishment programme", ChunkIndex: 0, TotalChunks: 1,
			DocumentMeta: models.DocumentMeta{Council: "Gloucester City Council"}},
	}
	r := New(storeWith(chunks))

	resp, err := r.Search(models.SearchRequest{Query: "gloucester leisure centre"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Council != "Gloucester City Council" {
		t.Errorf("council mentioned in the query should rank first, got %q", resp.Results[0].Council)
	}
}

func TestBM25_MoreOccurrencesNeverScoreLower(t *testing.T) {
	stats := &index.Stats{
		IDF:       map[string]float64{"flood": 1.2},
		AvgLength: 50,
	}
	tokens := []string{"flood"}

	prev := 0.0
	for tf := 1; tf <= 10; tf++ {
		score := bm25Score(tokens, map[string]int{"flood": tf}, 50, stats)
		if score < prev {
			t.Fatalf("BM25 decreased when tf rose to %d: %v < %v", tf, score, prev)
		}
		prev = score
	}
}

func TestSnippet(t *testing.T) {
	short := "Short chunk text."
	if got := snippet(short, "chunk"); got != short {
		t.Errorf("short text should be returned whole, got %q", got)
	}

	long := strings.Repeat("padding words before the target appears here ", 20) +
		"flood defence scheme" +
		strings.Repeat(" and then trailing content follows on afterwards", 20)
	got := snippet(long, "flood defence")
	if !strings.Contains(got, "flood defence") {
		t.Errorf("snippet should contain the query, got %q", got)
	}
	if len(got) > snippetWidth+10 {
		t.Errorf("snippet too long: %d chars", len(got))
	}
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Errorf("mid-text snippet should carry both ellipses, got %q", got)
	}
}
