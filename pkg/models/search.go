package models

// SearchFilters narrows the candidate chunk set before scoring. Filters
// never change the corpus statistics used for ranking.
type SearchFilters struct {
	Council     string `json:"council,omitempty"`
	Committee   string `json:"committee,omitempty"`
	CommitteeID string `json:"committee_id,omitempty"`
	MeetingID   string `json:"meeting_id,omitempty"`
	FromDate    string `json:"from_date,omitempty"` // DD/MM/YYYY, inclusive
	ToDate      string `json:"to_date,omitempty"`   // DD/MM/YYYY, inclusive
}

// IsZero reports whether no filter is set.
func (f SearchFilters) IsZero() bool {
	return f == SearchFilters{}
}

// SearchRequest is a free-text search over the corpus index.
type SearchRequest struct {
	Query   string        `json:"query"`
	TopK    int           `json:"top_k,omitempty"` // default 10
	Filters SearchFilters `json:"filters,omitempty"`
}

// SearchResult is one ranked hit: a readable snippet plus the source
// document's metadata, without the full chunk text.
type SearchResult struct {
	Snippet       string  `json:"snippet"`
	Score         float64 `json:"score"`
	ChunkPosition string  `json:"chunk_position"` // "3/7"
	DocumentMeta
}

// SearchResponse is the ranked result set. When no results can be
// produced (no index, empty query, nothing matched the filters) Note
// explains why instead of an error, so callers can distinguish "never
// built" from "built but nothing matched".
type SearchResponse struct {
	Query          string         `json:"query"`
	Results        []SearchResult `json:"results"`
	TotalChunks    int            `json:"total_chunks"`
	FilteredChunks int            `json:"filtered_chunks"`
	Note           string         `json:"note,omitempty"`
}
