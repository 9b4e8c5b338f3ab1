package models

import "fmt"

// Chunk is a fixed-size, overlapping slice of a document's text carrying
// the document's full metadata. Chunks are created once at index-build
// time and never mutated.
type Chunk struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	ChunkIndex  int    `json:"chunk_index"`  // 0-based within the document
	TotalChunks int    `json:"total_chunks"` // constant across the document
	DocumentMeta
}

// Position renders the chunk's place within its document as "3/7".
func (c Chunk) Position() string {
	return fmt.Sprintf("%d/%d", c.ChunkIndex+1, c.TotalChunks)
}
