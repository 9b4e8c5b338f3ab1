package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// DocumentMeta is the metadata bag attached to every harvested document.
// It is copied verbatim onto each chunk derived from the document and
// echoed back on search results.
type DocumentMeta struct {
	Council         string `json:"council,omitempty"`
	Committee       string `json:"committee,omitempty"`
	CommitteeID     string `json:"committee_id,omitempty"`
	MeetingID       string `json:"meeting_id,omitempty"`
	MeetingDate     string `json:"meeting_date,omitempty"` // DD/MM/YYYY
	DocumentTitle   string `json:"document_title,omitempty"`
	DocumentURL     string `json:"document_url,omitempty"`
	AgendaItem      string `json:"agenda_item,omitempty"`
	AttachmentID    string `json:"attachment_id,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	PageCount       int    `json:"page_count,omitempty"`
	WordCount       int    `json:"word_count,omitempty"`
}

// SourceDocument is one harvested civic-meeting document with its
// already-extracted plain text. Immutable once harvested.
type SourceDocument struct {
	Text string `json:"text"`
	DocumentMeta
}

// GenerateDocumentID creates a deterministic ID from a document URL.
// The ID is a SHA-256 hash (first 16 chars) of the URL.
func GenerateDocumentID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
