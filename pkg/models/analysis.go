package models

// DocumentType is one of the recognized document archetypes.
type DocumentType string

const (
	TypeCommitteeReport DocumentType = "committee_report"
	TypeQuestions       DocumentType = "questions"
	TypeMotion          DocumentType = "motion"
	TypeAmendment       DocumentType = "amendment"
	TypeUnknown         DocumentType = "unknown"
)

// Section is a named block of report text located under a recognized
// section header.
type Section struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Question is one question-and-answer record from a questions document.
type Question struct {
	Number        int    `json:"number,omitempty"`
	From          string `json:"from,omitempty"`
	Question      string `json:"question"`
	Answer        string `json:"answer,omitempty"`
	Supplementary string `json:"supplementary,omitempty"`
}

// Motion holds the structured fields of a notice of motion.
type Motion struct {
	Title      string `json:"title,omitempty"`
	Proposer   string `json:"proposer,omitempty"`
	Seconder   string `json:"seconder,omitempty"`
	MotionText string `json:"motion_text,omitempty"`
	Background string `json:"background,omitempty"`
}

// Amendment holds the structured fields of an amendment. FullText is
// populated when the targeted extraction captured too little of the
// document, so lossy extraction is surfaced rather than silently
// dropping content.
type Amendment struct {
	Title         string `json:"title,omitempty"`
	Proposer      string `json:"proposer,omitempty"`
	Seconder      string `json:"seconder,omitempty"`
	AmendmentText string `json:"amendment_text,omitempty"`
	FullText      string `json:"full_text,omitempty"`
}

// FieldStatus rates how completely one expected field was extracted.
type FieldStatus string

const (
	StatusMissing FieldStatus = "missing"
	StatusLow     FieldStatus = "low"
	StatusMedium  FieldStatus = "medium"
	StatusHigh    FieldStatus = "high"
)

// Confidence is an advisory, heuristic quality rating of an extraction.
// Computed fresh for each analysis, never cached.
type Confidence struct {
	Overall string                 `json:"overall"` // none|low|medium|high
	Ratio   float64                `json:"ratio"`
	Fields  map[string]FieldStatus `json:"fields,omitempty"`
	Detail  string                 `json:"detail"` // "3/5 sections found"
}

// DocumentAnalysis is the structural analysis of a single document.
// Exactly one of Sections/Questions/Motion/Amendment is populated,
// matching DocumentType; everything else stays empty.
type DocumentAnalysis struct {
	DocumentType    DocumentType `json:"document_type"`
	Title           string       `json:"title"`
	Author          string       `json:"author,omitempty"`
	Date            string       `json:"date,omitempty"`
	Summary         string       `json:"summary,omitempty"`
	Sections        []Section    `json:"sections,omitempty"`
	Recommendations []string     `json:"recommendations,omitempty"`
	Questions       []Question   `json:"questions,omitempty"`
	Motion          *Motion      `json:"motion,omitempty"`
	Amendment       *Amendment   `json:"amendment,omitempty"`
	Warnings        []string     `json:"warnings,omitempty"`
	Confidence      Confidence   `json:"confidence"`
}
