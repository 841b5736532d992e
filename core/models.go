package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// DocHash is a content-based identifier for a document's extracted text.
// Identical text always produces the same hash, which makes it usable as
// a cache key together with the corpus version.
type DocHash uint64

// HashDocument generates a deterministic hash from document text using BLAKE2b.
func HashDocument(text string) DocHash {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return DocHash(binary.LittleEndian.Uint64(sum))
}

// ClauseKey identifies a clause within the corpus.
// The article number and clause label together form the composite key.
type ClauseKey struct {
	ArticleNumber int
	Label         string
}

// String returns the key as "article/label", e.g. "12/1.a".
func (k ClauseKey) String() string {
	return fmt.Sprintf("%d/%s", k.ArticleNumber, k.Label)
}

// Clause is the smallest unit of regulatory text checked for coverage.
// Clauses are immutable once the corpus is loaded.
type Clause struct {
	Key      ClauseKey
	Text     string
	Path     string    // hierarchical position, e.g. "12/1/a" for nested sub-clauses
	Keywords []string  // optional keyword set used by excerpt extraction
	Vector   []float32 // precomputed embedding, unit-normalized
}

// Article groups one or more clauses under the source regulation.
type Article struct {
	Number  int
	Title   string
	Clauses []*Clause
}

// SearchText returns the text used for lexical indexing and embedding:
// the article title followed by all clause texts.
func (a *Article) SearchText() string {
	text := a.Title
	for _, clause := range a.Clauses {
		if clause.Text == "" {
			continue
		}
		if text == "" {
			text = clause.Text
			continue
		}
		text = text + " " + clause.Text
	}
	return text
}

// Method identifies which pipeline stage produced an assessment score.
type Method string

const (
	// MethodLexical means the score came from term-frequency matching only.
	MethodLexical Method = "lexical"
	// MethodSemantic means the score came from embedding similarity.
	MethodSemantic Method = "semantic"
	// MethodLLM means the score came from generative-model adjudication.
	MethodLLM Method = "llm"
)

// Confidence is the adjudicator's confidence in an assessment.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	// ConfidenceNone marks assessments produced without adjudication.
	ConfidenceNone Confidence = "none"
)

// Band classifies an article's coverage percentage.
type Band string

const (
	BandFull    Band = "full"
	BandPartial Band = "partial"
	BandMissing Band = "missing"
)

// Level classifies the document-wide compliance score.
type Level string

const (
	LevelCompliant          Level = "compliant"
	LevelPartiallyCompliant Level = "partially_compliant"
	LevelNotCompliant       Level = "not_compliant"
)

// Banding thresholds. A coverage percentage at or above FullThreshold bands
// full; at or above PartialThreshold bands partial; below it bands missing.
// The compliance level reuses the same boundaries.
const (
	FullThreshold    = 75.0
	PartialThreshold = 40.0
)

// BandFor maps a coverage percentage to its band.
// It is a pure function of the percentage.
func BandFor(percentage float64) Band {
	switch {
	case percentage >= FullThreshold:
		return BandFull
	case percentage >= PartialThreshold:
		return BandPartial
	default:
		return BandMissing
	}
}

// LevelFor maps an overall score to a compliance level using the same
// boundaries as article banding.
func LevelFor(score float64) Level {
	switch {
	case score >= FullThreshold:
		return LevelCompliant
	case score >= PartialThreshold:
		return LevelPartiallyCompliant
	default:
		return LevelNotCompliant
	}
}

// MatchCandidate is a transient retrieval result for one clause.
// Candidates are ordered collections and are not deduplicated until
// aggregation.
type MatchCandidate struct {
	Key          ClauseKey
	LexicalScore float64
	Similarity   float64
}

// ClauseAssessment is the authoritative unit of coverage: one per clause
// per request.
type ClauseAssessment struct {
	Key         ClauseKey
	Score       float64 // coverage score in [0,100]
	Method      Method
	Confidence  Confidence
	Explanation string
	Excerpt     string // matched document excerpt, bounded
}

// ArticleCoverage is the per-article roll-up of clause assessments.
// It is derived and recomputed every request, never mutated in place.
type ArticleCoverage struct {
	ArticleNumber int
	Title         string
	Percentage    float64
	Band          Band
	Assessments   []ClauseAssessment
}
