package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashDocument(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		h1 := HashDocument("we process personal data lawfully")
		h2 := HashDocument("we process personal data lawfully")
		assert.Equal(t, h1, h2)
	})

	t.Run("different content different hash", func(t *testing.T) {
		h1 := HashDocument("we process personal data lawfully")
		h2 := HashDocument("we process personal data unlawfully")
		assert.NotEqual(t, h1, h2)
	})

	t.Run("empty text hashes", func(t *testing.T) {
		assert.Equal(t, HashDocument(""), HashDocument(""))
	})
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		want       Band
	}{
		{"zero", 0, BandMissing},
		{"just below partial", 39.99, BandMissing},
		{"partial boundary", 40, BandPartial},
		{"mid partial", 60, BandPartial},
		{"just below full", 74.99, BandPartial},
		{"full boundary", 75, BandFull},
		{"perfect", 100, BandFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BandFor(tt.percentage))
		})
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  Level
	}{
		{"zero", 0, LevelNotCompliant},
		{"just below partial", 39.5, LevelNotCompliant},
		{"partial boundary", 40, LevelPartiallyCompliant},
		{"just below compliant", 74.5, LevelPartiallyCompliant},
		{"compliant boundary", 75, LevelCompliant},
		{"perfect", 100, LevelCompliant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFor(tt.score))
		})
	}
}

func TestBandAndLevelShareBoundaries(t *testing.T) {
	// The compliance level thresholds mirror the banding policy.
	for _, pct := range []float64{0, 39.9, 40, 74.9, 75, 100} {
		band := BandFor(pct)
		level := LevelFor(pct)
		switch band {
		case BandFull:
			assert.Equal(t, LevelCompliant, level)
		case BandPartial:
			assert.Equal(t, LevelPartiallyCompliant, level)
		case BandMissing:
			assert.Equal(t, LevelNotCompliant, level)
		}
	}
}

func TestClauseKeyString(t *testing.T) {
	key := ClauseKey{ArticleNumber: 12, Label: "1.a"}
	assert.Equal(t, "12/1.a", key.String())
}

func TestArticleSearchText(t *testing.T) {
	t.Run("title plus clauses", func(t *testing.T) {
		article := &Article{
			Number: 5,
			Title:  "Consent",
			Clauses: []*Clause{
				{Key: ClauseKey{5, "1"}, Text: "Consent must be explicit."},
				{Key: ClauseKey{5, "2"}, Text: "Consent may be withdrawn."},
			},
		}
		assert.Equal(t, "Consent Consent must be explicit. Consent may be withdrawn.", article.SearchText())
	})

	t.Run("no title", func(t *testing.T) {
		article := &Article{
			Number:  5,
			Clauses: []*Clause{{Key: ClauseKey{5, "1"}, Text: "Consent must be explicit."}},
		}
		assert.Equal(t, "Consent must be explicit.", article.SearchText())
	})

	t.Run("empty clause text skipped", func(t *testing.T) {
		article := &Article{
			Number:  5,
			Title:   "Consent",
			Clauses: []*Clause{{Key: ClauseKey{5, "1"}}},
		}
		assert.Equal(t, "Consent", article.SearchText())
	})
}
