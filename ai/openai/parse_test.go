package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdict(t *testing.T) {
	t.Run("clean json", func(t *testing.T) {
		verdict, err := parseVerdict(`{"score": 82, "confidence": "high", "explanation": "The policy addresses the requirement."}`)
		require.NoError(t, err)
		assert.Equal(t, 82, verdict.Score)
		assert.Equal(t, "high", verdict.Confidence)
		assert.Equal(t, "The policy addresses the requirement.", verdict.Explanation)
	})

	t.Run("markdown fenced json", func(t *testing.T) {
		verdict, err := parseVerdict("```json\n{\"score\": 45, \"confidence\": \"medium\", \"explanation\": \"Partial coverage.\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, 45, verdict.Score)
		assert.Equal(t, "medium", verdict.Confidence)
	})

	t.Run("repairable json with unquoted key", func(t *testing.T) {
		verdict, err := parseVerdict(`{"score": 10, confidence": "low", "explanation": "Not covered."}`)
		require.NoError(t, err)
		assert.Equal(t, 10, verdict.Score)
		assert.Equal(t, "low", verdict.Confidence)
	})

	t.Run("uppercase confidence normalized", func(t *testing.T) {
		verdict, err := parseVerdict(`{"score": 90, "confidence": "High", "explanation": "Covered."}`)
		require.NoError(t, err)
		assert.Equal(t, "high", verdict.Confidence)
	})

	t.Run("whitespace collapsed in explanation", func(t *testing.T) {
		verdict, err := parseVerdict(`{"score": 70, "confidence": "medium", "explanation": "Covers  the\n main   idea."}`)
		require.NoError(t, err)
		assert.Equal(t, "Covers the main idea.", verdict.Explanation)
	})

	t.Run("empty explanation gets placeholder", func(t *testing.T) {
		verdict, err := parseVerdict(`{"score": 55, "confidence": "low", "explanation": ""}`)
		require.NoError(t, err)
		assert.NotEmpty(t, verdict.Explanation)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseVerdict("the clause is mostly covered, I'd say around 70")
		assert.ErrorIs(t, err, ErrMalformedVerdict)
	})

	t.Run("missing score", func(t *testing.T) {
		_, err := parseVerdict(`{"confidence": "high", "explanation": "Covered."}`)
		assert.ErrorIs(t, err, ErrMalformedVerdict)
	})

	t.Run("score out of range", func(t *testing.T) {
		_, err := parseVerdict(`{"score": 140, "confidence": "high", "explanation": "Covered."}`)
		assert.ErrorIs(t, err, ErrMalformedVerdict)

		_, err = parseVerdict(`{"score": -5, "confidence": "high", "explanation": "Covered."}`)
		assert.ErrorIs(t, err, ErrMalformedVerdict)
	})

	t.Run("unknown confidence", func(t *testing.T) {
		_, err := parseVerdict(`{"score": 80, "confidence": "certain", "explanation": "Covered."}`)
		assert.ErrorIs(t, err, ErrMalformedVerdict)
	})

	t.Run("boundary scores accepted", func(t *testing.T) {
		verdict, err := parseVerdict(`{"score": 0, "confidence": "high", "explanation": "Missing entirely."}`)
		require.NoError(t, err)
		assert.Equal(t, 0, verdict.Score)

		verdict, err = parseVerdict(`{"score": 100, "confidence": "high", "explanation": "Verbatim coverage."}`)
		require.NoError(t, err)
		assert.Equal(t, 100, verdict.Score)
	})
}

func TestRepairJSON(t *testing.T) {
	t.Run("fixes missing opening quote", func(t *testing.T) {
		fixed := repairJSON(`{"score": 10, confidence": "low"}`)
		assert.Equal(t, `{"score": 10, "confidence": "low"}`, fixed)
	})

	t.Run("leaves valid json alone", func(t *testing.T) {
		in := `{"score": 10, "confidence": "low"}`
		assert.Equal(t, in, repairJSON(in))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, "", repairJSON(""))
	})
}
