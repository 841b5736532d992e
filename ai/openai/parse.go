package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/clausecheck/ai"
)

// verdictPayload is an internal type used for JSON unmarshaling.
// It matches the structure requested from the model.
type verdictPayload struct {
	Score       *int   `json:"score"`
	Confidence  string `json:"confidence"`
	Explanation string `json:"explanation"`
}

// parseVerdict parses a model response into an ai.Verdict.
// The parser is strict: a missing score, an out-of-range score, or an
// unknown confidence value is ErrMalformedVerdict, never a partial result.
func parseVerdict(response string) (*ai.Verdict, error) {
	// Strip markdown code fences if present
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Try to repair common JSON issues
	text = repairJSON(text)

	var payload verdictPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedVerdict, err)
	}

	if payload.Score == nil {
		return nil, fmt.Errorf("%w: missing score", ErrMalformedVerdict)
	}
	if *payload.Score < 0 || *payload.Score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range", ErrMalformedVerdict, *payload.Score)
	}

	confidence := strings.ToLower(strings.TrimSpace(payload.Confidence))
	switch confidence {
	case "high", "medium", "low":
	default:
		return nil, fmt.Errorf("%w: unknown confidence %q", ErrMalformedVerdict, payload.Confidence)
	}

	explanation := strings.Join(strings.Fields(payload.Explanation), " ")
	if explanation == "" {
		explanation = "model provided a score but no explanation"
	}

	return &ai.Verdict{
		Score:       *payload.Score,
		Confidence:  confidence,
		Explanation: explanation,
	}, nil
}
