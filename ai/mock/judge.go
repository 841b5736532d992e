package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/clausecheck/ai"
)

// MockJudge is a test double for ai.ClauseJudge.
// It allows custom behavior injection via function fields.
// Safe for concurrent use, matching the ai.ClauseJudge contract.
type MockJudge struct {
	// JudgeFunc is called by Judge if set.
	// If nil, uses default word-overlap scoring.
	JudgeFunc func(ctx context.Context, req ai.JudgeRequest) (*ai.Verdict, error)

	mu        sync.Mutex
	callCount int
}

// NewMockJudge creates a mock judge with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockJudge().
func NewMockJudge() *MockJudge {
	return &MockJudge{}
}

// Judge produces a deterministic verdict from word overlap between the
// clause text and the excerpt. Full overlap scores 100, none scores 0.
func (m *MockJudge) Judge(ctx context.Context, req ai.JudgeRequest) (*ai.Verdict, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.JudgeFunc != nil {
		return m.JudgeFunc(ctx, req)
	}

	clauseWords := fieldsLower(req.ClauseText)
	if len(clauseWords) == 0 {
		return &ai.Verdict{Score: 0, Confidence: "low", Explanation: "empty clause text"}, nil
	}

	excerptSet := make(map[string]bool)
	for _, word := range fieldsLower(req.Excerpt) {
		excerptSet[word] = true
	}

	found := 0
	for _, word := range clauseWords {
		if excerptSet[word] {
			found++
		}
	}

	score := found * 100 / len(clauseWords)
	confidence := "medium"
	if score >= 80 || score <= 20 {
		confidence = "high"
	}

	return &ai.Verdict{
		Score:       score,
		Confidence:  confidence,
		Explanation: "mock verdict from word overlap",
	}, nil
}

// CallCount returns the number of times Judge was called.
func (m *MockJudge) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockJudge) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.JudgeFunc = nil
}

func fieldsLower(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word != "" {
			out = append(out, word)
		}
	}
	return out
}
