// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.ClauseJudge,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	vec, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	judge := provider.GetMockJudge()
//	judge.JudgeFunc = func(ctx context.Context, req ai.JudgeRequest) (*ai.Verdict, error) {
//	    return nil, context.DeadlineExceeded
//	}
//
//	// Check call counts, e.g. to prove no adjudication calls were made
//	count := judge.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: returns deterministic unit vectors based on text hash
//   - MockJudge: scores by word overlap between clause text and excerpt
//   - MockProvider: aggregates mock embedder and judge; Ping succeeds
package mock
