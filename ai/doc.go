// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services used in clause
// coverage checking.
//
// This package defines interfaces for text embedding and clause
// adjudication. It follows the dependency inversion principle, allowing the
// retrieval and scoring pipeline to depend on abstractions rather than
// concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: generates unit-normalized vector embeddings from text
//   - ClauseJudge: adjudicates clause coverage against a document excerpt
//   - Provider: aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockJudge) return
// CONCRETE types to enable test assertions and behavior injection via the
// mock's public fields and methods (CallCount, JudgeFunc, Reset, etc.).
//
//	mockJudge := mock.NewMockJudge()      // returns *mock.MockJudge
//	mockJudge.JudgeFunc = ...             // needs concrete type
//	count := mockJudge.CallCount()        // test assertion
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "we collect personal data")
//	verdict, err := provider.Judge().Judge(ctx, ai.JudgeRequest{...})
package ai
