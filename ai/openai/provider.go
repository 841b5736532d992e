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


package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/clausecheck/ai"
	"github.com/tmc/langchaingo/llms"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages embedder and judge instances.
type Provider struct {
	config   *ai.Config
	embedder *Embedder
	judge    *Judge
	logger   *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create embedder (using internal constructor for concrete type)
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	// Create judge (using internal constructor for concrete type)
	judge, err := newJudge(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		embedder: embedder,
		judge:    judge,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Judge returns the clause adjudication service.
func (p *Provider) Judge() ai.ClauseJudge {
	return p.judge
}

// ModelID returns the adjudication model identifier.
func (p *Provider) ModelID() string {
	return p.config.JudgeModel
}

// Ping checks the adjudication backend with a minimal completion call.
// Used by the status surface to distinguish degraded from full-accuracy mode.
func (p *Provider) Ping(ctx context.Context) error {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart("ping")},
		},
	}
	_, err := p.judge.client.GenerateContent(ctx, content, llms.WithMaxTokens(5))
	if err != nil {
		p.logger.Warn("adjudication backend unreachable", "model", p.config.JudgeModel, "err", err)
	}
	return err
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
