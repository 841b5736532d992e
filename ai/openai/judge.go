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
	"github.com/tmc/langchaingo/llms/openai"
)

// Judge implements ai.ClauseJudge using OpenAI-compatible chat APIs.
type Judge struct {
	client llms.Model
	logger *slog.Logger
}

// newJudge is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newJudge(config *ai.Config) (*Judge, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.JudgeHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.JudgeModel),
	)
	if err != nil {
		return nil, err
	}

	return &Judge{
		client: client,
		logger: slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewJudge creates a new clause judge using the provided configuration.
//
// Returns ai.ClauseJudge interface to enforce abstraction.
func NewJudge(config *ai.Config) (ai.ClauseJudge, error) {
	return newJudge(config)
}

// Judge evaluates one clause against a bounded document excerpt.
// The model is asked for a JSON verdict at temperature 0; a response that
// does not parse into the expected shape is returned as an error so that
// the caller can retry.
func (j *Judge) Judge(ctx context.Context, req ai.JudgeRequest) (*ai.Verdict, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(judgeSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildJudgePrompt(req)),
			},
		},
	}

	response, err := j.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		j.logger.Error("failed to generate verdict",
			"article", req.ArticleNumber,
			"clause", req.ClauseLabel,
			"err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		j.logger.Warn("no choices returned from model",
			"article", req.ArticleNumber,
			"clause", req.ClauseLabel)
		return nil, ErrNoChoices
	}

	verdict, err := parseVerdict(response.Choices[0].Content)
	if err != nil {
		j.logger.Warn("error parsing judge response",
			"article", req.ArticleNumber,
			"clause", req.ClauseLabel,
			"response", truncate(response.Choices[0].Content, 200),
			"err", err)
		return nil, err
	}

	j.logger.Debug("verdict parsed",
		"article", req.ArticleNumber,
		"clause", req.ClauseLabel,
		"score", verdict.Score,
		"confidence", verdict.Confidence)

	return verdict, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
