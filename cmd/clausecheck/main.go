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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/clausecheck/ai"
	"github.com/poiesic/clausecheck/ai/openai"
	"github.com/poiesic/clausecheck/config"
	"github.com/poiesic/clausecheck/corpus"
	"github.com/poiesic/clausecheck/pipeline"
	badgercache "github.com/poiesic/clausecheck/storage/badger"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "clausecheck",
		Usage: "Check documents for regulatory clause coverage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "score",
				Usage:     "Score a document against the clause corpus",
				ArgsUsage: "DOCUMENT (path to a text file, or - for stdin)",
				Action:    scoreCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML configuration file",
						Value:   "clausecheck.yaml",
					},
					&cli.StringFlag{
						Name:  "corpus",
						Usage: "Path to corpus JSON file (overrides config)",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Report cache directory (overrides config)",
					},
					&cli.BoolFlag{
						Name:  "judge",
						Usage: "Enable LLM adjudication (overrides config)",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Overall deadline for the run",
						Value: 5 * time.Minute,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Report adjudication backend status",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML configuration file",
						Value:   "clausecheck.yaml",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func scoreCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one document argument, got %d", c.NArg())
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.String("corpus") != "" {
		cfg.CorpusPath = c.String("corpus")
	}
	if c.String("cache-dir") != "" {
		cfg.CachePath = c.String("cache-dir")
	}
	if c.Bool("judge") {
		cfg.AI.JudgeEnabled = true
	}

	document, err := readDocument(c.Args().First())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	provider, err := buildProvider(cfg)
	if err != nil {
		return fmt.Errorf("initializing AI provider: %w", err)
	}
	defer provider.Close()

	clauseCorpus, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	if err := clauseCorpus.AttachEmbeddings(ctx, provider.Embedder(), cfg.AI.EmbeddingDim); err != nil {
		return fmt.Errorf("embedding corpus: %w", err)
	}

	opts := []pipeline.Option{
		pipeline.WithLexicalTopK(cfg.Retrieval.LexicalTopK),
		pipeline.WithRerankTopK(cfg.Retrieval.RerankTopK),
		pipeline.WithMinSimilarity(cfg.Retrieval.MinSimilarity),
		pipeline.WithPoolSize(cfg.Adjudication.PoolSize),
		pipeline.WithRetry(cfg.Adjudication.MaxAttempts, cfg.Adjudication.RetryDelay),
	}
	if cfg.AI.JudgeEnabled {
		opts = append(opts, pipeline.WithJudge(provider))
	}
	if cfg.CachePath != "" {
		cache, err := badgercache.NewCache(cfg.CachePath)
		if err != nil {
			return fmt.Errorf("opening report cache: %w", err)
		}
		defer cache.Close()
		opts = append(opts, pipeline.WithCache(cache))
	}

	engine, err := pipeline.New(clauseCorpus, provider.Embedder(), opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.Check(ctx, document)
	if err != nil {
		return err
	}

	return printJSON(report)
}

func statusCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	status := pipeline.Status{}
	if cfg.AI.JudgeEnabled {
		provider, err := buildProvider(cfg)
		if err != nil {
			return fmt.Errorf("initializing AI provider: %w", err)
		}
		defer provider.Close()

		status.Enabled = true
		status.Model = provider.ModelID()

		ctx, cancel := context.WithTimeout(c.Context, 5*time.Second)
		defer cancel()
		status.Reachable = provider.Ping(ctx) == nil
	}

	return printJSON(status)
}

func buildProvider(cfg *config.AppConfig) (ai.Provider, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.AI.EmbeddingHost),
		ai.WithJudgeHost(cfg.AI.JudgeHost),
		ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
		ai.WithJudgeModel(cfg.AI.JudgeModel),
		ai.WithAPIKey(cfg.APIKey()),
		ai.WithEmbeddingDim(cfg.AI.EmbeddingDim),
	)
	return openai.NewProvider(aiConfig)
}

func readDocument(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
