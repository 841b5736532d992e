package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/clausecheck/ai"
	"github.com/poiesic/clausecheck/core"
)

// Corpus is the immutable, versioned set of regulatory clauses grouped into
// articles. It is built once at startup and shared read-only across requests,
// so no locking is required for reads. Tests construct lightweight corpora
// directly via New.
type Corpus struct {
	version  string
	articles []*core.Article
	clauses  []*core.Clause
	byKey    map[core.ClauseKey]*core.Clause
}

// New builds a Corpus from articles. Articles are sorted by ascending number;
// articles with zero clauses are dropped (a data error, not a runtime failure).
// Every clause must validate.
func New(version string, articles []*core.Article) (*Corpus, error) {
	if version == "" {
		return nil, ErrMissingVersion
	}

	kept := make([]*core.Article, 0, len(articles))
	for _, article := range articles {
		if article == nil {
			continue
		}
		if len(article.Clauses) == 0 {
			slog.Warn("dropping article with no clauses", "article", article.Number)
			continue
		}
		kept = append(kept, article)
	}
	if len(kept) == 0 {
		return nil, ErrEmptyCorpus
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Number < kept[j].Number
	})

	c := &Corpus{
		version:  version,
		articles: kept,
		byKey:    make(map[core.ClauseKey]*core.Clause),
	}

	for _, article := range kept {
		for _, clause := range article.Clauses {
			if err := core.ValidateClause(clause); err != nil {
				return nil, fmt.Errorf("corpus version %s: %w", version, err)
			}
			if _, exists := c.byKey[clause.Key]; exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateClause, clause.Key)
			}
			c.byKey[clause.Key] = clause
			c.clauses = append(c.clauses, clause)
		}
	}

	return c, nil
}

// Version returns the corpus version identifier.
func (c *Corpus) Version() string {
	return c.version
}

// Articles returns all articles in ascending article-number order.
// Callers must not mutate the returned slice or its contents.
func (c *Corpus) Articles() []*core.Article {
	return c.articles
}

// Clauses returns all clauses across all articles.
// Callers must not mutate the returned slice or its contents.
func (c *Corpus) Clauses() []*core.Clause {
	return c.clauses
}

// Clause looks up a clause by its composite key.
func (c *Corpus) Clause(key core.ClauseKey) (*core.Clause, bool) {
	clause, ok := c.byKey[key]
	return clause, ok
}

// ArticleNumbers returns all article numbers in ascending order.
func (c *Corpus) ArticleNumbers() []int {
	numbers := make([]int, len(c.articles))
	for i, article := range c.articles {
		numbers[i] = article.Number
	}
	return numbers
}

// AttachEmbeddings computes and stores an embedding for every clause.
// This is the single startup mutation; after it returns the corpus is
// read-only. A vector of unexpected dimensionality aborts startup.
func (c *Corpus) AttachEmbeddings(ctx context.Context, embedder ai.Embedder, dim int) error {
	texts := make([]string, len(c.clauses))
	for i, clause := range c.clauses {
		texts[i] = clause.Text
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding corpus version %s: %w", c.version, err)
	}
	if len(vectors) != len(c.clauses) {
		return fmt.Errorf("%w: expected %d vectors, got %d", ErrEmbeddingCount, len(c.clauses), len(vectors))
	}

	for i, vector := range vectors {
		if len(vector) != dim {
			return fmt.Errorf("%w: clause %s has dimension %d, expected %d",
				ErrDimensionMismatch, c.clauses[i].Key, len(vector), dim)
		}
		c.clauses[i].Vector = vector
	}

	slog.Info("corpus embeddings attached",
		"version", c.version,
		"articles", len(c.articles),
		"clauses", len(c.clauses),
		"dim", dim)

	return nil
}
