package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/poiesic/clausecheck/core"
)

// corpusFile is the on-disk JSON shape. Clauses nest arbitrarily deep;
// the loader flattens them into leaf clauses with hierarchical paths.
type corpusFile struct {
	Version  string        `json:"version"`
	Articles []articleFile `json:"articles"`
}

type articleFile struct {
	Number  int          `json:"number"`
	Title   string       `json:"title"`
	Clauses []clauseFile `json:"clauses"`
}

type clauseFile struct {
	Label    string       `json:"label"`
	Text     string       `json:"text"`
	Keywords []string     `json:"keywords,omitempty"`
	Clauses  []clauseFile `json:"clauses,omitempty"`
}

// Load reads and parses a corpus JSON file.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Corpus from raw JSON. Nested sub-clauses are flattened
// into leaf clauses whose labels join the nesting labels with dots
// ("1.a" for sub-clause "a" under clause "1") and whose text prepends
// the parent clause text so each leaf stands alone for retrieval.
func Parse(data []byte) (*Corpus, error) {
	var file corpusFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCorpus, err)
	}

	articles := make([]*core.Article, 0, len(file.Articles))
	for _, af := range file.Articles {
		article := &core.Article{
			Number: af.Number,
			Title:  af.Title,
		}
		for _, cf := range af.Clauses {
			clauses, err := flattenClause(af.Number, af.Title, cf, "", "")
			if err != nil {
				return nil, fmt.Errorf("article %d: %w", af.Number, err)
			}
			article.Clauses = append(article.Clauses, clauses...)
		}
		articles = append(articles, article)
	}

	return New(file.Version, articles)
}

// flattenClause walks a clause subtree depth-first, emitting one core.Clause
// per leaf. Intermediate nodes contribute their label to the composite label
// and their text as preamble to each descendant leaf.
func flattenClause(articleNumber int, articleTitle string, cf clauseFile, parentLabel, parentText string) ([]*core.Clause, error) {
	if strings.TrimSpace(cf.Label) == "" {
		return nil, fmt.Errorf("%w: clause under %q", core.ErrEmptyClauseLabel, parentLabel)
	}

	label := cf.Label
	if parentLabel != "" {
		label = parentLabel + "." + cf.Label
	}

	text := strings.TrimSpace(cf.Text)
	if parentText != "" {
		text = strings.TrimSpace(parentText + " " + text)
	}

	if len(cf.Clauses) == 0 {
		clause := &core.Clause{
			Key: core.ClauseKey{
				ArticleNumber: articleNumber,
				Label:         label,
			},
			Text:     text,
			Path:     clausePath(articleNumber, articleTitle, label),
			Keywords: cf.Keywords,
		}
		if len(clause.Keywords) == 0 {
			clause.Keywords = extractKeywords(text)
		}
		return []*core.Clause{clause}, nil
	}

	var leaves []*core.Clause
	for _, child := range cf.Clauses {
		flattened, err := flattenClause(articleNumber, articleTitle, child, label, text)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, flattened...)
	}
	return leaves, nil
}

func clausePath(articleNumber int, articleTitle, label string) string {
	if articleTitle != "" {
		return fmt.Sprintf("Article %d (%s) / Clause %s", articleNumber, articleTitle, label)
	}
	return fmt.Sprintf("Article %d / Clause %s", articleNumber, label)
}

// extractKeywords pulls distinctive terms from clause text for keyword-density
// excerpt selection. Deliberately simple: lowercase words longer than three
// characters, deduplicated in first-seen order.
func extractKeywords(text string) []string {
	seen := make(map[string]bool)
	var keywords []string

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, word := range words {
		if len(word) <= 3 || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}
