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

package retrieval

import (
	"math"
	"sort"

	"github.com/poiesic/clausecheck/core"
	"github.com/poiesic/clausecheck/corpus"
)

// BM25 tuning parameters. Standard Okapi defaults.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// LexicalIndex is an Okapi BM25 index over corpus clause texts.
// It is built once per corpus and is safe for concurrent reads.
type LexicalIndex struct {
	k1 float64
	b  float64

	keys      []core.ClauseKey
	docLens   []int
	avgDocLen float64
	// term -> docIndex -> term frequency
	postings map[string]map[int]int
	// term -> inverse document frequency
	idf map[string]float64
}

// LexicalOption configures a LexicalIndex.
type LexicalOption func(*LexicalIndex)

// WithK1 overrides the term-frequency saturation parameter.
func WithK1(k1 float64) LexicalOption {
	return func(idx *LexicalIndex) { idx.k1 = k1 }
}

// WithB overrides the length-normalization parameter.
func WithB(b float64) LexicalOption {
	return func(idx *LexicalIndex) { idx.b = b }
}

// NewLexicalIndex builds a BM25 index over every clause in the corpus.
func NewLexicalIndex(c *corpus.Corpus, opts ...LexicalOption) *LexicalIndex {
	idx := &LexicalIndex{
		k1:       DefaultK1,
		b:        DefaultB,
		postings: make(map[string]map[int]int),
		idf:      make(map[string]float64),
	}
	for _, opt := range opts {
		opt(idx)
	}

	clauses := c.Clauses()
	idx.keys = make([]core.ClauseKey, len(clauses))
	idx.docLens = make([]int, len(clauses))

	var totalLen int
	for i, clause := range clauses {
		idx.keys[i] = clause.Key
		terms := tokenize(clause.Text)
		idx.docLens[i] = len(terms)
		totalLen += len(terms)

		for _, term := range terms {
			docs, ok := idx.postings[term]
			if !ok {
				docs = make(map[int]int)
				idx.postings[term] = docs
			}
			docs[i]++
		}
	}

	n := float64(len(clauses))
	if n > 0 {
		idx.avgDocLen = float64(totalLen) / n
	}

	for term, docs := range idx.postings {
		df := float64(len(docs))
		idx.idf[term] = math.Log(1 + (n-df+0.5)/(df+0.5))
	}

	return idx
}

// Candidates scores the query against every clause and returns up to topK
// candidates ordered by descending lexical score, ties broken by ascending
// article number then clause label. An empty or all-stop-word query returns
// no candidates.
func (idx *LexicalIndex) Candidates(query string, topK int) []core.MatchCandidate {
	terms := tokenize(query)
	if len(terms) == 0 || topK <= 0 {
		return nil
	}

	scores := make(map[int]float64)
	for _, term := range terms {
		docs, ok := idx.postings[term]
		if !ok {
			continue
		}
		termIDF := idx.idf[term]
		for doc, tf := range docs {
			f := float64(tf)
			norm := idx.k1 * (1 - idx.b + idx.b*float64(idx.docLens[doc])/idx.avgDocLen)
			scores[doc] += termIDF * f * (idx.k1 + 1) / (f + norm)
		}
	}

	candidates := make([]core.MatchCandidate, 0, len(scores))
	for doc, score := range scores {
		candidates = append(candidates, core.MatchCandidate{
			Key:          idx.keys[doc],
			LexicalScore: score,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].LexicalScore != candidates[j].LexicalScore {
			return candidates[i].LexicalScore > candidates[j].LexicalScore
		}
		if candidates[i].Key.ArticleNumber != candidates[j].Key.ArticleNumber {
			return candidates[i].Key.ArticleNumber < candidates[j].Key.ArticleNumber
		}
		return candidates[i].Key.Label < candidates[j].Key.Label
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}
