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
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/clausecheck/core"
)

// Excerpt budget bounds. The adjudicator prompt carries an excerpt, never the
// whole document, so a bounded selection keeps token cost flat regardless of
// document size.
const (
	MinExcerptChars = 2000
	MaxExcerptChars = 4000
)

// RelevantExcerpt selects the most clause-relevant portion of a document.
// Paragraphs are scored by clause keyword density, the best scorers are
// assembled in document order up to MaxExcerptChars, and short documents
// are returned whole. A document with no keyword hits falls back to its
// leading paragraphs so the adjudicator always sees real content.
func RelevantExcerpt(document string, clause *core.Clause) string {
	document = strings.TrimSpace(document)
	if len(document) <= MinExcerptChars {
		return document
	}

	paragraphs := splitParagraphs(document)
	if len(paragraphs) <= 1 {
		return truncateChars(document, MaxExcerptChars)
	}

	keywords := clause.Keywords
	if len(keywords) == 0 {
		keywords = tokenize(clause.Text)
	}

	type scored struct {
		index int
		score int
	}
	scores := make([]scored, len(paragraphs))
	for i, paragraph := range paragraphs {
		lower := strings.ToLower(paragraph)
		s := scored{index: i}
		for _, keyword := range keywords {
			s.score += strings.Count(lower, keyword)
		}
		// Headers are cheap context and often name the topic directly.
		if isHeader(paragraph) && s.score > 0 {
			s.score *= 2
		}
		scores[i] = s
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	selected := make(map[int]bool)
	budget := 0
	for _, s := range scores {
		if s.score == 0 && len(selected) > 0 {
			break
		}
		length := len(paragraphs[s.index]) + 2
		if budget+length > MaxExcerptChars {
			continue
		}
		selected[s.index] = true
		budget += length
		if budget >= MinExcerptChars {
			break
		}
	}

	if len(selected) == 0 {
		return truncateChars(document, MaxExcerptChars)
	}

	// Reassemble in document order so the excerpt reads naturally.
	var parts []string
	for i, paragraph := range paragraphs {
		if selected[i] {
			parts = append(parts, paragraph)
		}
	}
	return strings.Join(parts, "\n\n")
}

// isHeader reports whether a paragraph looks like a section heading:
// a single short line without terminal punctuation.
func isHeader(paragraph string) bool {
	if strings.Contains(paragraph, "\n") || len(paragraph) > 80 {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(paragraph)
	return !strings.ContainsRune(".!?;,", last)
}

// truncateChars cuts text to at most max bytes without splitting a rune,
// preferring the last word boundary in the second half of the cut.
func truncateChars(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	cut := text[:max]
	if idx := strings.LastIndexAny(cut, " \n"); idx > max/2 {
		cut = cut[:idx]
	}
	return cut
}
