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

package scoring

import (
	"sort"

	"github.com/poiesic/clausecheck/core"
	"github.com/poiesic/clausecheck/corpus"
)

// Aggregate folds per-clause assessments into per-article coverage.
// Every clause in the corpus counts: a clause with no assessment scores zero.
// The result is ordered by ascending article number and each article's
// assessments by ascending clause label, so identical inputs always produce
// identical output.
func Aggregate(c *corpus.Corpus, assessments []core.ClauseAssessment) []core.ArticleCoverage {
	byKey := make(map[core.ClauseKey]core.ClauseAssessment, len(assessments))
	for _, assessment := range assessments {
		existing, ok := byKey[assessment.Key]
		if !ok || assessment.Score > existing.Score {
			byKey[assessment.Key] = assessment
		}
	}

	coverages := make([]core.ArticleCoverage, 0, len(c.Articles()))
	for _, article := range c.Articles() {
		coverage := core.ArticleCoverage{
			ArticleNumber: article.Number,
			Title:         article.Title,
		}

		var total float64
		for _, clause := range article.Clauses {
			assessment, ok := byKey[clause.Key]
			if !ok {
				assessment = core.ClauseAssessment{
					Key:         clause.Key,
					Score:       0,
					Method:      core.MethodLexical,
					Confidence:  core.ConfidenceNone,
					Explanation: "no matching content found in document",
				}
			}
			total += assessment.Score
			coverage.Assessments = append(coverage.Assessments, assessment)
		}

		coverage.Percentage = total / float64(len(article.Clauses))
		coverage.Band = core.BandFor(coverage.Percentage)

		sort.Slice(coverage.Assessments, func(i, j int) bool {
			return coverage.Assessments[i].Key.Label < coverage.Assessments[j].Key.Label
		})

		coverages = append(coverages, coverage)
	}

	return coverages
}
