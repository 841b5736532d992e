package scoring

import (
	"math"

	"github.com/poiesic/clausecheck/core"
)

// Compute derives the final compliance report from per-article coverage.
// The overall score is the unweighted mean of article percentages; the
// compliance level reuses the same band cutoffs. Missing clauses are
// collected from every article, deduplicated by composite clause key, and
// ordered by article number then label (the input ordering from Aggregate).
func Compute(coverages []core.ArticleCoverage) *core.ComplianceReport {
	report := &core.ComplianceReport{
		TotalArticles: len(coverages),
	}

	if len(coverages) == 0 {
		report.ComplianceLevel = core.LevelNotCompliant
		return report
	}

	seen := make(map[core.ClauseKey]bool)
	var total float64
	for _, coverage := range coverages {
		total += coverage.Percentage

		report.Articles = append(report.Articles, core.ArticleSummary{
			ArticleNumber:      coverage.ArticleNumber,
			Title:              coverage.Title,
			CoveragePercentage: round2(coverage.Percentage),
			Band:               coverage.Band,
		})

		switch coverage.Band {
		case core.BandFull:
			report.FullyCovered++
		case core.BandPartial:
			report.PartiallyCovered++
		case core.BandMissing:
			report.Missing++
			report.MissingArticles.ArticleNumbers = append(
				report.MissingArticles.ArticleNumbers, coverage.ArticleNumber)
		}

		for _, assessment := range coverage.Assessments {
			if assessment.Score >= core.PartialThreshold || seen[assessment.Key] {
				continue
			}
			seen[assessment.Key] = true
			report.MissingClauses.Clauses = append(report.MissingClauses.Clauses, core.MissingClauseRef{
				ArticleNumber: assessment.Key.ArticleNumber,
				ClauseLabel:   assessment.Key.Label,
				Explanation:   assessment.Explanation,
			})
		}
	}

	report.MissingArticles.Count = len(report.MissingArticles.ArticleNumbers)
	report.MissingClauses.Count = len(report.MissingClauses.Clauses)

	report.OverallScore = round2(total / float64(len(coverages)))
	report.ComplianceLevel = core.LevelFor(report.OverallScore)

	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
