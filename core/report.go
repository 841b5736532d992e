package core

// ComplianceReport is the final output of a coverage run. It is immutable
// once produced and owned by the caller. The JSON shape is a stable,
// field-level contract.
type ComplianceReport struct {
	OverallScore     float64          `json:"overall_score"`
	ComplianceLevel  Level            `json:"compliance_level"`
	TotalArticles    int              `json:"total_articles"`
	FullyCovered     int              `json:"fully_covered"`
	PartiallyCovered int              `json:"partially_covered"`
	Missing          int              `json:"missing"`
	MissingArticles  MissingArticles  `json:"missing_articles"`
	MissingClauses   MissingClauses   `json:"missing_clauses"`
	Articles         []ArticleSummary `json:"articles"`
	Warning          string           `json:"warning,omitempty"`
	Performance      Performance      `json:"performance"`
}

// MissingArticles lists the articles banded missing.
type MissingArticles struct {
	Count          int   `json:"count"`
	ArticleNumbers []int `json:"article_numbers"`
}

// MissingClauseRef identifies a clause scoring below the missing cutoff.
type MissingClauseRef struct {
	ArticleNumber int    `json:"article_number"`
	ClauseLabel   string `json:"clause_label"`
	Explanation   string `json:"explanation,omitempty"`
}

// MissingClauses is the deduplicated list of under-covered clauses.
type MissingClauses struct {
	Count   int                `json:"count"`
	Clauses []MissingClauseRef `json:"clauses"`
}

// ArticleSummary is one article's entry in the report, ordered by
// ascending article number.
type ArticleSummary struct {
	ArticleNumber      int     `json:"article_number"`
	Title              string  `json:"title,omitempty"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	Band               Band    `json:"band"`
}

// Performance carries timing metadata for a run.
type Performance struct {
	ElapsedTimeSeconds float64 `json:"elapsed_time_seconds"`
	LLMUsed            bool    `json:"llm_used"`
}
