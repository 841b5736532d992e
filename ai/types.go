package ai

// JudgeRequest carries one clause/excerpt pair to the adjudication model.
type JudgeRequest struct {
	// ArticleNumber and ClauseLabel identify the clause being checked.
	ArticleNumber int
	ClauseLabel   string

	// ClauseText is the regulatory requirement to check for.
	ClauseText string

	// Excerpt is a bounded slice of the document text around the most
	// relevant matched region, never the whole document.
	Excerpt string
}

// Verdict is the adjudicator's judgment for one clause/excerpt pair.
// A Verdict only exists when the model response parsed cleanly; callers
// never need to check optional fields.
type Verdict struct {
	// Score is the coverage score in [0,100].
	Score int

	// Confidence is "high", "medium", or "low".
	Confidence string

	// Explanation is one short factual sentence about the match or gap.
	Explanation string
}
