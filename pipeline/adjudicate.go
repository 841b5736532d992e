package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/poiesic/clausecheck/ai"
	"github.com/poiesic/clausecheck/core"
	"github.com/poiesic/clausecheck/retrieval"
)

// adjudicationTask pairs a clause with the semantic assessment that stands
// if the judge cannot produce a verdict for it.
type adjudicationTask struct {
	clause   *core.Clause
	fallback core.ClauseAssessment
}

// adjudicate runs the judge over all tasks on the bounded worker pool.
// Each task gets up to maxAttempts tries with exponential backoff; a task
// that still fails keeps its semantic fallback, so a misbehaving judge
// degrades individual clauses without sinking the run. Once ctx is done no
// new judge calls start. Returns the assessments and whether any verdict
// was actually produced.
func (e *Engine) adjudicate(ctx context.Context, document string, tasks []adjudicationTask) ([]core.ClauseAssessment, bool) {
	judge := e.provider.Judge()

	// Seed every slot with its fallback first so clauses the deadline cuts
	// off keep their pre-adjudication score.
	results := make([]core.ClauseAssessment, len(tasks))
	for i, task := range tasks {
		results[i] = task.fallback
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	verdictCount := 0

	for i, task := range tasks {
		if ctx.Err() != nil {
			e.logger.Warn("adjudication cut short", "reason", ctx.Err(), "remaining", len(tasks)-i)
			break
		}

		i, task := i, task
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()

			assessment, ok := e.judgeClause(ctx, judge, document, task)
			if !ok {
				return
			}

			mu.Lock()
			results[i] = assessment
			verdictCount++
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			e.logger.Warn("worker pool rejected task", "clause", task.clause.Key.String(), "error", err)
		}
	}

	wg.Wait()
	return results, verdictCount > 0
}

// judgeClause asks the judge about one clause, retrying transient failures.
// Returns false if no verdict could be obtained.
func (e *Engine) judgeClause(ctx context.Context, judge ai.ClauseJudge, document string, task adjudicationTask) (core.ClauseAssessment, bool) {
	excerpt := retrieval.RelevantExcerpt(document, task.clause)

	req := ai.JudgeRequest{
		ArticleNumber: task.clause.Key.ArticleNumber,
		ClauseLabel:   task.clause.Key.Label,
		ClauseText:    task.clause.Text,
		Excerpt:       excerpt,
	}

	var verdict *ai.Verdict
	err := RetryWithBackoff(ctx, func() error {
		var judgeErr error
		verdict, judgeErr = judge.Judge(ctx, req)
		return judgeErr
	}, e.maxAttempts, e.baseDelay)
	if err != nil {
		e.logger.Warn("adjudication failed, keeping semantic score",
			"clause", task.clause.Key.String(),
			"error", err)
		return core.ClauseAssessment{}, false
	}

	return core.ClauseAssessment{
		Key:         task.clause.Key,
		Score:       float64(verdict.Score),
		Method:      core.MethodLLM,
		Confidence:  core.Confidence(verdict.Confidence),
		Explanation: verdict.Explanation,
		Excerpt:     excerpt,
	}, true
}

// Default adjudication retry tuning
const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)
