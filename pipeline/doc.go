// Package pipeline orchestrates a coverage run end to end.
//
// A run segments the document, funnels each segment through the lexical
// index and the semantic reranker, optionally adjudicates the surviving
// clause matches with an LLM judge on a bounded worker pool, and folds
// the per-clause assessments into a deterministic compliance report.
//
// Backend failures degrade fidelity instead of failing the run: without
// a reachable embedder the report is lexical-only, and without a
// reachable judge the semantic scores stand.
package pipeline
