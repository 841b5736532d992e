// Package retrieval implements the two-stage candidate funnel: a BM25
// lexical index over clause texts narrows the field cheaply, then a
// semantic reranker orders the survivors by embedding similarity. It also
// provides document segmentation and clause-relevant excerpt selection for
// the adjudication stage.
package retrieval
