// Package corpus loads and holds the versioned regulatory clause corpus.
//
// A corpus is parsed once from JSON at startup, its nested sub-clauses
// flattened into leaf clauses with composite labels, embeddings attached,
// and the result is treated as immutable for the life of the process.
package corpus
