// Package scoring turns per-clause assessments into the final compliance
// report. Everything here is pure and deterministic: no I/O, no clocks,
// no randomness. Given the same corpus and the same assessments, the same
// report comes out byte for byte.
package scoring
