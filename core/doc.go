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


// Package core defines the domain model for clause coverage checking.
//
// The model is built around a small number of immutable value types:
//
//   - Clause and Article describe the regulatory corpus being checked.
//   - MatchCandidate is a transient retrieval result.
//   - ClauseAssessment is the authoritative per-clause coverage judgment.
//   - ArticleCoverage and ComplianceReport are derived roll-ups.
//
// Banding (full/partial/missing) and compliance levels are pure functions
// of coverage percentages with fixed 75/40 thresholds; BandFor and LevelFor
// are the single source of truth for those boundaries.
package core
