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

package storage

import (
	"context"

	"github.com/poiesic/clausecheck/core"
)

// CacheKey identifies a cached report: the same document content checked
// against the same corpus version always maps to the same key.
type CacheKey struct {
	DocumentHash  core.DocHash
	CorpusVersion string
}

// ReportCache stores completed compliance reports keyed by document content
// and corpus version. Implementations must be safe for concurrent use.
type ReportCache interface {
	// Get returns the cached report for the key, or ErrNotFound.
	Get(ctx context.Context, key CacheKey) (*core.ComplianceReport, error)

	// Put stores a report under the key, overwriting any previous entry.
	Put(ctx context.Context, key CacheKey, report *core.ComplianceReport) error

	// Close releases the underlying store.
	Close() error
}
