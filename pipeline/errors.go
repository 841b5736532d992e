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

package pipeline

import "errors"

var (
	// ErrNilCorpus indicates the engine was constructed without a corpus.
	ErrNilCorpus = errors.New("corpus is required")

	// ErrNilEmbedder indicates the engine was constructed without an embedder.
	ErrNilEmbedder = errors.New("embedder is required")

	// ErrDocumentTooLarge indicates the input document exceeds the size limit.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")

	// ErrInvalidPoolSize indicates a non-positive worker pool size.
	ErrInvalidPoolSize = errors.New("pool size must be positive")

	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
