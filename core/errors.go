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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidClause indicates a Clause failed validation.
	ErrInvalidClause = errors.New("invalid clause")

	// ErrInvalidAssessment indicates a ClauseAssessment failed validation.
	ErrInvalidAssessment = errors.New("invalid clause assessment")

	// ErrEmptyClauseText indicates the clause Text field is empty.
	ErrEmptyClauseText = errors.New("clause text cannot be empty")

	// ErrEmptyClauseLabel indicates the clause Label field is empty.
	ErrEmptyClauseLabel = errors.New("clause label cannot be empty")

	// ErrInvalidArticleNumber indicates a non-positive article number.
	ErrInvalidArticleNumber = errors.New("article number must be positive")

	// ErrScoreOutOfRange indicates a coverage score outside [0,100].
	ErrScoreOutOfRange = errors.New("coverage score must be between 0 and 100")

	// ErrInvalidMethod indicates an unrecognized assessment method.
	ErrInvalidMethod = errors.New("invalid assessment method")

	// ErrInvalidConfidence indicates an unrecognized confidence value.
	ErrInvalidConfidence = errors.New("invalid confidence level")
)
