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

import "fmt"

// ValidateClause validates a Clause according to domain rules.
//
// Validation rules:
//   - ArticleNumber must be positive
//   - Label must not be empty
//   - Text must not be empty
//
// NOT validated (populated at corpus load):
//   - Vector (can be empty until embeddings are attached)
//   - Keywords (optional)
func ValidateClause(clause *Clause) error {
	if clause == nil {
		return fmt.Errorf("%w: clause is nil", ErrInvalidClause)
	}

	if clause.Key.ArticleNumber <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidClause, ErrInvalidArticleNumber)
	}

	if clause.Key.Label == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClause, ErrEmptyClauseLabel)
	}

	if clause.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClause, ErrEmptyClauseText)
	}

	return nil
}

// ValidateAssessment validates a ClauseAssessment according to domain rules.
//
// Validation rules:
//   - Score must be within [0,100]
//   - Method must be lexical, semantic, or llm
//   - Confidence must be high, medium, low, or none
func ValidateAssessment(assessment *ClauseAssessment) error {
	if assessment == nil {
		return fmt.Errorf("%w: assessment is nil", ErrInvalidAssessment)
	}

	if assessment.Score < 0 || assessment.Score > 100 {
		return fmt.Errorf("%w: %w: %f", ErrInvalidAssessment, ErrScoreOutOfRange, assessment.Score)
	}

	if err := ValidateMethod(assessment.Method); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAssessment, err)
	}

	if err := ValidateConfidence(assessment.Confidence); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAssessment, err)
	}

	return nil
}

// ValidateMethod validates that a Method has a recognized value.
func ValidateMethod(method Method) error {
	switch method {
	case MethodLexical, MethodSemantic, MethodLLM:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
}

// ValidateConfidence validates that a Confidence has a recognized value.
func ValidateConfidence(confidence Confidence) error {
	switch confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceNone:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidConfidence, confidence)
}
