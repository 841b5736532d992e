package openai

import (
	"fmt"

	"github.com/poiesic/clausecheck/ai"
)

const judgeSystemPrompt = `You are a senior legal compliance expert. Your task is to evaluate whether a specific regulatory clause is adequately covered in an excerpt from a policy document.`

const verdictResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "score": {
      "type": "integer",
      "minimum": 0,
      "maximum": 100
    },
    "confidence": {
      "type": "string",
      "enum": ["high", "medium", "low"]
    },
    "explanation": {
      "type": "string"
    }
  },
  "required": ["score", "confidence", "explanation"],
  "additionalProperties": false
}`

const judgePromptTemplate = `Evaluate the coverage of the regulatory clause below and return the verdict as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

SCORING RULES:
0-19 = Not covered or almost completely missing.
20-49 = Mentioned briefly or very partially; important elements missing.
50-79 = Generally covered; the main idea is present, even if some details are missing.
80-100 = Strong coverage; clearly addresses the requirement with good detail.

EVALUATION GUIDELINES:
- Look for EQUIVALENT MEANING, not exact wording. Policies rarely copy regulatory text.
- If the core idea of the clause is clearly there, score at least 60.
- If the policy is detailed and aligns well with the clause, typical scores are 75-95.
- Use scores below 40 only when the requirement is truly missing or extremely vague.
- If you are unsure but see some connection, stay in the 40-60 range instead of very low.
- The explanation must be ONE short sentence, neutral and factual.

Example:
Clause: "The controller must inform the data subject of the purpose of data collection."
Document: "We collect personal data to provide services, improve our products, and comply with legal obligations."
Output:
{"score": 88, "confidence": "high", "explanation": "The policy clearly explains why data is collected and matches the intent of the clause."}

Example:
Clause: "The controller must provide a mechanism to stop receiving marketing messages."
Document: "We may send you promotional and marketing content."
Output:
{"score": 18, "confidence": "high", "explanation": "The policy mentions marketing but does not provide any opt-out mechanism."}

REQUIREMENT TO CHECK
Article: %d
Clause: %s
Clause Text:
%s

DOCUMENT EXCERPT:
%s`

// buildJudgePrompt creates the user prompt for one clause/excerpt pair.
func buildJudgePrompt(req ai.JudgeRequest) string {
	return fmt.Sprintf(judgePromptTemplate,
		verdictResponseSchema,
		req.ArticleNumber,
		req.ClauseLabel,
		req.ClauseText,
		req.Excerpt)
}
