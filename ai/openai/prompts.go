package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/talentmatch/ai"
)

const evaluationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "approved": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {
            "type": "integer",
            "minimum": 1
          },
          "justification": {
            "type": "string"
          }
        },
        "required": ["id", "justification"],
        "additionalProperties": false
      }
    },
    "rejected": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {
            "type": "integer",
            "minimum": 1
          },
          "reason": {
            "type": "string"
          }
        },
        "required": ["id", "reason"],
        "additionalProperties": false
      }
    }
  },
  "required": ["approved", "rejected"],
  "additionalProperties": false
}`

const evaluationPromptTemplate = `You are reviewing content matches proposed for a candidate. Decide which
matches genuinely fit the candidate and return your verdict as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Every candidate id you were given must appear exactly once, in either "approved" or "rejected".
- Approve at most %d candidates. Approve fewer, or none, if the matches are weak.
- The id field must be one of the numeric ids from the candidate list. Never invent ids.
- A justification explains in one or two sentences why the content fits this specific candidate.
- A reason explains briefly why the content does not fit.
- Judge relevance to the candidate, not the quality of the writing.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Candidate context: "Backend engineer interested in distributed systems and Go."
Candidates:
1. "Designing Raft-based replication" (similarity 0.82)
2. "Top 10 office snacks" (similarity 0.41)
Output:
{
  "approved": [
    {"id": 1, "justification": "Directly covers distributed consensus, a stated interest of this candidate."}
  ],
  "rejected": [
    {"id": 2, "reason": "Lifestyle content with no connection to the candidate's interests."}
  ]
}`

const summaryResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "identity": {
      "type": "string"
    },
    "preferences": {
      "type": "string"
    },
    "interests": {
      "type": "string"
    }
  },
  "required": ["identity", "preferences", "interests"],
  "additionalProperties": false
}`

const summaryPromptTemplate = `Distill the given candidate profile into three focused summaries and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "identity" summarizes who the candidate is: role, seniority, skills, and background.
- "preferences" summarizes what they want: work style, environment, compensation signals, location.
- "interests" summarizes topics they engage with: technologies, domains, communities, hobbies.
- Each summary is one short paragraph of plain prose. No bullet points, no headings.
- Use only information present in the profile. Do not hallucinate.
- If the profile says nothing about a field, return an empty string for it.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Staff engineer at a fintech startup. 10 years in Go and Postgres. Looking for remote
roles with async culture. Writes about database internals on weekends."
Output:
{
  "identity": "Staff-level software engineer with ten years of experience in Go and Postgres, currently at a fintech startup.",
  "preferences": "Prefers remote positions with an asynchronous working culture.",
  "interests": "Database internals, about which they write regularly."
}`

// buildEvaluationPrompt creates the evaluator system prompt with the approval
// budget embedded.
func buildEvaluationPrompt(maxApprovals int) string {
	return fmt.Sprintf(evaluationPromptTemplate, evaluationResponseSchema, maxApprovals)
}

// buildEvaluationInput renders the candidate context and numbered match list
// as the user message for the evaluator.
func buildEvaluationInput(req *ai.EvaluationRequest) string {
	var sb strings.Builder
	sb.WriteString("Candidate context:\n")
	sb.WriteString(req.CandidateContext)
	sb.WriteString("\n\nCandidates:\n")
	for _, c := range req.Candidates {
		fmt.Fprintf(&sb, "%d. %q (similarity %.2f)\n", c.Ref, c.Title, c.Similarity)
		if c.Excerpt != "" {
			fmt.Fprintf(&sb, "   Excerpt: %s\n", c.Excerpt)
		}
	}
	return sb.String()
}

// buildSummaryPrompt creates the profile summarizer system prompt.
func buildSummaryPrompt() string {
	return fmt.Sprintf(summaryPromptTemplate, summaryResponseSchema)
}
