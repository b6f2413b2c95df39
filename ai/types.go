package ai

// FieldSummaries holds the three per-field summaries produced from a
// candidate profile. Empty strings mean the summarizer had nothing to say
// for that field.
type FieldSummaries struct {
	Identity    string
	Preferences string
	Interests   string
}

// EvaluationCandidate is one similarity match presented to the evaluator.
// Ref is a positional identifier (1..N) so the model never has to echo
// 64-bit hashes back.
type EvaluationCandidate struct {
	Ref        int
	Title      string
	Similarity float32
	Excerpt    string
}

// EvaluationRequest carries everything the evaluator needs for one run.
type EvaluationRequest struct {
	// CandidateContext summarizes who the matches are for.
	CandidateContext string
	// Candidates are the top similarity matches, best first.
	Candidates []EvaluationCandidate
	// MaxApprovals bounds how many candidates may be approved.
	MaxApprovals int
}

// Approval is an evaluator endorsement of a candidate.
type Approval struct {
	Ref           int
	Justification string
}

// Rejection records why a candidate was not approved.
type Rejection struct {
	Ref    int
	Reason string
}

// EvaluationResult is a schema-validated evaluator response.
// Refs are guaranteed to be valid, unique, and within the request bounds.
type EvaluationResult struct {
	Approved []Approval
	Rejected []Rejection
}
