package ai

import "errors"

var (
	// ErrInvalidEvaluation indicates an evaluator response that violated the
	// expected schema (unknown refs, duplicate refs, or too many approvals).
	ErrInvalidEvaluation = errors.New("invalid evaluation response")
)
