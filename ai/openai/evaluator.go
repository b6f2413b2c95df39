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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/talentmatch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// MatchEvaluator implements ai.MatchEvaluator using OpenAI-compatible chat APIs.
type MatchEvaluator struct {
	client llms.Model
	logger *slog.Logger
}

// approval and rejection are internal types used for JSON unmarshaling.
// They match the structure expected from the LLM.
type approval struct {
	Id            int    `json:"id"`
	Justification string `json:"justification"`
}

type rejection struct {
	Id     int    `json:"id"`
	Reason string `json:"reason"`
}

// verdict is the wrapper structure for the LLM's JSON response.
type verdict struct {
	Approved []approval  `json:"approved"`
	Rejected []rejection `json:"rejected"`
}

// newMatchEvaluator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newMatchEvaluator(config *ai.Config) (*MatchEvaluator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.EvaluatorModel),
	)
	if err != nil {
		return nil, err
	}

	return &MatchEvaluator{
		client: client,
		logger: slog.Default().With("component", "openai-evaluator"),
	}, nil
}

// NewMatchEvaluator creates a new match evaluator using the provided configuration.
//
// Returns ai.MatchEvaluator interface to enforce abstraction.
func NewMatchEvaluator(config *ai.Config) (ai.MatchEvaluator, error) {
	return newMatchEvaluator(config)
}

// EvaluateMatches asks the LLM to approve or reject each candidate in the
// request. The response is schema-validated; malformed or out-of-bounds
// responses surface as errors so the caller can fall back to similarity order.
func (e *MatchEvaluator) EvaluateMatches(ctx context.Context, req *ai.EvaluationRequest) (*ai.EvaluationResult, error) {
	if len(req.Candidates) == 0 {
		return &ai.EvaluationResult{}, nil
	}

	systemPrompt := buildEvaluationPrompt(req.MaxApprovals)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildEvaluationInput(req)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result *ai.EvaluationResult
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return nil, fmt.Errorf("%w: empty response", ai.ErrInvalidEvaluation)
		}

		result, err = parseEvaluation(response.Choices[0].Content, len(req.Candidates), req.MaxApprovals)
		if err != nil {
			lastErr = err
			e.logger.Warn("error parsing evaluator response",
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse evaluator response after retries", "err", lastErr)
		return nil, lastErr
	}

	e.logger.Debug("evaluated matches",
		"candidates", len(req.Candidates),
		"approved", len(result.Approved),
		"rejected", len(result.Rejected))

	return result, nil
}

// parseEvaluation decodes and validates one evaluator response. numCandidates
// bounds the valid ref range (1..numCandidates) and maxApprovals bounds the
// approved list. Refs outside the range, duplicated refs, and oversized
// approval lists all fail with ai.ErrInvalidEvaluation.
func parseEvaluation(text string, numCandidates, maxApprovals int) (*ai.EvaluationResult, error) {
	// Strip markdown code fences if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Try to repair common JSON issues
	text = repairJSON(text)

	var v verdict
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}

	if len(v.Approved) > maxApprovals {
		return nil, fmt.Errorf("%w: %d approvals exceeds limit of %d",
			ai.ErrInvalidEvaluation, len(v.Approved), maxApprovals)
	}

	seen := make(map[int]bool, numCandidates)
	checkRef := func(ref int) error {
		if ref < 1 || ref > numCandidates {
			return fmt.Errorf("%w: ref %d out of range 1..%d", ai.ErrInvalidEvaluation, ref, numCandidates)
		}
		if seen[ref] {
			return fmt.Errorf("%w: duplicate ref %d", ai.ErrInvalidEvaluation, ref)
		}
		seen[ref] = true
		return nil
	}

	result := &ai.EvaluationResult{
		Approved: make([]ai.Approval, 0, len(v.Approved)),
		Rejected: make([]ai.Rejection, 0, len(v.Rejected)),
	}
	for _, a := range v.Approved {
		if err := checkRef(a.Id); err != nil {
			return nil, err
		}
		if strings.TrimSpace(a.Justification) == "" {
			return nil, fmt.Errorf("%w: approval %d missing justification", ai.ErrInvalidEvaluation, a.Id)
		}
		result.Approved = append(result.Approved, ai.Approval{
			Ref:           a.Id,
			Justification: a.Justification,
		})
	}
	for _, r := range v.Rejected {
		if err := checkRef(r.Id); err != nil {
			return nil, err
		}
		result.Rejected = append(result.Rejected, ai.Rejection{
			Ref:    r.Id,
			Reason: r.Reason,
		})
	}

	if len(seen) != numCandidates {
		return nil, fmt.Errorf("%w: %d of %d candidates accounted for",
			ai.ErrInvalidEvaluation, len(seen), numCandidates)
	}

	return result, nil
}
