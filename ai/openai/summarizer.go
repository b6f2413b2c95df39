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
	"log/slog"
	"strings"

	"github.com/poiesic/talentmatch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ProfileSummarizer implements ai.ProfileSummarizer using OpenAI-compatible chat APIs.
type ProfileSummarizer struct {
	client llms.Model
	logger *slog.Logger
}

// summaries is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type summaries struct {
	Identity    string `json:"identity"`
	Preferences string `json:"preferences"`
	Interests   string `json:"interests"`
}

// newProfileSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newProfileSummarizer(config *ai.Config) (*ProfileSummarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.SummarizerModel),
	)
	if err != nil {
		return nil, err
	}

	return &ProfileSummarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewProfileSummarizer creates a new profile summarizer using the provided configuration.
//
// Returns ai.ProfileSummarizer interface to enforce abstraction.
func NewProfileSummarizer(config *ai.Config) (ai.ProfileSummarizer, error) {
	return newProfileSummarizer(config)
}

// SummarizeProfile distills raw profile text into per-field summaries.
// Summaries are prose, so temperature stays above zero; the JSON envelope is
// still enforced and retried on parse failure.
func (s *ProfileSummarizer) SummarizeProfile(ctx context.Context, profileText string) (*ai.FieldSummaries, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSummaryPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(profileText),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result summaries
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.7), llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			s.logger.Debug("no choices returned from model")
			return &ai.FieldSummaries{}, nil
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			s.logger.Warn("error parsing summarizer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		s.logger.Error("failed to parse summarizer response after retries", "err", lastErr)
		return nil, lastErr
	}

	s.logger.Debug("summarized profile",
		"input_length", len(profileText),
		"identity_length", len(result.Identity),
		"preferences_length", len(result.Preferences),
		"interests_length", len(result.Interests))

	return &ai.FieldSummaries{
		Identity:    strings.TrimSpace(result.Identity),
		Preferences: strings.TrimSpace(result.Preferences),
		Interests:   strings.TrimSpace(result.Interests),
	}, nil
}
