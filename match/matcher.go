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

package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/talentmatch/ai"
	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/storage"
)

// excerptMaxLen bounds the chunk text shown to the evaluator per candidate.
const excerptMaxLen = 400

// Matcher ranks stored content against a candidate's embedding fields.
// Each field is searched independently, the results are fused into a single
// ranking, and the top candidates are re-ranked qualitatively by an LLM with
// a deterministic similarity fallback.
type Matcher struct {
	items     storage.ItemRepository
	profiles  storage.ProfileRepository
	evaluator ai.MatchEvaluator
	config    *Config
	logger    *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithConfig sets the matcher tunables.
// Default is DefaultConfig().
func WithConfig(config *Config) Option {
	return func(m *Matcher) error {
		if config == nil {
			config = DefaultConfig()
		}
		if err := config.Validate(); err != nil {
			return err
		}
		m.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a new matcher.
func NewMatcher(
	items storage.ItemRepository,
	profiles storage.ProfileRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Matcher, error) {
	if items == nil {
		return nil, ErrItemRepositoryRequired
	}
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	m := &Matcher{
		items:     items,
		profiles:  profiles,
		evaluator: provider.MatchEvaluator(),
		config:    DefaultConfig(),
		logger:    slog.Default().With("component", "matcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Match ranks content for the candidate identified by externalID.
// When kinds are given, only those corpora are searched.
func (m *Matcher) Match(ctx context.Context, externalID string, kinds ...core.ItemKind) (*core.MatchReport, error) {
	return m.MatchWithMonitor(ctx, externalID, nil, kinds...)
}

// MatchWithMonitor ranks content for a candidate with monitoring.
// The monitor receives callbacks at each stage of the pipeline.
//
// A missing profile is the only candidate-side error; a profile without any
// embedded fields produces an empty report. Evaluation never fails the run:
// any evaluator problem downgrades to the similarity fallback.
func (m *Matcher) MatchWithMonitor(ctx context.Context, externalID string, monitor MatchMonitor, kinds ...core.ItemKind) (*core.MatchReport, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(externalID)

	p, err := m.profiles.GetProfile(ctx, externalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, externalID)
		}
		return nil, err
	}

	fields, err := m.profiles.GetEmbeddingFields(ctx, p.Id)
	if err != nil {
		return nil, err
	}

	// 1. Search each embedded field independently
	perField := make(map[core.FieldName][]*core.MatchCandidate, len(fields))
	for _, field := range fields {
		if len(field.Vector) == 0 {
			m.logger.Debug("skipping field without vector", "external_id", externalID, "field", field.Name)
			continue
		}

		matches, err := m.items.FindSimilarChunks(ctx, field.Vector,
			m.config.SimilarityThreshold, m.config.PerFieldLimit, kinds...)
		if err != nil {
			return nil, fmt.Errorf("searching %s field: %w", field.Name, err)
		}

		candidates := make([]*core.MatchCandidate, len(matches))
		for i, match := range matches {
			candidates[i] = &core.MatchCandidate{
				ItemId:     match.ItemId,
				Kind:       match.Kind,
				ChunkSeq:   match.Seq,
				ChunkText:  match.Text,
				Similarity: match.Similarity,
				Field:      field.Name,
			}
		}

		deduped := Dedupe(candidates)
		perField[field.Name] = deduped
		monitor.AfterFieldSearch(field.Name, deduped)
	}

	report := &core.MatchReport{}
	if len(perField) == 0 {
		m.logger.Info("candidate has no embedded fields", "external_id", externalID)
		monitor.Finish(report)
		return report, nil
	}

	// 2. Fuse per-field rankings into one
	fused := Fuse(perField, m.config.FusionLimit)
	monitor.AfterFusion(fused)

	if len(fused) == 0 {
		monitor.Finish(report)
		return report, nil
	}

	// 3. Hydrate titles and URLs from the item store
	fused, err = m.hydrate(ctx, fused)
	if err != nil {
		return nil, err
	}
	monitor.AfterHydration(fused)

	report.Ranked = fused

	// 4. Qualitative re-ranking with similarity fallback
	m.evaluate(ctx, fields, fused, report, monitor)

	m.logger.Info("match complete",
		"external_id", externalID,
		"ranked", len(report.Ranked),
		"approved", len(report.Approved),
		"fallback", report.FallbackUsed)

	monitor.Finish(report)
	return report, nil
}

// hydrate fills Title and URL on each candidate from the stored items.
// Candidates whose items have vanished are dropped.
func (m *Matcher) hydrate(ctx context.Context, candidates []*core.MatchCandidate) ([]*core.MatchCandidate, error) {
	ids := make([]core.ID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ItemId
	}

	items, err := m.items.GetSourceItems(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("hydrating candidates: %w", err)
	}

	byID := make(map[core.ID]*core.SourceItem, len(items))
	for _, item := range items {
		byID[item.Id] = item
	}

	hydrated := make([]*core.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		item, ok := byID[c.ItemId]
		if !ok {
			m.logger.Warn("dropping candidate for missing item", "item_id", c.ItemId)
			continue
		}
		c.Title = item.Title
		c.URL = item.URL
		hydrated = append(hydrated, c)
	}
	return hydrated, nil
}

// evaluate runs the LLM evaluation over the top fused candidates and fills
// report.Approved. Any evaluator failure selects the similarity fallback.
func (m *Matcher) evaluate(ctx context.Context, fields []*core.EmbeddingField, fused []*core.MatchCandidate, report *core.MatchReport, monitor MatchMonitor) {
	topN := fused
	if len(topN) > m.config.EvaluationTopN {
		topN = topN[:m.config.EvaluationTopN]
	}

	request := &ai.EvaluationRequest{
		CandidateContext: candidateContext(fields),
		Candidates:       make([]ai.EvaluationCandidate, len(topN)),
		MaxApprovals:     m.config.MaxApprovals,
	}
	for i, c := range topN {
		request.Candidates[i] = ai.EvaluationCandidate{
			Ref:        i + 1,
			Title:      c.Title,
			Similarity: c.Similarity,
			Excerpt:    truncateExcerpt(c.ChunkText),
		}
	}

	evalCtx, cancel := context.WithTimeout(ctx, m.config.EvaluationTimeout)
	defer cancel()

	result, err := m.evaluator.EvaluateMatches(evalCtx, request)
	if err != nil {
		m.logger.Warn("evaluation unavailable, falling back to similarity ranking", "err", err)
		monitor.EvaluationFallback(err)
		report.Approved = m.fallbackApprove(topN)
		report.FallbackUsed = true
		return
	}

	approved := make(map[int]string, len(result.Approved))
	for _, a := range result.Approved {
		approved[a.Ref] = a.Justification
	}

	// Walk topN in order so approvals come out ranked by similarity.
	for i, c := range topN {
		justification, ok := approved[i+1]
		if !ok {
			continue
		}
		report.Approved = append(report.Approved, &core.ApprovedMatch{
			MatchCandidate: *c,
			Justification:  justification,
		})
	}
}

// fallbackApprove selects up to MaxApprovals candidates whose similarity is
// strictly above the fallback threshold. Fallback approvals carry no
// justification; callers can tell them apart via MatchReport.FallbackUsed.
func (m *Matcher) fallbackApprove(candidates []*core.MatchCandidate) []*core.ApprovedMatch {
	approved := make([]*core.ApprovedMatch, 0, m.config.MaxApprovals)
	for _, c := range candidates {
		if len(approved) == m.config.MaxApprovals {
			break
		}
		if c.Similarity > m.config.FallbackThreshold {
			approved = append(approved, &core.ApprovedMatch{MatchCandidate: *c})
		}
	}
	return approved
}

// candidateContext summarizes the candidate for the evaluator from whatever
// fields are embedded.
func candidateContext(fields []*core.EmbeddingField) string {
	var sb strings.Builder
	for _, field := range fields {
		if field.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(string(field.Name))
		sb.WriteString(": ")
		sb.WriteString(field.Text)
	}
	return sb.String()
}

// truncateExcerpt trims chunk text to a prompt-friendly length on a rune
// boundary.
func truncateExcerpt(text string) string {
	if utf8.RuneCountInString(text) <= excerptMaxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:excerptMaxLen]) + "..."
}
