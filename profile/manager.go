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


package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/talentmatch/ai"
	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/storage"
)

// Manager maintains candidate profiles and their embedding fields. It turns
// raw profile text into per-field summaries, embeds them, and applies
// context merges as dated, append-only text updates.
type Manager struct {
	profiles storage.ProfileRepository
	provider ai.AIProvider
	logger   *slog.Logger
}

// NewManager creates a profile manager.
func NewManager(profiles storage.ProfileRepository, provider ai.AIProvider) (*Manager, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	return &Manager{
		profiles: profiles,
		provider: provider,
		logger:   slog.Default().With("component", "profile-manager"),
	}, nil
}

// VectorizeProfile stores the profile and builds its embedding fields from
// the given free-form profile text. The summarizer splits the text into
// identity, preferences, and interests; each non-empty summary is embedded
// and stored as an independent field, replacing whatever was there before.
//
// If summarization fails the profile still becomes searchable: the raw text
// is embedded into the identity field alone and the degradation is logged.
func (m *Manager) VectorizeProfile(ctx context.Context, p *core.CandidateProfile, profileText string) error {
	if err := core.ValidateProfile(p); err != nil {
		return err
	}

	stored, err := m.profiles.UpsertProfiles(ctx, p)
	if err != nil {
		return fmt.Errorf("storing profile: %w", err)
	}
	profileID := stored[0].Id

	summaries, err := m.provider.ProfileSummarizer().SummarizeProfile(ctx, profileText)
	if err != nil {
		m.logger.Warn("summarizer unavailable, embedding raw profile text into identity",
			"external_id", p.ExternalId,
			"err", err)
		return m.putField(ctx, profileID, core.FieldIdentity, profileText)
	}

	fields := map[core.FieldName]string{
		core.FieldIdentity:    summaries.Identity,
		core.FieldPreferences: summaries.Preferences,
		core.FieldInterests:   summaries.Interests,
	}

	for _, name := range core.FieldNames {
		text := strings.TrimSpace(fields[name])
		if text == "" {
			m.logger.Debug("summarizer produced no content for field",
				"external_id", p.ExternalId,
				"field", name)
			continue
		}
		if err := m.putField(ctx, profileID, name, text); err != nil {
			return err
		}
	}

	return nil
}

// MergeFieldContext appends new context to one of the profile's mergeable
// fields and re-embeds the combined text. The stored field is replaced in a
// single write, so the text and its vector always change together.
//
// Identity is derived from the profile and cannot be merged into.
func (m *Manager) MergeFieldContext(ctx context.Context, externalID string, field core.FieldName, addition string) error {
	if err := core.ValidateFieldName(field); err != nil {
		return err
	}
	if field == core.FieldIdentity {
		return fmt.Errorf("%w: %s", ErrFieldNotMergeable, field)
	}
	addition = strings.TrimSpace(addition)
	if addition == "" {
		return ErrEmptyAddition
	}

	p, err := m.profiles.GetProfile(ctx, externalID)
	if err != nil {
		return err
	}

	existing := ""
	current, err := m.profiles.GetEmbeddingField(ctx, p.Id, field)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if current != nil {
		existing = current.Text
	}

	merged := MergeFieldText(existing, addition, time.Now().UTC())

	m.logger.Debug("merging field context",
		"external_id", externalID,
		"field", field,
		"addition_length", len(addition))

	return m.putField(ctx, p.Id, field, merged)
}

// putField embeds text and atomically replaces the stored field.
func (m *Manager) putField(ctx context.Context, profileID core.ID, name core.FieldName, text string) error {
	vector, err := m.provider.Embedder().EmbedText(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding %s field: %w", name, err)
	}

	field := &core.EmbeddingField{
		ProfileId: profileID,
		Name:      name,
		Text:      text,
		Vector:    core.NormalizeVector(vector),
		UpdatedAt: time.Now().UTC(),
	}

	if err := m.profiles.PutEmbeddingField(ctx, field); err != nil {
		return fmt.Errorf("storing %s field: %w", name, err)
	}
	return nil
}
