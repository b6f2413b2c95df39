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

import (
	"fmt"
	"time"
)

// ValidateSourceItem validates a SourceItem according to domain rules.
//
// Validation rules:
//   - Title, URL and Content must not be empty
//   - Kind must be a known ItemKind
//   - PublishedAt must not be in the future
//
// NOT validated:
//   - ID (0 means "derive from URL" and is filled in by the repository)
func ValidateSourceItem(item *SourceItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidSourceItem)
	}

	if item.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourceItem, ErrEmptyTitle)
	}

	if item.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourceItem, ErrEmptyURL)
	}

	if item.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSourceItem, ErrEmptyContent)
	}

	if err := ValidateItemKind(item.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSourceItem, err)
	}

	if !item.PublishedAt.IsZero() && !IsValidTimestamp(item.PublishedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidSourceItem, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateProfile validates a CandidateProfile according to domain rules.
//
// Validation rules:
//   - ExternalId must not be empty
//
// NOT validated (populated later):
//   - ID (derived from ExternalId by the repository)
//   - FullName, Headline, Location (optional display metadata)
func ValidateProfile(profile *CandidateProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.ExternalId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyExternalID)
	}

	return nil
}

// ValidateItemKind validates that an ItemKind has a valid value.
func ValidateItemKind(kind ItemKind) error {
	if kind != ItemKindArticle && kind != ItemKindJobPosting {
		return fmt.Errorf("%w: value %d", ErrInvalidItemKind, kind)
	}
	return nil
}

// ValidateFieldName validates that a FieldName is one of the known fields.
func ValidateFieldName(name FieldName) error {
	switch name {
	case FieldIdentity, FieldPreferences, FieldInterests:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
