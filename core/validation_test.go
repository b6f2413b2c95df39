package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateSourceItem(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		item    *SourceItem
		wantErr error
	}{
		{
			name: "valid article",
			item: &SourceItem{
				Kind:        ItemKindArticle,
				Title:       "Scaling our search infrastructure",
				URL:         "https://example.com/blog/scaling-search",
				Content:     "We rebuilt the search stack...",
				PublishedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid job posting",
			item: &SourceItem{
				Kind:    ItemKindJobPosting,
				Title:   "Senior Backend Engineer",
				URL:     "https://example.com/jobs/42",
				Content: "We are hiring...",
			},
			wantErr: nil,
		},
		{
			name: "valid item with zero published time",
			item: &SourceItem{
				Kind:    ItemKindArticle,
				Title:   "Untimed",
				URL:     "https://example.com/blog/untimed",
				Content: "Body",
			},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidSourceItem,
		},
		{
			name: "empty title",
			item: &SourceItem{
				Kind:    ItemKindArticle,
				URL:     "https://example.com/blog/x",
				Content: "Body",
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "empty url",
			item: &SourceItem{
				Kind:    ItemKindArticle,
				Title:   "Title",
				Content: "Body",
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "empty content",
			item: &SourceItem{
				Kind:  ItemKindArticle,
				Title: "Title",
				URL:   "https://example.com/blog/x",
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "invalid kind",
			item: &SourceItem{
				Kind:    ItemKind(999),
				Title:   "Title",
				URL:     "https://example.com/blog/x",
				Content: "Body",
			},
			wantErr: ErrInvalidItemKind,
		},
		{
			name: "future published time",
			item: &SourceItem{
				Kind:        ItemKindArticle,
				Title:       "Title",
				URL:         "https://example.com/blog/x",
				Content:     "Body",
				PublishedAt: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSourceItem() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSourceItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *CandidateProfile
		wantErr error
	}{
		{
			name: "valid profile",
			profile: &CandidateProfile{
				ExternalId: "cand-123",
				FullName:   "Alex Doe",
			},
			wantErr: nil,
		},
		{
			name: "valid profile without display metadata",
			profile: &CandidateProfile{
				ExternalId: "cand-456",
			},
			wantErr: nil,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidProfile,
		},
		{
			name:    "empty external id",
			profile: &CandidateProfile{FullName: "Alex Doe"},
			wantErr: ErrEmptyExternalID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.profile)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProfile() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldName(t *testing.T) {
	for _, name := range FieldNames {
		if err := ValidateFieldName(name); err != nil {
			t.Errorf("ValidateFieldName(%q) unexpected error: %v", name, err)
		}
	}

	if err := ValidateFieldName("salary"); !errors.Is(err, ErrInvalidFieldName) {
		t.Errorf("ValidateFieldName() error = %v, want %v", err, ErrInvalidFieldName)
	}
}

func TestValidateItemKind(t *testing.T) {
	if err := ValidateItemKind(ItemKindArticle); err != nil {
		t.Errorf("ValidateItemKind(article) unexpected error: %v", err)
	}
	if err := ValidateItemKind(ItemKindJobPosting); err != nil {
		t.Errorf("ValidateItemKind(job posting) unexpected error: %v", err)
	}
	if err := ValidateItemKind(ItemKind(0)); !errors.Is(err, ErrInvalidItemKind) {
		t.Errorf("ValidateItemKind(0) error = %v, want %v", err, ErrInvalidItemKind)
	}
}
