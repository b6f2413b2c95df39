package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing so that identical content
// always maps to the same entity.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Source items are keyed by URL and candidate profiles by external ID, so
// re-ingesting the same item never creates a duplicate.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ItemKind identifies the corpus a source item belongs to.
type ItemKind int

const (
	// ItemKindArticle represents editorial content (blog posts, engineering articles).
	ItemKindArticle ItemKind = iota + 1
	// ItemKindJobPosting represents an open position description.
	ItemKindJobPosting
)

// FieldName identifies one of the embedding fields kept per candidate profile.
type FieldName string

const (
	// FieldIdentity summarizes who the candidate is professionally.
	// It is derived from the profile and cannot be merged into.
	FieldIdentity FieldName = "identity"
	// FieldPreferences captures what the candidate wants from their next role.
	FieldPreferences FieldName = "preferences"
	// FieldInterests captures topics and technologies the candidate cares about.
	FieldInterests FieldName = "interests"
)

// FieldNames lists all embedding fields in search order.
var FieldNames = []FieldName{FieldIdentity, FieldPreferences, FieldInterests}

// SourceItem represents a piece of matchable content (article or job posting).
// Its chunks carry the embeddings; the item itself holds display metadata.
type SourceItem struct {
	Id          ID
	Kind        ItemKind
	Title       string
	URL         string
	Author      string
	PublishedAt time.Time
	Content     string
	InsertedAt  time.Time // When the item was inserted into the database
	UpdatedAt   time.Time // When the item was last updated
}

// Chunk is a token-bounded window of a source item's content.
// Chunks belonging to one item are ordered by Seq and replaced as a unit.
type Chunk struct {
	ItemId     ID
	Kind       ItemKind
	Seq        int
	Text       string
	TokenCount int
	Vector     []float32 // Unit-length embedding (populated by ingestion)
}

// CandidateProfile represents a candidate whose embedding fields are matched
// against the content corpus.
type CandidateProfile struct {
	Id         ID
	ExternalId string // Caller-supplied identifier (ATS id, email hash, ...)
	FullName   string
	Headline   string
	Location   string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// EmbeddingField is one independently searchable representation of a profile.
// Text is immutable once stored; context updates produce a new merged text
// and a fresh embedding which replace the field atomically.
type EmbeddingField struct {
	ProfileId ID
	Name      FieldName
	Text      string
	Vector    []float32
	UpdatedAt time.Time
}

// ChunkMatch is a raw similarity hit against a single chunk.
type ChunkMatch struct {
	ItemId     ID
	Kind       ItemKind
	Seq        int
	Text       string
	Similarity float32
}

// MatchCandidate is a per-item match surviving deduplication, carrying the
// best chunk for the item and the field whose search produced it.
type MatchCandidate struct {
	ItemId     ID
	Kind       ItemKind
	Title      string
	URL        string
	ChunkSeq   int
	ChunkText  string
	Similarity float32
	Field      FieldName
}

// ApprovedMatch is a match candidate endorsed by qualitative evaluation.
// Justification is empty when the approval came from the similarity fallback.
type ApprovedMatch struct {
	MatchCandidate
	Justification string
}

// MatchReport is the result of a full matching run for one candidate.
type MatchReport struct {
	Ranked       []*MatchCandidate // Fused ranking, descending similarity
	Approved     []*ApprovedMatch  // Qualitative (or fallback) approvals
	FallbackUsed bool              // True when evaluation failed and the similarity fallback produced Approved
}
