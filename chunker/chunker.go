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


package chunker

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"github.com/poiesic/talentmatch/core"
)

const (
	// DefaultMaxTokens is the default maximum chunk size in tokens.
	DefaultMaxTokens = 800

	// DefaultOverlapTokens is the default overlap between consecutive chunks.
	DefaultOverlapTokens = 100

	// encodingName is the tokenizer used for all chunking. It matches the
	// tokenization of the embedding models we target.
	encodingName = "cl100k_base"
)

// Chunker splits source content into overlapping token windows sized for
// embedding. Token boundaries come from the tiktoken cl100k_base encoding, so
// chunk sizes line up with what the embedding model actually sees.
type Chunker struct {
	maxTokens     int
	overlapTokens int
	encoding      *tiktoken.Tiktoken
	logger        *slog.Logger
}

// Option is a functional option for configuring a Chunker.
type Option func(*Chunker)

// WithMaxTokens sets the maximum chunk size in tokens.
func WithMaxTokens(n int) Option {
	return func(c *Chunker) {
		c.maxTokens = n
	}
}

// WithOverlapTokens sets the overlap between consecutive chunks in tokens.
func WithOverlapTokens(n int) Option {
	return func(c *Chunker) {
		c.overlapTokens = n
	}
}

// New creates a Chunker with the default window sizes and applies the
// provided options.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		maxTokens:     DefaultMaxTokens,
		overlapTokens: DefaultOverlapTokens,
		logger:        slog.Default().With("component", "chunker"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.maxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive", ErrInvalidWindow)
	}
	if c.overlapTokens < 0 || c.overlapTokens >= c.maxTokens {
		return nil, fmt.Errorf("%w: overlap must be in [0, max)", ErrInvalidWindow)
	}

	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", encodingName, err)
	}
	c.encoding = encoding

	return c, nil
}

// Split chunks text into overlapping token windows. Each chunk's Text carries
// the item title as a prefix so every embedded window keeps the context of
// where it came from. Seq and TokenCount are populated; the caller assigns
// ItemId, Kind, and the embedding vector.
//
// Text no longer than the maximum window yields exactly one chunk.
func (c *Chunker) Split(title, text string) ([]*core.Chunk, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	tokens := c.encoding.EncodeOrdinary(text)
	step := c.maxTokens - c.overlapTokens

	chunks := make([]*core.Chunk, 0, 1+len(tokens)/step)
	for start := 0; start < len(tokens); start += step {
		end := min(start+c.maxTokens, len(tokens))
		window := c.encoding.Decode(tokens[start:end])

		chunkText := window
		if title != "" {
			chunkText = title + "\n\n" + window
		}

		chunks = append(chunks, &core.Chunk{
			Seq:        len(chunks),
			Text:       chunkText,
			TokenCount: end - start,
		})

		// The loop only advances past a full window, so a trailing chunk
		// always holds more than overlapTokens tokens.
		if end == len(tokens) {
			break
		}
	}

	c.logger.Debug("split text into chunks",
		"tokens", len(tokens),
		"chunks", len(chunks))

	return chunks, nil
}
