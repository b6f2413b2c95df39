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
	"errors"
	"time"
)

// Config holds the matcher's tunables. Thresholds are configuration rather
// than constants so callers can trade recall against precision per corpus.
type Config struct {
	// SimilarityThreshold is the minimum similarity for the per-field chunk
	// search. Kept low to favor recall; later stages narrow the set.
	SimilarityThreshold float32

	// PerFieldLimit caps how many chunk matches each field search returns.
	PerFieldLimit int

	// FusionLimit caps the fused cross-field candidate list.
	FusionLimit int

	// EvaluationTopN is how many fused candidates are sent to the evaluator.
	EvaluationTopN int

	// MaxApprovals bounds evaluator approvals and fallback approvals alike.
	MaxApprovals int

	// FallbackThreshold is the minimum similarity (strictly above) for a
	// candidate to be auto-approved when evaluation is unavailable. Kept
	// high because fallback approvals carry no justification.
	FallbackThreshold float32

	// EvaluationTimeout bounds one evaluator call.
	EvaluationTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithSimilarityThreshold sets the per-field search threshold.
func WithSimilarityThreshold(threshold float32) ConfigOption {
	return func(c *Config) {
		c.SimilarityThreshold = threshold
	}
}

// WithPerFieldLimit sets the per-field search result cap.
func WithPerFieldLimit(limit int) ConfigOption {
	return func(c *Config) {
		c.PerFieldLimit = limit
	}
}

// WithFusionLimit sets the fused candidate list cap.
func WithFusionLimit(limit int) ConfigOption {
	return func(c *Config) {
		c.FusionLimit = limit
	}
}

// WithEvaluationTopN sets how many candidates the evaluator sees.
func WithEvaluationTopN(n int) ConfigOption {
	return func(c *Config) {
		c.EvaluationTopN = n
	}
}

// WithMaxApprovals sets the approval budget.
func WithMaxApprovals(n int) ConfigOption {
	return func(c *Config) {
		c.MaxApprovals = n
	}
}

// WithFallbackThreshold sets the similarity floor for fallback approvals.
func WithFallbackThreshold(threshold float32) ConfigOption {
	return func(c *Config) {
		c.FallbackThreshold = threshold
	}
}

// WithEvaluationTimeout sets the evaluator call timeout.
func WithEvaluationTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.EvaluationTimeout = d
	}
}

// DefaultConfig returns a Config with the standard tunables.
func DefaultConfig() *Config {
	return &Config{
		SimilarityThreshold: 0.30,
		PerFieldLimit:       30,
		FusionLimit:         10,
		EvaluationTopN:      10,
		MaxApprovals:        3,
		FallbackThreshold:   0.80,
		EvaluationTimeout:   30 * time.Second,
	}
}

// NewConfig creates a Config with default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return errors.New("match config: SimilarityThreshold must be in [0, 1]")
	}
	if c.PerFieldLimit <= 0 {
		return errors.New("match config: PerFieldLimit must be positive")
	}
	if c.FusionLimit <= 0 {
		return errors.New("match config: FusionLimit must be positive")
	}
	if c.EvaluationTopN <= 0 {
		return errors.New("match config: EvaluationTopN must be positive")
	}
	if c.MaxApprovals <= 0 {
		return errors.New("match config: MaxApprovals must be positive")
	}
	if c.FallbackThreshold < 0 || c.FallbackThreshold > 1 {
		return errors.New("match config: FallbackThreshold must be in [0, 1]")
	}
	if c.EvaluationTimeout <= 0 {
		return errors.New("match config: EvaluationTimeout must be positive")
	}
	return nil
}
