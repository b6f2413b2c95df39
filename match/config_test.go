package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, float32(0.30), cfg.SimilarityThreshold)
	assert.Equal(t, 30, cfg.PerFieldLimit)
	assert.Equal(t, 10, cfg.FusionLimit)
	assert.Equal(t, 10, cfg.EvaluationTopN)
	assert.Equal(t, 3, cfg.MaxApprovals)
	assert.Equal(t, float32(0.80), cfg.FallbackThreshold)
	assert.Equal(t, 30*time.Second, cfg.EvaluationTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithSimilarityThreshold(0.5),
		WithPerFieldLimit(5),
		WithFusionLimit(4),
		WithEvaluationTopN(3),
		WithMaxApprovals(2),
		WithFallbackThreshold(0.9),
		WithEvaluationTimeout(time.Second),
	)

	assert.Equal(t, float32(0.5), cfg.SimilarityThreshold)
	assert.Equal(t, 5, cfg.PerFieldLimit)
	assert.Equal(t, 4, cfg.FusionLimit)
	assert.Equal(t, 3, cfg.EvaluationTopN)
	assert.Equal(t, 2, cfg.MaxApprovals)
	assert.Equal(t, float32(0.9), cfg.FallbackThreshold)
	assert.Equal(t, time.Second, cfg.EvaluationTimeout)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.SimilarityThreshold = -0.1 }},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.1 }},
		{"zero per-field limit", func(c *Config) { c.PerFieldLimit = 0 }},
		{"zero fusion limit", func(c *Config) { c.FusionLimit = 0 }},
		{"zero eval top-N", func(c *Config) { c.EvaluationTopN = 0 }},
		{"zero max approvals", func(c *Config) { c.MaxApprovals = 0 }},
		{"fallback above one", func(c *Config) { c.FallbackThreshold = 1.5 }},
		{"zero timeout", func(c *Config) { c.EvaluationTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
