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

package talentmatch

import (
	"log/slog"

	"github.com/poiesic/talentmatch/ai"
	"github.com/poiesic/talentmatch/ai/openai"
	"github.com/poiesic/talentmatch/chunker"
	"github.com/poiesic/talentmatch/ingest"
	"github.com/poiesic/talentmatch/match"
	"github.com/poiesic/talentmatch/profile"
	"github.com/poiesic/talentmatch/storage"
	"github.com/poiesic/talentmatch/storage/badger"
)

// Engine bundles the stores and AI services behind a single handle.
// It owns the storage backend and the provider; everything else is
// created on demand through the factory methods.
type Engine struct {
	backend  *badger.Backend
	items    storage.ItemRepository
	profiles storage.ProfileRepository
	provider ai.AIProvider
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built provider instead of constructing the
// OpenAI-compatible one. The engine takes ownership and closes it.
func WithAIProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create item repository
	items, err := badger.NewItemRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create profile repository
	profiles, err := badger.NewProfileRepository(backend)
	if err != nil {
		items.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			profiles.Close()
			items.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:  backend,
		items:    items,
		profiles: profiles,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (e *Engine) Close() error {
	// Close AI provider first
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := e.profiles.Close(); err != nil {
		e.logger.Error("error closing profile repository", "err", err)
		return err
	}
	if err := e.items.Close(); err != nil {
		e.logger.Error("error closing item repository", "err", err)
		return err
	}

	// Close backend
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Engine) ItemRepository() storage.ItemRepository {
	return e.items
}

func (e *Engine) ProfileRepository() storage.ProfileRepository {
	return e.profiles
}

func (e *Engine) AIProvider() ai.AIProvider {
	return e.provider
}

// NewIngestionPipeline creates a pipeline over the engine's stores with a
// default chunker.
func (e *Engine) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	splitter, err := chunker.New()
	if err != nil {
		return nil, err
	}
	return ingest.NewPipeline(e.items, e.provider, splitter, opts...)
}

func (e *Engine) NewProfileManager() (*profile.Manager, error) {
	return profile.NewManager(e.profiles, e.provider)
}

func (e *Engine) NewMatcher(opts ...match.Option) (*match.Matcher, error) {
	return match.NewMatcher(e.items, e.profiles, e.provider, opts...)
}
