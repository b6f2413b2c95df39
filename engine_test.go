package talentmatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/talentmatch/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Run("create new engine", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		engine, err := NewEngine(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		// Verify components are initialized
		assert.NotNil(t, engine.ItemRepository())
		assert.NotNil(t, engine.ProfileRepository())
		assert.NotNil(t, engine.AIProvider())
		assert.NotNil(t, engine.backend)
		assert.NotNil(t, engine.logger)
	})

	t.Run("injected provider is used", func(t *testing.T) {
		provider := mock.NewMockProvider()
		engine, err := NewEngine(t.TempDir(), WithAIProvider(provider))
		require.NoError(t, err)
		defer engine.Close()

		assert.Equal(t, provider, engine.AIProvider())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create an engine at a file path instead of a directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		engine, err := NewEngine(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestEngine_Close(t *testing.T) {
	engine, err := NewEngine(t.TempDir(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, engine)

	err = engine.Close()
	assert.NoError(t, err)
}

func TestEngine_FactoryMethods(t *testing.T) {
	engine, err := NewEngine(t.TempDir(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, engine)
	defer engine.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := engine.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create profile manager", func(t *testing.T) {
		manager, err := engine.NewProfileManager()
		require.NoError(t, err)
		require.NotNil(t, manager)
	})

	t.Run("can create matcher", func(t *testing.T) {
		matcher, err := engine.NewMatcher()
		require.NoError(t, err)
		require.NotNil(t, matcher)
	})
}
