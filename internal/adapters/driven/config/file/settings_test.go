package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestNewStoreDefaultsWhenMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, "ollama", settings.Embedding.Provider)
	assert.Equal(t, "memory", settings.Vector.Backend)
	assert.Equal(t, 10, settings.Retrieval.TopK)
	assert.InDelta(t, 0.7, settings.Retrieval.VectorWeight, 1e-9)
	assert.InDelta(t, 0.3, settings.Retrieval.KeywordWeight, 1e-9)
	assert.Equal(t, string(domain.StrategySentence), settings.Chunking.Strategy)
	assert.NoError(t, settings.Validate())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[retrieval]
top_k = 3

[vector]
backend = "qdrant"
address = "localhost:6334"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, 3, settings.Retrieval.TopK)
	assert.Equal(t, "qdrant", settings.Vector.Backend)
	// Untouched sections keep defaults.
	assert.Equal(t, "ollama", settings.Embedding.Provider)
	assert.InDelta(t, 0.7, settings.Retrieval.VectorWeight, 1e-9)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	content := `
[retrieval]
vector_weight = 0.9
keyword_weight = 0.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	_, err := NewStore(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[[["), 0600))

	_, err := NewStore(dir)
	assert.Error(t, err)
}

func TestUpdatePersists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	settings.Retrieval.TopK = 7
	require.NoError(t, store.Update(settings))

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, reopened.Settings().Retrieval.TopK)
}

func TestUpdateRejectsInvalid(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	settings := store.Settings()
	settings.Retrieval.TopK = -1
	assert.ErrorIs(t, store.Update(settings), domain.ErrInvalidConfiguration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(_ *Settings) {}},
		{name: "unknown provider", mutate: func(s *Settings) { s.Embedding.Provider = "llamafile" }, wantErr: true},
		{name: "unknown backend", mutate: func(s *Settings) { s.Vector.Backend = "faiss" }, wantErr: true},
		{name: "zero topk", mutate: func(s *Settings) { s.Retrieval.TopK = 0 }, wantErr: true},
		{name: "weights off", mutate: func(s *Settings) { s.Retrieval.KeywordWeight = 0.4 }, wantErr: true},
		{name: "bad strategy", mutate: func(s *Settings) { s.Chunking.Strategy = "token" }, wantErr: true},
		{name: "overlap too big", mutate: func(s *Settings) { s.Chunking.Overlap = s.Chunking.TargetSize }, wantErr: true},
		{name: "zero budget", mutate: func(s *Settings) { s.Assembly.MaxContextTokens = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(&settings)
			err := settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan Settings, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Watch(ctx, func(s Settings) {
			select {
			case changed <- s:
			default:
			}
		})
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	content := `
[retrieval]
top_k = 42
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	select {
	case settings := <-changed:
		assert.Equal(t, 42, settings.Retrieval.TopK)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the config change")
	}

	cancel()
	<-done
}
