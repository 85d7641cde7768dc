// Package file provides the TOML-backed settings store.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Settings is the full on-disk configuration.
type Settings struct {
	Storage   StorageSettings   `toml:"storage"`
	Embedding EmbeddingSettings `toml:"embedding"`
	Vector    VectorSettings    `toml:"vector"`
	Reranker  RerankerSettings  `toml:"reranker"`
	Retrieval RetrievalSettings `toml:"retrieval"`
	Chunking  ChunkingSettings  `toml:"chunking"`
	Assembly  AssemblySettings  `toml:"assembly"`
}

// StorageSettings configures the SQLite chunk store.
type StorageSettings struct {
	// DataDir is where the database lives. Empty means ~/.recall/data.
	DataDir string `toml:"data_dir"`
}

// EmbeddingSettings configures the embedding backend.
type EmbeddingSettings struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"api_key"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

// VectorSettings configures the vector index backend.
type VectorSettings struct {
	// Backend is "memory" or "qdrant".
	Backend string `toml:"backend"`

	// Address is the Qdrant gRPC endpoint, host:port.
	Address    string `toml:"address"`
	APIKey     string `toml:"api_key"`
	Collection string `toml:"collection"`
}

// RerankerSettings configures the optional cross-encoder.
type RerankerSettings struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// RetrievalSettings configures default retrieval behaviour.
type RetrievalSettings struct {
	TopK          int     `toml:"top_k"`
	VectorWeight  float64 `toml:"vector_weight"`
	KeywordWeight float64 `toml:"keyword_weight"`
}

// ChunkingSettings configures default chunking behaviour.
type ChunkingSettings struct {
	Strategy   string `toml:"strategy"`
	TargetSize int    `toml:"target_size"`
	Overlap    int    `toml:"overlap"`
}

// AssemblySettings configures context assembly defaults.
type AssemblySettings struct {
	MaxContextTokens int `toml:"max_context_tokens"`
}

// DefaultSettings returns the configuration used when no file exists.
func DefaultSettings() Settings {
	weights := domain.DefaultFusionWeights()
	return Settings{
		Embedding: EmbeddingSettings{
			Provider: "ollama",
		},
		Vector: VectorSettings{
			Backend: "memory",
		},
		Retrieval: RetrievalSettings{
			TopK:          10,
			VectorWeight:  weights.Vector,
			KeywordWeight: weights.Keyword,
		},
		Chunking: ChunkingSettings{
			Strategy:   string(domain.StrategySentence),
			TargetSize: domain.DefaultChunkTargetSize,
			Overlap:    domain.DefaultChunkOverlap,
		},
		Assembly: AssemblySettings{
			MaxContextTokens: 4000,
		},
	}
}

// Validate checks cross-field consistency.
func (s Settings) Validate() error {
	switch s.Embedding.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidConfiguration, s.Embedding.Provider)
	}

	switch s.Vector.Backend {
	case "memory", "qdrant":
	default:
		return fmt.Errorf("%w: unknown vector backend %q", domain.ErrInvalidConfiguration, s.Vector.Backend)
	}

	if s.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", domain.ErrInvalidConfiguration)
	}
	weights := domain.FusionWeights{Vector: s.Retrieval.VectorWeight, Keyword: s.Retrieval.KeywordWeight}
	if err := weights.Validate(); err != nil {
		return err
	}

	if !domain.ChunkStrategy(s.Chunking.Strategy).IsValid() {
		return fmt.Errorf("%w: unknown chunking strategy %q", domain.ErrInvalidConfiguration, s.Chunking.Strategy)
	}
	opts := domain.ChunkingOptions{
		Strategy:   domain.ChunkStrategy(s.Chunking.Strategy),
		TargetSize: s.Chunking.TargetSize,
		Overlap:    s.Chunking.Overlap,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if s.Assembly.MaxContextTokens <= 0 {
		return fmt.Errorf("%w: max_context_tokens must be positive", domain.ErrInvalidConfiguration)
	}
	return nil
}

// FusionWeights returns the configured fusion weights.
func (s Settings) FusionWeights() domain.FusionWeights {
	return domain.FusionWeights{
		Vector:  s.Retrieval.VectorWeight,
		Keyword: s.Retrieval.KeywordWeight,
	}
}

// ChunkingOptions returns the configured chunking defaults.
func (s Settings) ChunkingOptions() domain.ChunkingOptions {
	return domain.ChunkingOptions{
		Strategy:   domain.ChunkStrategy(s.Chunking.Strategy),
		TargetSize: s.Chunking.TargetSize,
		Overlap:    s.Chunking.Overlap,
	}
}

// Store reads and writes the settings file.
type Store struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewStore creates a settings store at configDir/config.toml. If
// configDir is empty, defaults to ~/.recall. A missing file yields
// defaults; a malformed or invalid file is an error.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".recall")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
		settings: DefaultSettings(),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.filePath
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Load reads the settings file. Fields absent from the file keep their
// default values.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.settings = DefaultSettings()
			return nil
		}
		return err
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate %s: %w", s.filePath, err)
	}

	s.settings = settings
	return nil
}

// Save writes the current settings to disk.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := toml.Marshal(s.settings)
	if err != nil {
		return err
	}

	// Restricted permissions: the file may hold API keys.
	return os.WriteFile(s.filePath, data, 0600)
}

// Update validates and replaces the settings, persisting immediately.
func (s *Store) Update(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	return s.Save()
}

// Watch reloads the settings when the file changes on disk and invokes
// onChange with the new value. It blocks until ctx is cancelled.
// Invalid edits are logged and skipped; the previous settings stay
// active.
func (s *Store) Watch(ctx context.Context, onChange func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// a watch held on the file itself.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if err := s.Load(); err != nil {
				logger.Warn("Config reload failed, keeping previous settings: %v", err)
				continue
			}
			logger.Info("Config reloaded from %s", s.filePath)
			if onChange != nil {
				onChange(s.Settings())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if strings.Contains(err.Error(), "overflow") {
				continue
			}
			logger.Warn("Config watcher error: %v", err)
		}
	}
}
