package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View the current configuration. Settings live in a TOML file
(~/.recall/config.toml by default); edit it directly to change them.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings := settingsStore.Settings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider)
	if settings.Embedding.Model != "" {
		cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	}
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Embedding.APIKey))
	}
	cmd.Println()

	cmd.Println("[Vector Index]")
	cmd.Printf("  Backend: %s\n", settings.Vector.Backend)
	if settings.Vector.Backend == "qdrant" {
		cmd.Printf("  Address: %s\n", settings.Vector.Address)
		if settings.Vector.Collection != "" {
			cmd.Printf("  Collection: %s\n", settings.Vector.Collection)
		}
	}
	cmd.Println()

	cmd.Println("[Reranker]")
	if settings.Reranker.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  Base URL: %s\n", settings.Reranker.BaseURL)
		if settings.Reranker.Model != "" {
			cmd.Printf("  Model: %s\n", settings.Reranker.Model)
		}
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Weights: vector=%.2f keyword=%.2f\n",
		settings.Retrieval.VectorWeight, settings.Retrieval.KeywordWeight)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Strategy: %s\n", settings.Chunking.Strategy)
	cmd.Printf("  Target size: %d chars, overlap %d\n",
		settings.Chunking.TargetSize, settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Assembly]")
	cmd.Printf("  Max context tokens: %d\n", settings.Assembly.MaxContextTokens)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}
	fmt.Fprintln(cmd.OutOrStdout(), settingsStore.Path())
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
