// Package cli implements the recall command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/adapters/driven/config/file"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// version is set from the build via SetVersion.
var version = "dev"

// Services injected by the composition root before Execute runs.
// Commands check for nil so a partially wired binary fails with a
// clear message instead of a panic.
var (
	indexingService  driving.IndexingService
	retrievalService driving.RetrievalService
	assemblerService driving.ContextAssembler
	documentStore    driven.ChunkStore
	settingsStore    *file.Store
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Personal knowledge base with hybrid retrieval",
	Long: `Recall indexes your documents into a local knowledge base and answers
queries with hybrid vector + keyword retrieval. It assembles retrieved
chunks into citation-backed context blocks for LLM consumption and
exposes the same operations over MCP for AI assistant integration.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the CLI needs from the composition root.
type Services struct {
	Indexing  driving.IndexingService
	Retrieval driving.RetrievalService
	Assembler driving.ContextAssembler
	Documents driven.ChunkStore
	Settings  *file.Store
}

// SetServices wires core services into the command tree.
func SetServices(s Services) {
	indexingService = s.Indexing
	retrievalService = s.Retrieval
	assemblerService = s.Assembler
	documentStore = s.Documents
	settingsStore = s.Settings
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
