// Package cli implements the triagectl command tree.
package cli

import (
	"github.com/spf13/cobra"

	"pediatric-triage/internal/common/config"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/llm"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ModelFactory builds the model used by the triage command.
type ModelFactory func(cfg *config.Config, log logger.Logger) (llm.Model, error)

func defaultModelFactory(cfg *config.Config, log logger.Logger) (llm.Model, error) {
	return llm.NewFromConfig(cfg.Model, log)
}

// NewRootCommand creates the root cobra command for triagectl
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultModelFactory)
}

func newRootCommand(newModel ModelFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triagectl",
		Short: "Inspect and exercise the pediatric triage pipeline",
		Long: `triagectl prints the question catalog, evaluates the red-flag rules
against a set of answers, and runs the full two-tier triage locally
against the configured model.`,
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewQuestionsCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(newTriageCommand(newModel))

	return cmd
}
