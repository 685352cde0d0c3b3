package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/classifier"
	"pediatric-triage/internal/common/config"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/models"
	"pediatric-triage/internal/redflags"
	"pediatric-triage/internal/triage"
)

func newTriageCommand(newModel ModelFactory) *cobra.Command {
	var (
		input      answerFlags
		configPath string
		lang       string
		output     string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Run the full two-tier triage locally",
		Long: `Run the red-flag rules and, when none fires, the configured model.
The model is configured the same way as the server (configs/config.yaml,
APP_ENVIRONMENT overlay and environment variables).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputText, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown --output %q, expected text, json or yaml", output)
			}

			req, err := input.request()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("lang") {
				req.Language = lang
			}

			var cfg *config.Config
			if configPath != "" {
				cfg, err = config.LoadFromFile(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log := logger.NewNoOpLogger()
			if verbose {
				log = logger.NewStructured("debug", "console")
			}

			model, err := newModel(cfg, log)
			if err != nil {
				return fmt.Errorf("model setup: %w", err)
			}

			cls := classifier.New(model, log, classifier.WithTimeout(config.GetDuration(cfg.Model.Timeout)))
			svc := triage.NewService(catalog.Default(), redflags.NewEngine(), cls, nil, log)
			verdict := svc.Triage(cmd.Context(), req)

			return writeVerdict(cmd.OutOrStdout(), output, verdict)
		},
	}

	input.register(cmd)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: configs/config.yaml)")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "advice language (en, ml)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json (POST /triage body) or yaml")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline steps to stderr")

	return cmd
}

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func writeVerdict(out io.Writer, format string, v *models.Verdict) error {
	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode verdict: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode verdict: %w", err)
		}
		return enc.Close()
	default:
		printVerdict(out, v)
	}
	return nil
}

func levelColor(level models.Level) *color.Color {
	switch level {
	case models.LevelRed:
		return color.New(color.FgRed, color.Bold)
	case models.LevelYellow:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func printVerdict(out io.Writer, v *models.Verdict) {
	levelColor(v.TriageLevel).Fprintf(out, "Triage level: %s\n", v.TriageLevel)
	fmt.Fprintf(out, "Confidence:   %s\n", v.Confidence)
	fmt.Fprintf(out, "Reasoning:    %s\n", v.Reasoning)
	if len(v.AdviceTexts) > 0 {
		fmt.Fprintln(out, "Home advice:")
		for _, text := range v.AdviceTexts {
			fmt.Fprintf(out, "  - %s\n", text)
		}
	}
}
