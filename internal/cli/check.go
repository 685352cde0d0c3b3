package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/redflags"
	"pediatric-triage/internal/triage"
)

// NewCheckCommand creates the 'triagectl check' command
func NewCheckCommand() *cobra.Command {
	var input answerFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the red-flag rules and render the narrative without calling the model",
		Long: `Validate answers against the catalog, evaluate the red-flag rules and
print the clinical narrative that would be sent to the model.

Answers come from --file (a request body or bare answers object) and/or
repeated --set ID=VALUE pairs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := input.request()
			if err != nil {
				return err
			}

			svc := triage.NewService(catalog.Default(), redflags.NewEngine(), nil, nil, logger.NewNoOpLogger())
			printAssessment(cmd.OutOrStdout(), svc.Assess(req.Answers))
			return nil
		},
	}
	input.register(cmd)

	return cmd
}

func printAssessment(out io.Writer, a *triage.Assessment) {
	cyan := color.New(color.FgCyan, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Fprintln(out, "=== Answers ===")
	fmt.Fprintf(out, "Accepted: %d\n", len(a.Answers))
	if len(a.Dropped) > 0 {
		ids := make([]string, 0, len(a.Dropped))
		for id := range a.Dropped {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			yellow.Fprintf(out, "Dropped:  %s (%s)\n", id, a.Dropped[id])
		}
	}

	cyan.Fprintln(out, "\n=== Red-flag rules ===")
	if a.Override != nil {
		red.Fprintf(out, "Override: %s -> %s\n", a.Rule, a.Override.TriageLevel)
	} else {
		green.Fprintln(out, "No rule fired, the model would decide.")
	}

	cyan.Fprintln(out, "\n=== Narrative ===")
	fmt.Fprint(out, a.Narrative)
	fmt.Fprintln(out)
}
