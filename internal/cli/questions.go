package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/models"
)

// NewQuestionsCommand creates the 'triagectl questions' command
func NewQuestionsCommand() *cobra.Command {
	var (
		lang   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the question catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := json.MarshalIndent(cat, "", "  ")
				if err != nil {
					return fmt.Errorf("encode catalog: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			language := models.NormalizeLanguage(lang)
			cyan := color.New(color.FgCyan, color.Bold)
			red := color.New(color.FgRed)
			gray := color.New(color.FgHiBlack)

			for _, category := range cat.Categories() {
				cyan.Fprintf(out, "\n%s\n", category)
				for _, q := range cat.Questions(category) {
					marker := " "
					if q.Critical {
						marker = red.Sprint("!")
					}
					fmt.Fprintf(out, "%s %-4s %s\n", marker, q.ID, q.Label(language))
					gray.Fprintf(out, "       %s\n", describeInput(q))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", string(models.DefaultLanguage), "label language (en, ml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the GET /questions document")

	return cmd
}

func describeInput(q *catalog.Question) string {
	if q.Kind == catalog.KindNumber {
		return fmt.Sprintf("number %g..%g", q.Min, q.Max)
	}
	keys := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		keys = append(keys, o.Key)
	}
	return "one of: " + strings.Join(keys, " | ")
}
