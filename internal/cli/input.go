package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pediatric-triage/internal/models"
)

type answerFlags struct {
	file string
	set  []string
}

func (f *answerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "JSON file with a triage request or a bare answers object")
	cmd.Flags().StringArrayVarP(&f.set, "set", "s", nil, "answer as ID=VALUE, repeatable (e.g. -s Q1=8 -s Q4=Yes)")
}

// request merges the file (if any) with --set pairs; --set wins.
func (f *answerFlags) request() (*models.TriageRequest, error) {
	req := &models.TriageRequest{Answers: models.Answers{}}

	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("read answers file: %w", err)
		}
		if err := decodeRequest(data, req); err != nil {
			return nil, fmt.Errorf("parse answers file %s: %w", f.file, err)
		}
	}

	for _, pair := range f.set {
		id, raw, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --set %q, expected ID=VALUE", pair)
		}
		req.Answers[id] = parseValue(strings.TrimSpace(raw))
	}

	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("no answers given, use --file or --set")
	}
	return req, nil
}

// decodeRequest accepts either {"answers": {...}, "language": ".."} or a bare
// answers object.
func decodeRequest(data []byte, req *models.TriageRequest) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if _, ok := probe["answers"]; ok {
		if err := json.Unmarshal(data, req); err != nil {
			return err
		}
		if req.Answers == nil {
			req.Answers = models.Answers{}
		}
		return nil
	}
	return json.Unmarshal(data, &req.Answers)
}

func parseValue(raw string) models.AnswerValue {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return models.Number(f)
	}
	return models.Text(raw)
}
