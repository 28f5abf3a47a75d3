package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentlab/agent"
)

// cityReport is the shape the structured lab asks the model to fill in.
type cityReport struct {
	City       string   `json:"city"`
	Country    string   `json:"country"`
	Population int      `json:"population"`
	Landmarks  []string `json:"landmarks"`
	Summary    string   `json:"summary"`
}

const structuredInstructions = `You produce machine-readable output.
Respond with a single JSON object and nothing else, matching exactly:
{"city": string, "country": string, "population": integer, "landmarks": [string], "summary": string}
Do not wrap the JSON in markdown fences or add commentary.`

var structuredCmd = &cobra.Command{
	Use:   "structured [city]",
	Short: "JSON output decoded into a typed struct",
	Long: `Asks the model for a city report in strict JSON, decodes the answer into
a Go struct, and prints the fields. A model reply that is not valid JSON is
an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStructuredLab,
}

func init() {
	rootCmd.AddCommand(structuredCmd)
}

func runStructuredLab(cmd *cobra.Command, args []string) error {
	_, client, err := setup()
	if err != nil {
		return err
	}

	a := agent.New("archivist", structuredInstructions, client)

	city := strings.Join(args, " ")
	resp, err := a.Ask(cmd.Context(), "Produce the report for: "+city)
	if err != nil {
		return err
	}

	var report cityReport
	if err := json.Unmarshal([]byte(extractJSON(resp.Text)), &report); err != nil {
		return fmt.Errorf("model did not return valid JSON: %w\nraw response:\n%s", err, resp.Text)
	}

	fmt.Fprintf(ioOut, "City:       %s, %s\n", report.City, report.Country)
	fmt.Fprintf(ioOut, "Population: %d\n", report.Population)
	fmt.Fprintf(ioOut, "Landmarks:  %s\n", strings.Join(report.Landmarks, ", "))
	fmt.Fprintf(ioOut, "Summary:    %s\n", report.Summary)

	return nil
}

// extractJSON tolerates models that fence their answer despite the
// instructions, and trims to the outermost object.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
