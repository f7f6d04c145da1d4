package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"thought-echo/models"
	"thought-echo/templates/pages"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outputFormat struct {
	json bool
	yaml bool
}

func (f *outputFormat) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "Output in YAML format")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

// encode writes v as JSON or YAML. It reports false when neither was asked
// for and the caller should print text.
func (f *outputFormat) encode(w io.Writer, v any) (bool, error) {
	switch {
	case f.json:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(v)
	case f.yaml:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return true, err
		}
		return true, encoder.Close()
	default:
		return false, nil
	}
}

func printNoteLine(w io.Writer, note models.Note) {
	fmt.Fprintf(w, "%d\t%s\t%s\n", note.ID, pages.FormatDate(note.UpdatedAt), note.Title)
}

func printNote(w io.Writer, note *models.Note) {
	fmt.Fprintf(w, "# %s\n", note.Title)
	fmt.Fprintf(w, "Updated %s\n\n", pages.FormatDate(note.UpdatedAt))
	fmt.Fprintln(w, note.Content)
}
