package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/yamui/internal/document"
	"github.com/roach88/yamui/internal/schema"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Parse and schema-check a UI document",
		Long: `Parse a UI document and check its structure.

Reports the first syntax error (line and code) or the first schema
problem. A valid document prints its screens and exits zero.

Example:
  yamui validate ui.yaml
  yamui validate --format json ui.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd, args[0])
		},
	}

	return cmd
}

type validateReport struct {
	Valid   bool     `json:"valid"`
	Error   string   `json:"error,omitempty"`
	Screens []string `json:"screens,omitempty"`
	Initial string   `json:"initial_screen,omitempty"`
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command, path string) error {
	report := validateDocument(path)

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		if report.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "valid: initial screen %s, %d screen(s)\n",
				report.Initial, len(report.Screens))
			for _, name := range report.Screens {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s\n", report.Error)
		}
	}

	if !report.Valid {
		return fmt.Errorf("document is invalid")
	}
	return nil
}

func validateDocument(path string) validateReport {
	data, err := os.ReadFile(path)
	if err != nil {
		return validateReport{Error: err.Error()}
	}

	root, err := document.Parse(string(data))
	if err != nil {
		return validateReport{Error: err.Error()}
	}

	sch, err := schema.Load(root)
	if err != nil {
		return validateReport{Error: err.Error()}
	}

	return validateReport{
		Valid:   true,
		Screens: sch.Screens(),
		Initial: sch.InitialScreen().Name,
	}
}
