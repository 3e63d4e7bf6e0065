package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/yamui/internal/expr"
	"github.com/roach88/yamui/internal/state"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Sets []string
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression against ad-hoc state",
		Long: `Evaluate one expression and print its string rendering.

State keys are supplied with repeated --set flags.

Example:
  yamui eval 'count + 1' --set count=4
  yamui eval 'wifi.status == "connected" ? "Online" : "Offline"' --set wifi.status=connected`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "state entry as key=value (repeatable)")

	return cmd
}

type evalReport struct {
	Expression string `json:"expression"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
}

func runEval(opts *EvalOptions, cmd *cobra.Command, expression string) error {
	store := state.New()
	for _, entry := range opts.Sets {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: want key=value", entry)
		}
		store.Seed(map[string]string{key: value})
	}

	report := evalReport{Expression: expression}
	v, err := expr.Eval(expression, store.Resolver())
	if err != nil {
		report.Error = err.Error()
	} else {
		report.Result = v.AsString()
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if report.Error != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", report.Error)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), report.Result)
	}

	if report.Error != "" {
		return fmt.Errorf("expression failed")
	}
	return nil
}
