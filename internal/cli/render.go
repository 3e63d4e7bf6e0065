package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/yamui/internal/document"
	"github.com/roach88/yamui/internal/expr"
	"github.com/roach88/yamui/internal/schema"
	"github.com/roach88/yamui/internal/state"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Screen string
	Sets   []string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Resolve a screen's templates against its state",
		Long: `Parse a document, seed its state, and print the named screen with
every {{ }} template substituted.

Defaults to the document's initial screen. State overrides are
supplied with repeated --set flags and win over the document's seeds.

Example:
  yamui render ui.yaml
  yamui render ui.yaml --screen settings --set wifi.status=connected`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Screen, "screen", "", "screen to render (default: initial screen)")
	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "state override as key=value (repeatable)")

	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	root, err := document.Parse(string(data))
	if err != nil {
		return err
	}
	sch, err := schema.Load(root)
	if err != nil {
		return err
	}

	store := state.New()
	for _, entry := range opts.Sets {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: want key=value", entry)
		}
		store.Seed(map[string]string{key: value})
	}
	if err := sch.SeedState(store); err != nil {
		return err
	}

	screen := sch.InitialScreen()
	if opts.Screen != "" {
		named, ok := sch.Screen(opts.Screen)
		if !ok {
			return fmt.Errorf("unknown screen %q", opts.Screen)
		}
		screen = named
	}

	resolver := store.Resolver()
	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resolveTree(screen.Node(), resolver))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", screen.Name)
	writeTree(&sb, screen.Node(), 1, resolver)
	fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return nil
}

// resolveTree converts a node subtree to JSON-shaped values with every
// scalar's templates substituted.
func resolveTree(node *document.Node, r expr.Resolver) any {
	switch node.Kind() {
	case document.KindScalar:
		return expr.Format(node.Scalar(), r)
	case document.KindSequence:
		out := make([]any, 0, node.Len())
		for child := node.ChildAt(0); child != nil; child = child.Next() {
			out = append(out, resolveTree(child, r))
		}
		return out
	case document.KindMapping:
		out := make(map[string]any, node.Len())
		for child := node.ChildAt(0); child != nil; child = child.Next() {
			out[child.Key()] = resolveTree(child, r)
		}
		return out
	default:
		return nil
	}
}

func writeTree(sb *strings.Builder, node *document.Node, depth int, r expr.Resolver) {
	indent := strings.Repeat("  ", depth)
	for child := node.ChildAt(0); child != nil; child = child.Next() {
		label := child.Key()
		if label == "" {
			label = "-"
		}
		switch child.Kind() {
		case document.KindScalar:
			fmt.Fprintf(sb, "%s%s: %s\n", indent, label, expr.Format(child.Scalar(), r))
		default:
			fmt.Fprintf(sb, "%s%s:\n", indent, label)
			writeTree(sb, child, depth+1, r)
		}
	}
}
