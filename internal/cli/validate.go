package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccu1tn/onnc/internal/frontend"
	"github.com/ccu1tn/onnc/internal/lower"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateSummary is the success payload of the validate command.
type ValidateSummary struct {
	Graph  string `json:"graph"`
	Values int    `json:"values"`
	Nodes  int    `json:"nodes"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <graph-file>",
		Short: "Validate a source graph without compiling it",
		Long: `Parse a source graph description and check that every node has a
registered lowering strategy, without building the compute graph.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	src, err := frontend.Load(path)
	if err != nil {
		_ = formatter.Error(ErrCodeParse, err.Error(), nil)
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: %s", ErrCodeParse, err.Error()), err)
	}

	// Selection exercises the score/tie rules without mutating anything,
	// so unsupported and ambiguous nodes surface here.
	registry := lower.NewStandardRegistry()
	for i, node := range src.Nodes {
		if _, err := registry.Select(node); err != nil {
			code := classifyCompileError(err)
			message := fmt.Sprintf("node %d (%s): %v", i, node.Kind, err)
			_ = formatter.Error(code, message, nil)
			return WrapExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message), err)
		}
		formatter.VerboseLog("node %d (%s): ok", i, node.Kind)
	}

	summary := &ValidateSummary{Graph: src.Name, Values: len(src.Values), Nodes: len(src.Nodes)}
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid: graph %q, %d value(s), %d node(s)\n",
		path, summary.Graph, summary.Values, summary.Nodes)
	return nil
}
