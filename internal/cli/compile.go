package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccu1tn/onnc/internal/compiler"
	"github.com/ccu1tn/onnc/internal/frontend"
	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/lower"
	"github.com/ccu1tn/onnc/internal/pass"
	"github.com/ccu1tn/onnc/internal/stats"
	"github.com/ccu1tn/onnc/internal/store"
)

// Error codes reported in CLI output.
const (
	ErrCodeGeneric     = "E000"
	ErrCodeParse       = "E001"
	ErrCodeUnsupported = "E002"
	ErrCodeAmbiguous   = "E003"
	ErrCodeWiring      = "E004"
	ErrCodePass        = "E005"
	ErrCodeWriteFailed = "E006"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output    string // canonical graph dump output path
	DBPath    string // audit store path
	StatsPath string // calibration table path
}

// CompileSummary is the success payload of the compile command.
type CompileSummary struct {
	Session   string   `json:"session"`
	Graph     string   `json:"graph"`
	Hash      string   `json:"hash"`
	Values    int      `json:"values"`
	Operators int      `json:"operators"`
	Passes    []string `json:"passes,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <graph-file>",
		Short: "Compile a source graph to canonical IR",
		Long: `Compile a source graph description (.cue, .yaml, or .yml) into a
canonical compute graph.

Nodes are lowered through the standard strategy catalog; the resulting
graph is hashed for content addressing. With --db every lowering decision
and pass verdict is recorded for later inspection, and with --stats a
quantization calibration table is kept in sync with the graph.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the canonical graph dump to this file")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record the compilation audit trail in this SQLite database")
	cmd.Flags().StringVar(&opts.StatsPath, "stats", "", "maintain the calibration table in this statistics file")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	src, err := frontend.Load(path)
	if err != nil {
		return outputCommandError(formatter, ErrCodeParse, err.Error())
	}
	formatter.VerboseLog("Parsed %s: graph %q, %d value(s), %d node(s)",
		path, src.Name, len(src.Values), len(src.Nodes))

	compileOpts := compiler.Options{}

	if opts.DBPath != "" {
		s, err := store.Open(opts.DBPath)
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("open audit store: %v", err))
		}
		defer s.Close()
		compileOpts.Store = s
	}

	var statistics *stats.Statistics
	if opts.StatsPath != "" {
		statistics, err = stats.Open(opts.StatsPath, stats.ReadWrite)
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("open statistics: %v", err))
		}
		table := statistics.Root().AddGroup("calibration")
		compileOpts.Passes = append(compileOpts.Passes,
			pass.NewCalibrationPass(table,
				ir.OpAbs, ir.OpRelu, ir.OpSoftplus, ir.OpHardSigmoid, ir.OpAdd, ir.OpMul))
	}

	result, err := compiler.Compile(cmd.Context(), src, compileOpts)
	if err != nil {
		return outputCompileFailure(formatter, err)
	}
	formatter.VerboseLog("Session %s lowered %d operator(s)",
		result.CompilationID, result.Graph.NumOperators())

	if statistics != nil {
		if err := statistics.Sync(); err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("sync statistics: %v", err))
		}
	}

	if opts.Output != "" {
		dump, err := ir.Dump(result.Graph)
		if err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("dump graph: %v", err))
		}
		if err := os.WriteFile(opts.Output, dump, 0644); err != nil {
			return outputCommandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("write output file: %v", err))
		}
	}

	summary := &CompileSummary{
		Session:   result.CompilationID,
		Graph:     result.Graph.Name(),
		Hash:      result.GraphHash,
		Values:    result.Graph.NumValues(),
		Operators: result.Graph.NumOperators(),
	}
	for _, run := range result.PassRuns {
		summary.Passes = append(summary.Passes, fmt.Sprintf("%s: %s", run.PassID, run.Result))
	}

	return outputCompileSuccess(formatter, summary, opts.Output)
}

// outputCompileSuccess outputs a successful compilation summary.
func outputCompileSuccess(formatter *OutputFormatter, summary *CompileSummary, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled graph %q: %d value(s), %d operator(s)\n",
		summary.Graph, summary.Values, summary.Operators)
	fmt.Fprintf(formatter.Writer, "  session: %s\n", summary.Session)
	fmt.Fprintf(formatter.Writer, "  hash:    %s\n", summary.Hash)
	for _, p := range summary.Passes {
		fmt.Fprintf(formatter.Writer, "  pass:    %s\n", p)
	}
	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote canonical graph to %s\n", outputFile)
	}
	return nil
}

// outputCompileFailure classifies and reports a compilation error.
// Compilation failures exit with code 1.
func outputCompileFailure(formatter *OutputFormatter, err error) error {
	code := classifyCompileError(err)
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitFailure, fmt.Sprintf("%s: compilation failed", code), err)
}

// outputCommandError reports a command-level error (exit code 2).
func outputCommandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// classifyCompileError maps compilation errors to CLI error codes.
func classifyCompileError(err error) string {
	var parseErr *frontend.ParseError
	switch {
	case errors.As(err, &parseErr):
		return ErrCodeParse
	case lower.IsUnsupported(err):
		return ErrCodeUnsupported
	case lower.IsAmbiguous(err):
		return ErrCodeAmbiguous
	case ir.IsWiringViolation(err):
		return ErrCodeWiring
	default:
		var runErr *pass.RunError
		if errors.As(err, &runErr) {
			return ErrCodePass
		}
		return ErrCodeGeneric
	}
}
