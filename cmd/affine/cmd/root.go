// Package cmd implements the affine CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/born-ml/probability/internal/config"
	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

type options struct {
	cfgFile  string
	name     string
	shift    string
	scale    string
	validate bool
	dtype    string
	backend  string
	verbose  bool
}

// NewRootCommand builds the affine command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "affine",
		Short: "Evaluate the affine scalar bijector Y = scale * X + shift",
		Long: `affine evaluates the affine scalar bijector on Born tensors.

Parameters come from a YAML config (--config) and/or flags; flags win.
Values are a bare number (0-D) or a list: "2", "1,2,3", "[1, 2, 3]".

Examples:
  affine forward --shift 1,2,3 --scale 2 1,1,1
  affine inverse --scale 0 --validate 1
  affine fldj --config affine.yaml 0`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "YAML config file")
	flags.StringVar(&opts.name, "name", "", "bijector name (default: affine_scalar)")
	flags.StringVar(&opts.shift, "shift", "", "shift values")
	flags.StringVar(&opts.scale, "scale", "", "scale values")
	flags.BoolVar(&opts.validate, "validate", false, "check that scale is non-zero")
	flags.StringVar(&opts.dtype, "dtype", "", "float32 or float64 (default: float32)")
	flags.StringVar(&opts.backend, "backend", "", "cpu or webgpu (default: cpu)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	for _, op := range operations {
		root.AddCommand(newEvalCommand(op, opts))
	}
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "affine %s\n", version)
		},
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveConfig merges the config file with flags set on the command line.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.cfgFile != "" {
		loaded, err := config.Load(opts.cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = opts.name
	}
	if flags.Changed("dtype") {
		cfg.DType = opts.dtype
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("validate") {
		cfg.ValidateArgs = opts.validate
	}
	if flags.Changed("shift") {
		v, err := config.ParseValues(opts.shift)
		if err != nil {
			return nil, fmt.Errorf("--shift: %w", err)
		}
		cfg.Shift = v
	}
	if flags.Changed("scale") {
		v, err := config.ParseValues(opts.scale)
		if err != nil {
			return nil, fmt.Errorf("--scale: %w", err)
		}
		cfg.Scale = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseInput reads the values to transform from positional arguments.
// Several arguments form a list; a single one follows config.ParseValues.
func parseInput(args []string) (*config.Values, error) {
	if len(args) == 1 {
		return config.ParseValues(args[0])
	}
	return config.ParseValues("[" + strings.Join(args, ",") + "]")
}
