package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/tensor"
	"github.com/born-ml/probability/internal/bijector"
	"github.com/born-ml/probability/internal/config"
	"github.com/spf13/cobra"
)

type operation struct {
	use   string
	short string
}

var operations = []operation{
	{"forward", "Compute scale * x + shift"},
	{"inverse", "Compute (y - shift) / scale"},
	{"fldj", "Compute the forward log-det-Jacobian log|scale|"},
	{"ildj", "Compute the inverse log-det-Jacobian -log|scale|"},
	{"roundtrip", "Compute inverse(forward(x)) and its max abs error"},
}

func newEvalCommand(op operation, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   op.use + " <values>...",
		Short: op.short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			in, err := parseInput(args)
			if err != nil {
				return fmt.Errorf("input: %w", err)
			}

			logger.Debug("evaluating",
				"op", op.use,
				"backend", cfg.Backend,
				"dtype", cfg.DType,
				"validate_args", cfg.ValidateArgs,
				"inputs", len(in.Data))

			return run(&request{
				cfg:    cfg,
				op:     op.use,
				input:  in,
				out:    cmd.OutOrStdout(),
				logger: logger,
			})
		},
	}
}

type request struct {
	cfg    *config.Config
	op     string
	input  *config.Values
	out    io.Writer
	logger *slog.Logger
}

func run(req *request) error {
	switch req.cfg.Backend {
	case config.BackendWebGPU:
		return runWebGPU(req)
	default:
		return dispatch(req, cpu.New())
	}
}

// dispatch picks the element type named by the config.
func dispatch[B tensor.Backend](req *request, b B) error {
	dt, err := req.cfg.DataType()
	if err != nil {
		return err
	}
	if dt == tensor.Float64 {
		return evaluate[float64](req, b)
	}
	return evaluate[float32](req, b)
}

func evaluate[T bijector.Float, B tensor.Backend](req *request, b B) (err error) {
	// Born kernels panic on incompatible shapes.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", req.op, r)
		}
	}()

	bij, err := config.NewAffineScalar[T](req.cfg, b)
	if err != nil {
		return err
	}
	req.logger.Debug("bijector ready", "bijector", bij.String(), "backend", b.Name())

	x, err := config.Tensor[T](req.input, b)
	if err != nil {
		return err
	}

	switch req.op {
	case "forward":
		return printResult(req.out, bij.Forward, x)
	case "inverse":
		return printResult(req.out, bij.Inverse, x)
	case "fldj":
		return printResult(req.out, bij.ForwardLogDetJacobian, x)
	case "ildj":
		return printResult(req.out, bij.InverseLogDetJacobian, x)
	case "roundtrip":
		return roundTrip(req, bij, x)
	default:
		return fmt.Errorf("unknown operation %q", req.op)
	}
}

func printResult[T bijector.Float, B tensor.Backend](
	w io.Writer,
	f func(*tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error),
	x *tensor.Tensor[T, B],
) error {
	y, err := f(x)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v shape=%v\n", y.Data(), y.Shape())
	return nil
}

func roundTrip[T bijector.Float, B tensor.Backend](req *request, bij *bijector.AffineScalar[T, B], x *tensor.Tensor[T, B]) error {
	y, err := bij.Forward(x)
	if err != nil {
		return err
	}
	back, err := bij.Inverse(y)
	if err != nil {
		return err
	}

	// back is longer than x only when a one-element x was broadcast.
	want := x.Data()
	var maxErr float64
	for i, v := range back.Data() {
		maxErr = math.Max(maxErr, math.Abs(float64(v)-float64(want[i%len(want)])))
	}

	fmt.Fprintf(req.out, "forward: %v\n", y.Data())
	fmt.Fprintf(req.out, "inverse: %v\n", back.Data())
	fmt.Fprintf(req.out, "max abs error: %g\n", maxErr)
	return nil
}
