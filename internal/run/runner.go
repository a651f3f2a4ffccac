// Package run executes eigenfrequency analyses from input files
package run

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/diagram"
	"github.com/alexiusacademia/gotower/internal/eigen"
	"github.com/alexiusacademia/gotower/internal/export"
	"github.com/alexiusacademia/gotower/internal/input"
	"github.com/alexiusacademia/gotower/internal/report"
)

// Notifier receives progress messages. Batch runs call it concurrently.
type Notifier func(msg string)

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the logger, nil disables logging
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger == nil {
			logger = zap.NewNop()
		}
		r.logger = logger
	}
}

// WithNotifier sets the progress notifier
func WithNotifier(n Notifier) Option {
	return func(r *Runner) { r.notify = n }
}

// WithOverwrite allows replacing existing output files
func WithOverwrite(overwrite bool) Option {
	return func(r *Runner) { r.overwrite = overwrite }
}

// WithImage additionally exports the mode shapes as image
func WithImage(path string) Option {
	return func(r *Runner) { r.image = path }
}

// WithDefaults sets the parameters used where the input file omits them
func WithDefaults(p config.Parameters) Option {
	return func(r *Runner) { r.defaults = p }
}

// WithOverride changes the parameters read from the input file before
// solving, e.g. to apply command line flags
func WithOverride(fn func(*config.Parameters)) Option {
	return func(r *Runner) { r.overrides = append(r.overrides, fn) }
}

// Runner executes one analysis in the stages pre, read, solve, write and
// post.
type Runner struct {
	id        string
	in        string
	out       string
	image     string
	overwrite bool
	defaults  config.Parameters
	overrides []func(*config.Parameters)
	logger    *zap.Logger
	notify    Notifier
	solver    *eigen.FlexSolver
}

// Outcome is everything a finished run produced
type Outcome struct {
	ID         string
	Source     string
	Output     string
	Image      string
	Header     map[string]any
	Parameters config.Parameters
	Result     *eigen.Result
	Report     *report.Report
	Duration   time.Duration
}

// New creates a runner reading in and writing the workbook out. An empty
// out skips the workbook.
func New(in, out string, opts ...Option) (*Runner, error) {
	if strings.TrimSpace(in) == "" {
		return nil, fmt.Errorf("input file name must not be empty")
	}
	r := &Runner{
		id:       uuid.NewString(),
		in:       in,
		out:      out,
		defaults: config.Default(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("run_id", r.id), zap.String("input", in))
	return r, nil
}

// ID returns the identifier of the run
func (r *Runner) ID() string { return r.id }

// Execute runs all stages. The context is checked between stages.
func (r *Runner) Execute(ctx context.Context) (*Outcome, error) {
	start := time.Now()
	r.logger.Debug("run started")

	if err := r.pre(); err != nil {
		return nil, r.fail("pre", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := r.read()
	if err != nil {
		return nil, r.fail("read", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.solve(out); err != nil {
		return nil, r.fail("solve", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.write(out); err != nil {
		return nil, r.fail("write", err)
	}

	out.Duration = time.Since(start)
	r.post(out)
	return out, nil
}

func (r *Runner) fail(stage string, err error) error {
	r.logger.Error("run failed", zap.String("stage", stage), zap.Error(err))
	return fmt.Errorf("%s: %w", r.in, err)
}

func (r *Runner) send(format string, args ...any) {
	if r.notify == nil {
		return
	}
	if msg := fmt.Sprintf(format, args...); msg != "" {
		r.notify(msg)
	}
}

// pre verifies the files before any work is done
func (r *Runner) pre() error {
	r.send("Verifying files")

	if _, err := input.FormatOf(r.in); err != nil {
		return err
	}
	if _, err := os.Stat(r.in); err != nil {
		return err
	}

	if r.out != "" {
		if ext := strings.ToLower(filepath.Ext(r.out)); ext != ".xlsx" {
			return &input.FileTypeError{Path: r.out, Expected: []string{".xlsx"}}
		}
		if err := r.checkWritable(r.out); err != nil {
			return err
		}
	}
	if r.image != "" {
		return r.checkWritable(r.image)
	}
	return nil
}

func (r *Runner) checkWritable(path string) error {
	if r.overwrite {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrExist}
	}
	return nil
}

func (r *Runner) read() (*Outcome, error) {
	r.send("Reading %q", r.in)

	loaded, err := input.LoadWithDefaults(r.in, r.defaults)
	if err != nil {
		return nil, err
	}
	for _, fn := range r.overrides {
		fn(&loaded.Parameters)
	}
	if err := loaded.Parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	r.logger.Debug("model read",
		zap.Int("beams", loaded.Model.Count()),
		zap.Stringer("beam_type", loaded.Model.Kind()),
		zap.Float64("length", loaded.Model.Length()),
		zap.Float64("mass", loaded.Model.Mass()),
	)

	out := &Outcome{
		ID:         r.id,
		Source:     r.in,
		Header:     loaded.Header,
		Parameters: loaded.Parameters,
		Report:     report.Compile(loaded.Header, loaded.Parameters, loaded.Model, nil),
	}
	return out, r.prepareSolver(loaded)
}

func (r *Runner) prepareSolver(loaded *input.Run) error {
	s := eigen.NewFlexSolver()
	s.SetLogger(r.logger)
	if err := s.SetModel(loaded.Model); err != nil {
		return err
	}
	if err := s.Configure(loaded.Parameters); err != nil {
		return err
	}
	r.solver = s
	return nil
}

func (r *Runner) solve(out *Outcome) error {
	r.send("Computing frequencies and mode shapes")

	res, err := r.solver.Solve()
	if err != nil {
		return err
	}
	out.Result = res
	out.Report.Tables = append(out.Report.Tables,
		report.FrequencyTable(res),
		report.ModeShapeTable(res),
	)
	return nil
}

func (r *Runner) write(out *Outcome) error {
	if r.out != "" {
		r.send("Writing %q", r.out)
		if _, err := export.Workbook(r.out, out.Report, out.Result, export.Options{
			Overwrite: r.overwrite,
			RunID:     r.id,
			Source:    r.in,
		}); err != nil {
			return err
		}
		out.Output = r.out
	}

	if r.image != "" {
		r.send("Drawing %q", r.image)
		title := filepath.Base(r.in)
		path, err := diagram.ExportModeShapes(diagram.FromResult(out.Result), title, r.image)
		if err != nil {
			return err
		}
		out.Image = path
	}
	return nil
}

func (r *Runner) post(out *Outcome) {
	r.send("Done in %s", out.Duration.Round(time.Millisecond))
	r.logger.Info("run finished",
		zap.Float64s("frequencies", out.Result.Frequencies),
		zap.Duration("duration", out.Duration),
		zap.String("output", out.Output),
	)
}
