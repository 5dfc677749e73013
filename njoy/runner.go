package njoy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/internal/options"
	"github.com/arloliu/endf/tape"
)

const (
	// outputTail is the number of trailing lines of NJOY output quoted in errors.
	outputTail = 20
	// waitDelay bounds how long a cancelled run waits for its output pipes.
	waitDelay = 5 * time.Second
)

type runnerConfig struct {
	logger *slog.Logger
}

// Option configures a Runner.
type Option = options.Option[*runnerConfig]

// WithLogger sets the logger for run events. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *runnerConfig) {
		c.logger = logger
	})
}

// Runner executes NJOY for single-material tapes.
type Runner struct {
	cfg    Config
	logger *slog.Logger
}

// Result is the product of one run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// Input is the deck fed to NJOY.
	Input string
	// Output is what NJOY printed on stdout and stderr.
	Output string
	// Tape is the parsed tape30 or tape33. It is empty for ModeAce.
	Tape tape.Tape
	// ACE is the content of tape50 for ModeAce.
	ACE []byte
	// XSDir is the content of tape70 for ModeAce.
	XSDir []byte
}

// ACEName returns the ZAID opening the ACE file, such as "1001.07c", or ""
// when there is no ACE output.
func (r *Result) ACEName() string {
	line, _, _ := bytes.Cut(r.ACE, []byte("\n"))
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// NewRunner validates cfg and returns a Runner.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc, err := options.Build(runnerConfig{}, opts...)
	if err != nil {
		return nil, err
	}
	if rc.logger == nil {
		rc.logger = slog.Default()
	}

	return &Runner{cfg: cfg, logger: rc.logger}, nil
}

// Pendf reconstructs t into a pointwise tape.
func (r *Runner) Pendf(ctx context.Context, t tape.Tape) (*Result, error) {
	return r.Run(ctx, t, ModePendf)
}

// Errorr processes the covariances of t into a multigroup ERRORR tape.
func (r *Runner) Errorr(ctx context.Context, t tape.Tape) (*Result, error) {
	return r.Run(ctx, t, ModeErrorr)
}

// Ace processes t into an ACE file and its xsdir entry.
func (r *Runner) Ace(ctx context.Context, t tape.Tape) (*Result, error) {
	return r.Run(ctx, t, ModeAce)
}

// Run processes t in the given mode. Failures are not retried.
//
// Returns errs.ErrAmbiguousKind unless t holds exactly one material, and
// errs.ErrExternalTool when NJOY exits with an error or leaves no output
// tape.
func (r *Runner) Run(ctx context.Context, t tape.Tape, mode Mode) (*Result, error) {
	mats := t.MAT()
	if len(mats) != 1 {
		return nil, fmt.Errorf("%w: NJOY runs need one material, tape holds %v", errs.ErrAmbiguousKind, mats)
	}

	input, err := BuildInput(mats[0], mode, r.cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: ksuid.New().String(), Input: input}
	logger := r.logger.With("run_id", res.RunID, "mat", mats[0], "mode", mode.String())

	dir, err := os.MkdirTemp(r.cfg.WorkDir, "njoy-"+res.RunID+"-")
	if err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("removing run directory failed", "dir", dir, "error", err)
		}
	}()

	if err := t.WriteFile(filepath.Join(dir, fmt.Sprintf("tape%d", unitEndfIn))); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.cfg.Executable)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = waitDelay

	logger.Info("running NJOY", "executable", r.cfg.Executable, "dir", dir)
	runErr := cmd.Run()
	res.Output = out.String()

	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("%w: %s: %w", errs.ErrExternalTool, r.cfg.Executable, ctxErr)
		}

		return res, fmt.Errorf("%w: %s: %w\n%s", errs.ErrExternalTool, r.cfg.Executable, runErr, tail(res.Output, outputTail))
	}

	if mode == ModeAce {
		if res.ACE, err = r.readOutput(dir, mode.OutputTape(), res.Output); err != nil {
			return res, err
		}
		if res.XSDir, err = r.readOutput(dir, xsdirTape(), res.Output); err != nil {
			return res, err
		}
		logger.Info("NJOY run finished", "zaid", res.ACEName(), "bytes", len(res.ACE))

		return res, nil
	}

	product, err := tape.ReadFile(filepath.Join(dir, mode.OutputTape()), tape.WithLogger(logger))
	if errors.Is(err, os.ErrNotExist) {
		return res, r.missing(mode.OutputTape(), res.Output)
	}
	if err != nil {
		return res, fmt.Errorf("%w: reading %s: %w", errs.ErrExternalTool, mode.OutputTape(), err)
	}
	res.Tape = product

	logger.Info("NJOY run finished", "sections", product.Len())

	return res, nil
}

// readOutput returns the content of a product file left in the run directory.
func (r *Runner) readOutput(dir, name, output string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, r.missing(name, output)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", errs.ErrExternalTool, name, err)
	}

	return data, nil
}

func (r *Runner) missing(name, output string) error {
	return fmt.Errorf("%w: %s produced no %s\n%s", errs.ErrExternalTool, r.cfg.Executable, name, tail(output, outputTail))
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return strings.Join(lines, "\n")
}
