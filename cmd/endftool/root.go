package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arloliu/endf/tape"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	logLevel   string
	duplicates string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: slog.Default()}

	root := &cobra.Command{
		Use:           "endftool",
		Short:         "Inspect and edit ENDF-6 nuclear data tapes",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVar(&a.duplicates, "duplicates", tape.DuplicateMerge.String(),
		"repeated section policy when parsing: merge, last-wins or reject")

	root.AddCommand(
		a.infoCmd(),
		a.keysCmd(),
		a.showCmd(),
		a.filterCmd(),
		a.mergeCmd(),
		a.deleteCmd(),
		a.updateDirCmd(),
		a.convertCmd(),
		a.diffCmd(),
		a.valueCmd(),
		a.legendreCmd(),
		a.groupXSCmd(),
		a.snapshotCmd(),
		a.dbCmd(),
		a.njoyCmd(),
	)

	return root
}

func (a *app) setup() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", a.logLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	return nil
}

// parseOptions returns the options every tape read uses.
func (a *app) parseOptions() ([]tape.Option, error) {
	policy, err := tape.ParseDuplicatePolicy(a.duplicates)
	if err != nil {
		return nil, err
	}

	return []tape.Option{tape.WithLogger(a.logger), tape.WithDuplicatePolicy(policy)}, nil
}

// readTape loads a tape from path, or from stdin when path is "-".
func (a *app) readTape(cmd *cobra.Command, path string) (tape.Tape, error) {
	opts, err := a.parseOptions()
	if err != nil {
		return tape.Tape{}, err
	}
	if path == "-" {
		return tape.Parse(cmd.InOrStdin(), opts...)
	}

	return tape.ReadFile(path, opts...)
}

// writeTape stores t at path, or prints it when path is empty or "-".
func (a *app) writeTape(t tape.Tape, path string, opts ...tape.Option) error {
	opts = append([]tape.Option{tape.WithLogger(a.logger)}, opts...)
	if path == "" || path == "-" {
		return t.Write(a.stdout, opts...)
	}
	if err := t.WriteFile(path, opts...); err != nil {
		return err
	}
	a.logger.Info("wrote tape", "path", path, "sections", t.Len())

	return nil
}

// filterFlags binds --mat, --mf and --mt to f.
func filterFlags(fs *pflag.FlagSet, f *tape.Filter) {
	fs.IntSliceVar(&f.MAT, "mat", nil, "material numbers to keep (default all)")
	fs.IntSliceVar(&f.MF, "mf", nil, "file numbers to keep (default all)")
	fs.IntSliceVar(&f.MT, "mt", nil, "reaction numbers to keep (default all)")
}

// writeFlags binds the serializer switches and returns a function that
// builds the options from them.
func writeFlags(fs *pflag.FlagSet) func() []tape.Option {
	var (
		renumber bool
		zeros    bool
		noTitle  bool
		title    string
	)
	fs.BoolVar(&renumber, "renumber", false, "rewrite line sequence numbers")
	fs.BoolVar(&zeros, "zero-control", false, "write zeros in the data columns of SEND/FEND/MEND/TEND")
	fs.BoolVar(&noTitle, "no-title", false, "omit the title line")
	fs.StringVar(&title, "title", "", "replace the title line")

	return func() []tape.Option {
		var opts []tape.Option
		if renumber {
			opts = append(opts, tape.WithRenumber())
		}
		if zeros {
			opts = append(opts, tape.WithZeroControlRecords())
		}
		if noTitle {
			opts = append(opts, tape.WithoutTitle())
		}
		if fs.Changed("title") {
			opts = append(opts, tape.WithTitle(title))
		}

		return opts
	}
}

func parseKeys(args []string) ([]tape.Key, error) {
	keys := make([]tape.Key, 0, len(args))
	for _, s := range args {
		k, err := tape.ParseKey(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	return keys, nil
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}

	return strings.Join(parts, ",")
}
