package njoy

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
	"github.com/arloliu/endf/tape"
)

// fakeNJOY writes a shell script standing in for NJOY and returns a config
// running it with its own work directory.
func fakeNJOY(t *testing.T, script string) Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake executable is a shell script")
	}

	bin := filepath.Join(t.TempDir(), "njoy")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+script+"\n"), 0o755))

	cfg := DefaultConfig()
	cfg.Executable = bin
	cfg.WorkDir = t.TempDir()

	return cfg
}

func sampleTape(t *testing.T, mats ...int) tape.Tape {
	t.Helper()

	var entries []tape.Entry
	for _, mat := range mats {
		entries = append(entries, tape.Entry{
			Key:  tape.NewKey(mat, 1, 451),
			Text: record.FormatLine(" 1.001000+3 9.991673-1          1          0          0          5", mat, 1, 451, 1),
		})
	}
	tp, err := tape.New(entries...)
	require.NoError(t, err)

	return tp
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()

	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, left, "run directory must be removed")
}

func TestRunner_Pendf(t *testing.T) {
	cfg := fakeNJOY(t, `cat > input.copy
grep -q reconr input.copy || exit 9
echo " njoy 2016.76"
cp tape20 tape30`)
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	in := sampleTape(t, 125)
	res, err := r.Pendf(context.Background(), in)
	require.NoError(t, err)

	require.True(t, in.Equal(res.Tape))
	require.NotEmpty(t, res.RunID)
	require.Contains(t, res.Input, "reconr")
	require.Contains(t, res.Output, "njoy 2016.76")
	requireEmptyDir(t, cfg.WorkDir)
}

func TestRunner_Errorr(t *testing.T) {
	cfg := fakeNJOY(t, `cat > input.copy
grep -q errorr input.copy || exit 9
cp tape20 tape33`)
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	res, err := r.Errorr(context.Background(), sampleTape(t, 125))
	require.NoError(t, err)
	require.Equal(t, []int{125}, res.Tape.MAT())
}

func TestRunner_ToolFails(t *testing.T) {
	cfg := fakeNJOY(t, `echo "error in reconr" >&2
exit 3`)
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	res, err := r.Pendf(context.Background(), sampleTape(t, 125))
	require.ErrorIs(t, err, errs.ErrExternalTool)
	require.Contains(t, err.Error(), "error in reconr")
	require.Contains(t, res.Output, "error in reconr")
	requireEmptyDir(t, cfg.WorkDir)
}

func TestRunner_MissingOutput(t *testing.T) {
	cfg := fakeNJOY(t, `cat > /dev/null`)
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	_, err = r.Errorr(context.Background(), sampleTape(t, 125))
	require.ErrorIs(t, err, errs.ErrExternalTool)
	require.Contains(t, err.Error(), "tape33")
}

func TestRunner_Cancelled(t *testing.T) {
	cfg := fakeNJOY(t, `exec sleep 5`)
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = r.Pendf(ctx, sampleTape(t, 125))
	require.ErrorIs(t, err, errs.ErrExternalTool)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	requireEmptyDir(t, cfg.WorkDir)
}

func TestRunner_RequiresOneMaterial(t *testing.T) {
	cfg := fakeNJOY(t, `exit 0`)
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	_, err = r.Pendf(context.Background(), sampleTape(t, 125, 128))
	require.ErrorIs(t, err, errs.ErrAmbiguousKind)
	_, err = r.Pendf(context.Background(), tape.Tape{})
	require.ErrorIs(t, err, errs.ErrAmbiguousKind)
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Executable = ""

	_, err := NewRunner(cfg)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestRunner_Ace(t *testing.T) {
	cfg := fakeNJOY(t, `cat > input.copy
grep -q acer input.copy || exit 9
printf '  1001.07c   0.999167  7.0000E-08   10/18/26\n' > tape50
echo "1001.07c 0.999167 filename 0 1 1 1234 0 0 7.0E-08" > tape70`)
	cfg.Ace.Suffix = 7
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	res, err := r.Ace(context.Background(), sampleTape(t, 125))
	require.NoError(t, err)
	require.Equal(t, "1001.07c", res.ACEName())
	require.Contains(t, string(res.XSDir), "filename")
	require.Zero(t, res.Tape.Len())
	requireEmptyDir(t, cfg.WorkDir)
}

func TestRunner_AceMissingXSDir(t *testing.T) {
	cfg := fakeNJOY(t, `cat > /dev/null
echo "  1001.00c" > tape50`)
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	res, err := r.Ace(context.Background(), sampleTape(t, 125))
	require.ErrorIs(t, err, errs.ErrExternalTool)
	require.Contains(t, err.Error(), "tape70")
	require.Equal(t, "1001.00c", res.ACEName())
}
