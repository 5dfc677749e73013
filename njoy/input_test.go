package njoy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInput_PendfZeroTemperature(t *testing.T) {
	input, err := BuildInput(125, ModePendf, DefaultConfig())
	require.NoError(t, err)

	require.Equal(t, strings.Join([]string{
		"moder",
		"20 -21 /",
		"reconr",
		"-21 -22 /",
		"'endf runs njoy'/",
		"125 0 0 /",
		"0.001 0. /",
		"0/",
		"moder",
		"-22 30 /",
		"stop",
		"",
	}, "\n"), input)
}

func TestBuildInput_PendfBroadened(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Temperature = 293.6

	input, err := BuildInput(9237, ModePendf, cfg)
	require.NoError(t, err)

	for _, module := range []string{"broadr", "thermr", "heatr", "gaspr", "purr"} {
		require.Contains(t, input, "\n"+module+"\n")
	}
	require.NotContains(t, input, "unresr")
	require.NotContains(t, input, "errorr")
	require.Contains(t, input, "-21 -22 -23 /\n9237 1 0 0 0. /\n0.001 /\n293.6 /")
	require.Contains(t, input, "0 -23 -24 /")
	require.Contains(t, input, "\nmoder\n-27 30 /\nstop\n")
}

func TestBuildInput_StagesDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Temperature = 600
	cfg.Stages = Stages{Broadr: true}

	input, err := BuildInput(125, ModePendf, cfg)
	require.NoError(t, err)
	require.Contains(t, input, "\nbroadr\n")
	require.NotContains(t, input, "thermr")
	require.Contains(t, input, "\nmoder\n-23 30 /\n")
}

func TestBuildInput_Errorr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Errorr.IGN = 1
	cfg.Errorr.EK = []float64{1e-5, 0.625, 2e7}

	input, err := BuildInput(125, ModeErrorr, cfg)
	require.NoError(t, err)

	require.Contains(t, input, "0.005 0. /")
	require.True(t, strings.HasSuffix(input, strings.Join([]string{
		"moder",
		"-22 30 /",
		"errorr",
		"-21 -22 0 33 0 /",
		"125 1 2 0 1 /",
		"0 0. /",
		"0 33 /",
		"2 /",
		"1.00000e-05 6.25000e-01 2.00000e+07 /",
		"stop",
		"",
	}, "\n")), input)
}

func TestBuildInput_Invalid(t *testing.T) {
	_, err := BuildInput(0, ModePendf, DefaultConfig())
	require.Error(t, err)

	cfg := DefaultConfig()
	cfg.Err = -1
	_, err = BuildInput(125, ModePendf, cfg)
	require.Error(t, err)
}

func TestMode(t *testing.T) {
	require.Equal(t, "tape30", ModePendf.OutputTape())
	require.Equal(t, "tape33", ModeErrorr.OutputTape())
	require.Equal(t, "errorr", ModeErrorr.String())
}

func TestBuildInput_Ace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Temperature = 700
	cfg.Stages = Stages{Broadr: true}
	cfg.Ace.Suffix = 7

	input, err := BuildInput(125, ModeAce, cfg)
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(input, strings.Join([]string{
		"moder",
		"-23 30 /",
		"acer",
		"-21 -23 0 50 70 /",
		"1 0 1 .07 /",
		"'endf runs njoy'/",
		"125 700. /",
		"1 1 /",
		"/",
		"stop",
		"",
	}, "\n")), input)
	require.NotContains(t, input, "errorr")
	require.Equal(t, "tape50", ModeAce.OutputTape())
	require.Equal(t, "ace", ModeAce.String())
}
