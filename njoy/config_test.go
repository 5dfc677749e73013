package njoy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endf/errs"
)

func TestParseConfig_YAML(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
executable: /opt/njoy/bin/njoy
temperature: 293.6
stages:
  broadr: true
  thermr: false
errorr:
  ign: 1
  ek: [1.0e-5, 0.625, 2.0e7]
ace:
  suffix: 7
`))
	require.NoError(t, err)

	require.Equal(t, "/opt/njoy/bin/njoy", cfg.Executable)
	require.InDelta(t, 293.6, cfg.Temperature, 1e-12)
	require.True(t, cfg.Stages.Broadr)
	require.False(t, cfg.Stages.Thermr)
	require.Equal(t, 1, cfg.Errorr.IGN)
	require.Equal(t, []float64{1e-5, 0.625, 2e7}, cfg.Errorr.EK)
	require.Equal(t, 7, cfg.Ace.Suffix)

	// unset fields keep their defaults
	require.Equal(t, 2, cfg.Errorr.IWT)
	require.Equal(t, 33, cfg.Errorr.MFCov)
	require.InDelta(t, 0.001, cfg.Err, 1e-12)
}

func TestParseConfig_JSONC(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
	// broadening at room temperature
	"temperature": 300,
	"stages": {"purr": false, "unresr": true,},
	/* covariances */
	"errorr": {"mfcov": 31},
}`))
	require.NoError(t, err)

	require.InDelta(t, 300.0, cfg.Temperature, 1e-12)
	require.False(t, cfg.Stages.Purr)
	require.True(t, cfg.Stages.Unresr)
	require.Equal(t, 31, cfg.Errorr.MFCov)
	require.Equal(t, "njoy", cfg.Executable)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":         "temperature: [",
		"json syntax":    `{"temperature": }`,
		"negative temp":  "temperature: -1",
		"zero tolerance": "err: 0",
		"quoted title":   "title: \"it's\"",
		"bad mfcov":      "errorr: {mfcov: 32}",
		"bad ign":        "errorr: {ign: 0}",
		"short ek":       "errorr: {ign: 1, ek: [1.0]}",
		"unsorted ek":    "errorr: {ign: 1, ek: [1.0, 0.5]}",
		"no executable":  "executable: ''",
		"ace suffix":     "ace: {suffix: 100}",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(data))
			require.ErrorIs(t, err, errs.ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "njoy.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"temperature": 600, /* hot */}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.InDelta(t, 600.0, cfg.Temperature, 1e-12)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
