package njoy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/endf/errs"
)

// Stages enables the optional processing modules run after RECONR.
type Stages struct {
	Broadr bool `yaml:"broadr" json:"broadr"`
	Thermr bool `yaml:"thermr" json:"thermr"`
	Heatr  bool `yaml:"heatr" json:"heatr"`
	Gaspr  bool `yaml:"gaspr" json:"gaspr"`
	Purr   bool `yaml:"purr" json:"purr"`
	Unresr bool `yaml:"unresr" json:"unresr"`
}

// ErrorrConfig holds the ERRORR module parameters.
type ErrorrConfig struct {
	// IGN is the neutron group option; 1 reads the boundaries from EK.
	IGN int `yaml:"ign" json:"ign"`
	// IWT is the weight function option.
	IWT int `yaml:"iwt" json:"iwt"`
	// EK are the group boundaries in eV, ascending, used when IGN is 1.
	EK []float64 `yaml:"ek" json:"ek"`
	// MFCov is the covariance file to process: 31, 33 or 35.
	MFCov int `yaml:"mfcov" json:"mfcov"`
	// Err is the RECONR tolerance used for ERRORR runs.
	Err float64 `yaml:"err" json:"err"`
}

// AceConfig holds the ACER module parameters.
type AceConfig struct {
	// Suffix is the two-digit ZAID extension, 7 for 1001.07c.
	Suffix int `yaml:"suffix" json:"suffix"`
}

// Config describes how NJOY is invoked.
type Config struct {
	// Executable is the NJOY binary, looked up in PATH when not absolute.
	Executable string `yaml:"executable" json:"executable"`
	// WorkDir is where run directories are created; empty means os.TempDir.
	WorkDir string `yaml:"work_dir" json:"work_dir"`
	// Title is the RECONR label card.
	Title string `yaml:"title" json:"title"`
	// Temperature is the broadening temperature in K.
	Temperature float64 `yaml:"temperature" json:"temperature"`
	// Err is the RECONR and BROADR tolerance.
	Err float64 `yaml:"err" json:"err"`

	Stages Stages       `yaml:"stages" json:"stages"`
	Errorr ErrorrConfig `yaml:"errorr" json:"errorr"`
	Ace    AceConfig    `yaml:"ace" json:"ace"`
}

// DefaultConfig returns the configuration used when a file sets nothing.
func DefaultConfig() Config {
	return Config{
		Executable: "njoy",
		Title:      "endf runs njoy",
		Err:        0.001,
		Stages: Stages{
			Broadr: true,
			Thermr: true,
			Heatr:  true,
			Gaspr:  true,
			Purr:   true,
		},
		Errorr: ErrorrConfig{
			IGN:   2,
			IWT:   2,
			EK:    []float64{1e-5, 2e7},
			MFCov: 33,
			Err:   0.005,
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Executable) == "":
		return fmt.Errorf("%w: empty executable", errs.ErrInvalidConfig)
	case c.Temperature < 0:
		return fmt.Errorf("%w: negative temperature %g", errs.ErrInvalidConfig, c.Temperature)
	case c.Err <= 0 || c.Errorr.Err <= 0:
		return fmt.Errorf("%w: tolerance must be positive", errs.ErrInvalidConfig)
	case strings.ContainsRune(c.Title, '\'') || len(c.Title) > 66:
		return fmt.Errorf("%w: title must fit 66 columns without quotes", errs.ErrInvalidConfig)
	case c.Errorr.IGN < 1 || c.Errorr.IWT < 1:
		return fmt.Errorf("%w: ign=%d iwt=%d", errs.ErrInvalidConfig, c.Errorr.IGN, c.Errorr.IWT)
	case !slices.Contains([]int{31, 33, 35}, c.Errorr.MFCov):
		return fmt.Errorf("%w: mfcov %d", errs.ErrInvalidConfig, c.Errorr.MFCov)
	case c.Ace.Suffix < 0 || c.Ace.Suffix > 99:
		return fmt.Errorf("%w: ace suffix %d must have two digits", errs.ErrInvalidConfig, c.Ace.Suffix)
	}

	if c.Errorr.IGN == 1 {
		ek := c.Errorr.EK
		if len(ek) < 2 {
			return fmt.Errorf("%w: ign=1 needs at least two energy boundaries", errs.ErrInvalidConfig)
		}
		for i := 1; i < len(ek); i++ {
			if ek[i] <= ek[i-1] {
				return fmt.Errorf("%w: energy boundaries must increase (ek[%d]=%g)", errs.ErrInvalidConfig, i, ek[i])
			}
		}
	}

	return nil
}

// effectiveStages turns off every broadening-dependent stage at zero
// temperature.
func (c Config) effectiveStages() Stages {
	if c.Temperature == 0 {
		return Stages{}
	}

	return c.Stages
}

// ParseConfig decodes a configuration on top of DefaultConfig. Data in JSON
// or JSONC (comments, trailing commas) is recognized by a leading '{';
// anything else is read as YAML.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(jsonc.ToJSON(data)))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads a YAML, JSON or JSONC configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return cfg, nil
}
