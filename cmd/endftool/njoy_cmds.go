package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arloliu/endf/njoy"
)

func (a *app) njoyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "njoy",
		Short: "Process a single-material tape with NJOY",
	}
	cmd.AddCommand(a.njoyRunCmd(njoy.ModePendf), a.njoyRunCmd(njoy.ModeErrorr), a.njoyRunCmd(njoy.ModeAce))

	return cmd
}

func (a *app) njoyRunCmd(mode njoy.Mode) *cobra.Command {
	var (
		configPath  string
		executable  string
		temperature float64
		out         string
		printInput  bool
		suffix      int
	)
	cmd := &cobra.Command{
		Use:   mode.String() + " <tape>",
		Short: fmt.Sprintf("Run NJOY and write the resulting %s tape", mode.OutputTape()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := njoy.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = njoy.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("executable") {
				cfg.Executable = executable
			}
			if cmd.Flags().Changed("temperature") {
				cfg.Temperature = temperature
			}
			if cmd.Flags().Changed("suffix") {
				cfg.Ace.Suffix = suffix
			}

			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}
			r, err := njoy.NewRunner(cfg, njoy.WithLogger(a.logger))
			if err != nil {
				return err
			}

			res, err := r.Run(cmd.Context(), t, mode)
			if printInput && res != nil {
				fmt.Fprint(cmd.ErrOrStderr(), res.Input)
			}
			if err != nil {
				return err
			}
			if mode == njoy.ModeAce {
				return writeAce(a.stdout, res, out)
			}

			return a.writeTape(res.Tape, out)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&configPath, "config", "", "YAML or JSONC run configuration")
	fs.StringVar(&executable, "executable", "", "NJOY executable (overrides the configuration)")
	fs.Float64Var(&temperature, "temperature", 0, "temperature in K (overrides the configuration)")
	if mode == njoy.ModeAce {
		fs.StringVarP(&out, "output", "o", ".", "directory receiving the ACE and xsdir files")
		fs.IntVar(&suffix, "suffix", 0, "two-digit ZAID suffix (overrides the configuration)")
	} else {
		fs.StringVarP(&out, "output", "o", "", "output file (default stdout)")
	}
	fs.BoolVar(&printInput, "print-input", false, "print the NJOY input deck on stderr")

	return cmd
}

// writeAce stores the ACE file under its ZAID in dir, next to the xsdir entry
// with an .xsd extension, and prints both names.
func writeAce(w io.Writer, res *njoy.Result, dir string) error {
	name := res.ACEName()
	if name == "" {
		return errors.New("ACE output has no ZAID")
	}

	acePath := filepath.Join(dir, name)
	if err := os.WriteFile(acePath, res.ACE, 0o644); err != nil {
		return err
	}
	xsdPath := acePath + ".xsd"
	if err := os.WriteFile(xsdPath, res.XSDir, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(w, "ace: %s\nxsdir: %s\n", acePath, xsdPath)

	return nil
}
