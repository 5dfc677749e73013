package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
	"github.com/arloliu/endf/section"
	"github.com/arloliu/endf/tape"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <tape>",
		Short: "Print the title and per-material summary of a tape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "title: %s\n", t.Title())
			fmt.Fprintf(a.stdout, "sections: %d\n", t.Len())
			fmt.Fprintf(a.stdout, "fingerprint: %016x\n", t.Sum())
			for _, mat := range t.MAT() {
				sub := t.FilterBy(tape.ByMAT(mat))
				kind := "?"
				if k, err := t.KindOf(mat); err == nil {
					kind = k.String()
				}
				fmt.Fprintf(a.stdout, "MAT %d: kind=%s sections=%d mf=%s\n",
					mat, kind, sub.Len(), joinInts(sub.MF()))
			}

			return nil
		},
	}
}

func (a *app) keysCmd() *cobra.Command {
	var f tape.Filter
	cmd := &cobra.Command{
		Use:   "keys <tape>",
		Short: "List the section keys of a tape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}
			for _, k := range t.FilterBy(f).Keys() {
				fmt.Fprintf(a.stdout, "%d/%d/%d\n", k.MAT, k.MF, k.MT)
			}

			return nil
		},
	}
	filterFlags(cmd.Flags(), &f)

	return cmd
}

func (a *app) showCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <tape> <MAT/MF/MT>",
		Short: "Print one section, decoded as YAML when a codec exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}
			k, err := tape.ParseKey(args[1])
			if err != nil {
				return err
			}

			if !raw {
				sec, err := t.ReadSection(k.MAT, k.MF, k.MT, tape.AllowUnsupported())
				if err != nil {
					return err
				}
				if sec != nil {
					return printYAML(a, sec)
				}
				a.logger.Info("no decoder for section, printing text", "key", k.String())
			}

			text, err := t.Text(k)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, text)

			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the section text")

	return cmd
}

func printYAML(a *app, sec section.Section) error {
	enc := yaml.NewEncoder(a.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(sec); err != nil {
		return err
	}

	return enc.Close()
}

func (a *app) filterCmd() *cobra.Command {
	var (
		f   tape.Filter
		out string
	)
	cmd := &cobra.Command{
		Use:   "filter <tape>",
		Short: "Keep only the sections matching --mat, --mf and --mt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}

			return a.writeTape(t.FilterBy(f), out)
		},
	}
	filterFlags(cmd.Flags(), &f)
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (a *app) mergeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "merge <tape> <tape>...",
		Short: "Merge tapes; sections of later tapes win",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tapes := make([]tape.Tape, len(args))
			for i, path := range args {
				t, err := a.readTape(cmd, path)
				if err != nil {
					return err
				}
				tapes[i] = t
			}

			return a.writeTape(tapes[0].Merge(tapes[1:]...), out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var (
		out           string
		ignoreMissing bool
		updateDir     bool
	)
	cmd := &cobra.Command{
		Use:   "delete <tape> <MAT/MF/MT>...",
		Short: "Remove sections from a tape",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}
			keys, err := parseKeys(args[1:])
			if err != nil {
				return err
			}

			var opts []tape.Option
			if ignoreMissing {
				opts = append(opts, tape.IgnoreMissing())
			}
			t, err = t.DeleteSections(keys, opts...)
			if err != nil {
				return err
			}
			if updateDir {
				if t, err = t.UpdateDirectory(tape.WithLogger(a.logger)); err != nil {
					return err
				}
			}

			return a.writeTape(t, out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "skip keys absent from the tape")
	cmd.Flags().BoolVar(&updateDir, "update-dir", false, "regenerate the MF1/MT451 directory")

	return cmd
}

func (a *app) updateDirCmd() *cobra.Command {
	var (
		out         string
		description []string
	)
	cmd := &cobra.Command{
		Use:   "update-dir <tape>",
		Short: "Regenerate the MF1/MT451 directory of every material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}

			opts := []tape.Option{tape.WithLogger(a.logger)}
			if cmd.Flags().Changed("description") {
				opts = append(opts, tape.WithDescription(description...))
			}
			t, err = t.UpdateDirectory(opts...)
			if err != nil {
				return err
			}

			return a.writeTape(t, out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringArrayVar(&description, "description", nil, "replace the description, one flag per line")

	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a tape, compressing by the output extension (.zst, .s2, .lz4)",
		Args:  cobra.ExactArgs(2),
	}
	writeOpts := writeFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		t, err := a.readTape(cmd, args[0])
		if err != nil {
			return err
		}

		return a.writeTape(t, args[1], writeOpts()...)
	}

	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "List sections added (+), removed (-) or modified (~)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			older, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}
			newer, err := a.readTape(cmd, args[1])
			if err != nil {
				return err
			}

			for _, d := range older.Diff(newer) {
				fmt.Fprintf(a.stdout, "%s %s\n", d.Change, d.Key)
			}

			return nil
		},
	}
}

func (a *app) valueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Read or change one field of one line",
	}

	get := &cobra.Command{
		Use:   "get <tape> <MAT/MF/MT> <line> <field>",
		Short: "Print a field (C1, C2, L1, L2, N1 or N2)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, k, line, field, err := a.valueArgs(cmd, args)
			if err != nil {
				return err
			}
			v, err := t.GetValue(k, line, field)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, strconv.FormatFloat(v, 'g', -1, 64))

			return nil
		},
	}

	var out string
	set := &cobra.Command{
		Use:   "set <tape> <MAT/MF/MT> <line> <field> <value>",
		Short: "Write a field and print or save the tape",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, k, line, field, err := a.valueArgs(cmd, args)
			if err != nil {
				return err
			}
			v, err := strconv.ParseFloat(args[4], 64)
			if err != nil {
				return fmt.Errorf("%w: value %q", errs.ErrInvalidField, args[4])
			}
			t, err = t.ChangeValue(k, line, field, v)
			if err != nil {
				return err
			}

			return a.writeTape(t, out)
		},
	}
	set.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")

	cmd.AddCommand(get, set)

	return cmd
}

func (a *app) valueArgs(cmd *cobra.Command, args []string) (tape.Tape, tape.Key, int, record.Field, error) {
	k, err := tape.ParseKey(args[1])
	if err != nil {
		return tape.Tape{}, tape.Key{}, 0, 0, err
	}
	line, err := strconv.Atoi(args[2])
	if err != nil {
		return tape.Tape{}, tape.Key{}, 0, 0, errors.New("line must be an integer")
	}
	field, err := record.ParseField(args[3])
	if err != nil {
		return tape.Tape{}, tape.Key{}, 0, 0, err
	}
	t, err := a.readTape(cmd, args[0])
	if err != nil {
		return tape.Tape{}, tape.Key{}, 0, 0, err
	}

	return t, k, line, field, nil
}
