package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/endf/sectiondb"
	"github.com/arloliu/endf/tape"
)

func (a *app) dbCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage a persistent library of tapes",
	}
	cmd.PersistentFlags().StringVar(&dir, "db", "./endf-db", "database directory")

	open := func() (*sectiondb.DB, error) {
		return sectiondb.Open(dir, sectiondb.WithLogger(a.logger))
	}

	importCmd := &cobra.Command{
		Use:   "import <library> <tape>",
		Short: "Store a tape under a library name, replacing what was there",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.readTape(cmd, args[1])
			if err != nil {
				return err
			}
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			_, err = db.Import(args[0], t)

			return err
		},
	}

	var (
		f   tape.Filter
		out string
	)
	load := &cobra.Command{
		Use:   "load <library>",
		Short: "Write the sections of a library matching --mat, --mf and --mt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			t, err := db.Load(args[0], f)
			if err != nil {
				return err
			}

			return a.writeTape(t, out)
		},
	}
	filterFlags(load.Flags(), &f)
	load.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the stored libraries as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			libs, err := db.Libraries()
			if err != nil {
				return err
			}
			if len(libs) == 0 {
				return nil
			}

			enc := yaml.NewEncoder(a.stdout)
			enc.SetIndent(2)
			if err := enc.Encode(libs); err != nil {
				return err
			}

			return enc.Close()
		},
	}

	del := &cobra.Command{
		Use:   "delete <library>",
		Short: "Remove a library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			return db.Delete(args[0])
		},
	}

	cmd.AddCommand(importCmd, load, list, del)

	return cmd
}
