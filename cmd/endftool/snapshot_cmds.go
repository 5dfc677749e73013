package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/snapshot"
)

func (a *app) snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Encode, decode and inspect self-verifying tape snapshots",
	}

	var compression string
	encode := &cobra.Command{
		Use:   "encode <tape> <snapshot>",
		Short: "Write a snapshot of a tape",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, ok := format.ParseCompression(compression)
			if !ok {
				return fmt.Errorf("unknown compression %q", compression)
			}
			t, err := a.readTape(cmd, args[0])
			if err != nil {
				return err
			}
			data, err := snapshot.Encode(t, snapshot.WithCompression(ct))
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return err
			}
			a.logger.Info("wrote snapshot", "path", args[1], "bytes", len(data), "digest", snapshot.Sum(t).String())

			return nil
		},
	}
	encode.Flags().StringVar(&compression, "compression", "zstd", "payload codec: none, zstd, s2 or lz4")

	var out string
	decode := &cobra.Command{
		Use:   "decode <snapshot>",
		Short: "Verify a snapshot and write the tape it holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			t, err := snapshot.Decode(data)
			if err != nil {
				return err
			}

			return a.writeTape(t, out)
		},
	}
	decode.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")

	inspect := &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Print the header of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			info, err := snapshot.Inspect(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "version: %d\ncompression: %s\ntitle: %s\nsections: %d\ndigest: %s\n",
				info.Version, info.Compression, info.Title, info.Sections, info.Digest)

			return nil
		},
	}

	cmd.AddCommand(encode, decode, inspect)

	return cmd
}
