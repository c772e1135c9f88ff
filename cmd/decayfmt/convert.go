package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert [file...]",
		Short: "Re-encode reports between JSON and msgpack",
		Long:  `convert decodes every report in the given files (stdin when none, or for "-") and writes it to stdout in the other encoding. JSON output has one report per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("from") {
				from = opts.config.Output.Format
			}
			if !cmd.Flags().Changed("to") {
				to = opposite(from)
			}
			for _, f := range []string{from, to} {
				if err := checkFormat(f); err != nil {
					return err
				}
			}

			sources, closeAll, err := openSources(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			defer closeAll()

			encode := newEncoder(cmd.OutOrStdout(), to)
			for _, src := range sources {
				if d := readReports(src, from, encode); d != nil {
					return d
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", formatJSON, "input encoding (json|msgpack)")
	cmd.Flags().StringVar(&to, "to", formatMsgpack, "output encoding (json|msgpack); defaults to the one --from is not")
	return cmd
}

func opposite(format string) string {
	if format == formatMsgpack {
		return formatJSON
	}
	return formatMsgpack
}

func newEncoder(w io.Writer, format string) func(report) error {
	if format == formatMsgpack {
		enc := msgpack.NewEncoder(w)
		return func(r report) error { return enc.Encode(r) }
	}
	enc := json.NewEncoder(w)
	return func(r report) error { return enc.Encode(r) }
}
