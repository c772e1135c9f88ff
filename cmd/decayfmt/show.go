package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [file...]",
		Short: "Print reports for humans",
		Long:  `show decodes every report in the given files (stdin when none, or for "-") and prints its items, outermost first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = opts.config.Output.Format
			}
			if err := checkFormat(format); err != nil {
				return err
			}

			sources, closeAll, err := openSources(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			defer closeAll()

			out := cmd.OutOrStdout()
			p := newPrinter(out, useColor(opts.config.Output.Color, out), opts.config.Output.Numbered)
			for _, src := range sources {
				if d := readReports(src, format, p.print); d != nil {
					return d
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "input encoding (json|msgpack)")
	cmd.Flags().Bool("numbered", true, "number the items of each report")
	return cmd
}

// useColor resolves a color mode for the writer: auto colors terminals
// only.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// printer renders reports, one item per line, with a blank line between
// reports.
type printer struct {
	w        io.Writer
	numbered bool
	count    int

	index *color.Color
	note  *color.Color
	outer *color.Color
	label *color.Color
}

func newPrinter(w io.Writer, colored, numbered bool) *printer {
	p := &printer{
		w:        w,
		numbered: numbered,
		index:    color.New(color.Faint),
		note:     color.New(color.FgCyan),
		outer:    color.New(color.FgRed, color.Bold),
		label:    color.New(color.FgYellow, color.Bold),
	}
	for _, c := range []*color.Color{p.index, p.note, p.outer, p.label} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) print(r report) error {
	if p.count > 0 {
		if _, err := fmt.Fprintln(p.w); err != nil {
			return err
		}
	}
	p.count++

	if len(r) == 0 {
		_, err := fmt.Fprintln(p.w, p.label.Sprint("empty report"))
		return err
	}
	width := len(fmt.Sprint(len(r)))
	for i, item := range r {
		var line string
		if p.numbered {
			line = p.index.Sprintf("%*d. ", width, i+1)
		}
		if item.IsExternal() {
			line += p.label.Sprint("error: ") + p.outer.Sprint(item.String())
		} else {
			line += p.note.Sprint(item.String())
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	return nil
}
