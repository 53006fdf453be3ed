package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/andybodemer/snapraw"
)

func newShowCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print every decoded metadata field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			opts := app.decoderOptions()
			opts.R = f
			opts.Format = snapraw.FormatFromPath(path)

			fields, err := snapraw.Decode(opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Field", "Value"})
			for _, name := range fields.Names() {
				v, _ := fields.Get(name)
				t.AppendRow(table.Row{name, fmt.Sprint(v)})
			}
			if isatty.IsTerminal(os.Stdout.Fd()) {
				t.SetStyle(table.StyleRounded)
			}
			t.Render()
			return nil
		},
	}
}
