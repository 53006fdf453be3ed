package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andybodemer/snapraw"
)

func newDateCommand(app *appContext) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "date FILE...",
		Short: "Print the capture date of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := "2006-01-02"
			if full {
				layout = "2006-01-02 15:04:05"
			}

			var failed bool
			for _, path := range args {
				date, err := snapraw.DecodeFileDate(path, app.decoderOptions())
				if err != nil {
					failed = true
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", date.Format(layout), path)
			}
			if failed {
				return fmt.Errorf("some files had no readable capture date")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "print the full timestamp, not just the day")
	return cmd
}
