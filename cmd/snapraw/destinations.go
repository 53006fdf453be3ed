package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andybodemer/snapraw/internal/destinations"
)

func newDestinationsCommand(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destinations",
		Short: "Manage saved import destinations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := destinations.NewStore(app.cfg.DestinationsFile).List()
			if err != nil {
				return err
			}
			if len(dirs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved destinations.")
				return nil
			}
			for _, d := range dirs {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add DIR",
		Short: "Save a destination folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := destinations.NewStore(app.cfg.DestinationsFile).Add(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved. %d destination(s).\n", len(dirs))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove DIR",
		Short: "Remove a saved destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := destinations.NewStore(app.cfg.DestinationsFile).Remove(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed. %d destination(s) left.\n", len(dirs))
			return nil
		},
	})

	return cmd
}
