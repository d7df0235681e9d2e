package main

import (
	"fmt"

	"github.com/ruminaider/claudectx/internal/profiles"
	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted profile '%s'\n", profiles.Slugify(args[0]))
			return nil
		},
	}
}
