package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show which saved profile matches ~/.claude.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok, err := a.store.Current()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(a.out, "No matching profile.")
				return nil
			}
			fmt.Fprintln(a.out, name)
			return nil
		},
	}
}
