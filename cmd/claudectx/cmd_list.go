package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.store.Entries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "No profiles found.")
				return nil
			}

			st := newStyles(a.out)
			for _, e := range entries {
				account := st.dim.Render("(no account)")
				if e.Account != nil {
					account = e.Account.Label()
				}
				marker := ""
				if e.Current {
					marker = st.current.Render(" *")
				}
				fmt.Fprintf(a.out, "%s - %s%s\n", st.name.Render(e.Name), account, marker)
			}
			return nil
		},
	}
}
