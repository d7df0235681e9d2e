package main

import (
	"fmt"

	"github.com/ruminaider/claudectx/internal/profiles"
	"github.com/spf13/cobra"
)

func newSaveCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current account as a profile",
		Long:  "Save the account fields of ~/.claude.json as a named profile. Other settings are not stored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			slug := profiles.Slugify(name)
			if err := validateProfileName(name); err != nil {
				return fmt.Errorf("invalid profile name %q: %w", name, err)
			}

			exists, err := a.store.Exists(name)
			if err != nil {
				return err
			}
			if exists && !force {
				if !a.interactive {
					return fmt.Errorf("profile '%s' already exists; pass --force to overwrite", slug)
				}
				overwrite, err := a.prompt.Confirm(fmt.Sprintf("Profile '%s' already exists. Overwrite?", slug), false)
				if err != nil {
					return err
				}
				if !overwrite {
					fmt.Fprintln(a.out, "Cancelled.")
					return nil
				}
			}

			if err := a.store.Save(name); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved current config as '%s'\n", slug)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing profile without asking")
	return cmd
}
