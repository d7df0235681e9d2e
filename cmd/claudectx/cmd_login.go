package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/ruminaider/claudectx/internal/claudecode"
	"github.com/ruminaider/claudectx/internal/login"
	"github.com/ruminaider/claudectx/internal/profiles"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to a new Claude account and save it as a profile",
		Long: "Moves ~/.claude.json aside, runs 'claude /login', saves the new account as a\n" +
			"profile and puts the original config back, whether or not the login succeeds.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), a)
		},
	}
}

func runLogin(ctx context.Context, a *app) (err error) {
	if !a.interactive {
		return errors.New("login needs an interactive terminal")
	}

	fmt.Fprintln(a.out, "Starting Claude login...")
	sess, err := login.Begin(a.fs, *a.loc, a.log)
	if err != nil {
		return err
	}
	if sess.HadBackup() {
		fmt.Fprintf(a.out, "Backed up existing config to %s\n", a.loc.Backup)
	}

	restored := false
	restore := func() error {
		if restored {
			return nil
		}
		restored = true
		if err := sess.Restore(); err != nil {
			return err
		}
		if sess.HadBackup() {
			fmt.Fprintln(a.out, "Restored original config.")
		} else {
			fmt.Fprintln(a.out, "Cleaned up temporary config.")
		}
		return nil
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	doc, err := sess.Login(ctx, a.loginRunner)
	if err != nil {
		return err
	}
	acct, ok, err := claudecode.Account(doc)
	if err != nil {
		return apperr.Parse(a.loc.LiveConfig, err)
	}
	if ok {
		fmt.Fprintf(a.out, "\nLogged in as: %s\n", acct.Label())
	}

	name, err := a.prompt.ProfileName("Enter a name for this profile")
	if err != nil {
		return err
	}
	slug := profiles.Slugify(name)

	exists, err := a.store.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		overwrite, err := a.prompt.Confirm(fmt.Sprintf("Profile '%s' already exists. Overwrite?", slug), false)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(a.out, "Cancelled. Cleaning up...")
			return nil
		}
	}

	if err := a.store.Save(name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved profile '%s'\n", slug)

	if err := restore(); err != nil {
		return err
	}

	launchNew, err := a.prompt.Confirm(fmt.Sprintf("Launch Claude with profile '%s'?", slug), true)
	if err != nil {
		return err
	}
	if launchNew {
		return a.launch(name, nil, false)
	}

	entries, err := a.store.Entries()
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		other, err := a.prompt.Confirm("Select a different profile to launch?", false)
		if err != nil {
			return err
		}
		if other {
			selected, err := a.prompt.SelectProfile("Select Claude profile", entries, slug)
			if err != nil {
				return err
			}
			return a.launch(selected, nil, false)
		}
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Done. Use 'claudectx' to launch with any profile.")
	return nil
}
