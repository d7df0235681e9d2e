package main

import (
	"errors"
	"fmt"

	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/ruminaider/claudectx/internal/claudecode"
	"github.com/ruminaider/claudectx/internal/profiles"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	var noLaunch bool

	root := &cobra.Command{
		Use:   "claudectx [profile] [-- claude args...]",
		Short: "Launch Claude Code with different account profiles",
		Long: "claudectx keeps one slim snapshot of account fields per Claude Code login and patches\n" +
			"the chosen one into ~/.claude.json before launching claude. Settings that are not\n" +
			"tied to an account are left alone.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			names, _ := splitArgs(cmd, args)
			if len(names) > 1 {
				return fmt.Errorf("accepts at most one profile name, got %d", len(names))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			names, extra := splitArgs(cmd, args)
			var name string
			if len(names) == 1 {
				name = names[0]
			}
			return runSwitch(a, name, extra, noLaunch)
		},
	}

	root.SetVersionTemplate("claudectx {{.Version}}\n")
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Log diagnostic detail to stderr")
	root.Flags().BoolVarP(&noLaunch, "no-launch", "n", false, "Switch the live config without starting claude")

	root.AddCommand(
		newListCmd(a),
		newSaveCmd(a),
		newDeleteCmd(a),
		newLoginCmd(a),
		newCurrentCmd(a),
		newVersionCmd(a),
	)
	return root
}

// splitArgs separates profile names from the arguments after "--".
func splitArgs(cmd *cobra.Command, args []string) (names, extra []string) {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		return args[:dash], args[dash:]
	}
	return args, nil
}

func runSwitch(a *app, name string, extra []string, noLaunch bool) error {
	if name == "" {
		entries, err := a.store.Entries()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return showFirstRun(a)
		}
		if !a.interactive {
			return errors.New("no profile given and stdin is not a terminal; run 'claudectx <profile>'")
		}
		if name, err = a.prompt.SelectProfile("Select Claude profile", entries, initialSelection(entries)); err != nil {
			return err
		}
	}

	exists, err := a.store.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		slug := profiles.Slugify(name)
		if !a.interactive {
			return apperr.NotFound(slug)
		}
		create, err := a.prompt.Confirm(fmt.Sprintf("Profile '%s' not found. Save current config as this profile?", slug), false)
		if err != nil {
			return err
		}
		if !create {
			return apperr.NotFound(slug)
		}
		if err := a.store.Save(name); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Profile '%s' saved.\n", slug)
	}

	return a.launch(name, extra, noLaunch)
}

// showFirstRun describes the live account when nothing has been saved yet.
func showFirstRun(a *app) error {
	live, err := a.store.ReadLive()
	if err != nil {
		return err
	}
	acct, ok, err := claudecode.Account(live)
	if err != nil {
		return apperr.Parse(a.loc.LiveConfig, err)
	}
	if ok {
		fmt.Fprintf(a.out, "Current account: %s\n", acct.Label())
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "No profiles saved yet. Use 'claudectx save <name>' to save this profile.")
	return nil
}

func initialSelection(entries []profiles.Entry) string {
	for _, e := range entries {
		if e.Current {
			return e.Name
		}
	}
	return entries[0].Name
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "claudectx %s\n", version)
		},
	}
}
