package main

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/claudectx/internal/profiles"
)

// Prompter is the interactive surface the commands need.
type Prompter interface {
	SelectProfile(title string, entries []profiles.Entry, initial string) (string, error)
	Confirm(title string, initial bool) (bool, error)
	ProfileName(title string) (string, error)
}

type huhPrompter struct{}

func (huhPrompter) SelectProfile(title string, entries []profiles.Entry, initial string) (string, error) {
	options := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		label := e.Label()
		if e.Current {
			label += " *"
		}
		options = append(options, huh.NewOption(label, e.Name))
	}

	selected := initial
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	).Run()
	return selected, err
}

func (huhPrompter) Confirm(title string, initial bool) (bool, error) {
	ok := initial
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	return ok, err
}

func (huhPrompter) ProfileName(title string) (string, error) {
	var name string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("e.g. work").
				Validate(validateProfileName).
				Value(&name),
		),
	).Run()
	return name, err
}

func validateProfileName(name string) error {
	if profiles.Slugify(name) == "" {
		return errors.New("name must contain a letter or digit")
	}
	return nil
}
