package menu

import (
	"errors"
	"fmt"
)

// ErrCancelled reports that the operator backed out of a prompt.
var ErrCancelled = errors.New("menu: cancelled")

// UI is the prompt surface consumed by the navigation engine and the resource
// modules. Every call blocks until the operator answers or cancels.
type UI interface {
	// Select renders prompt above choices and returns the chosen string.
	// Choices must be non-empty and unique; callers disambiguate beforehand
	// (list screens do so with numeric prefixes).
	Select(prompt string, choices []string) (string, error)

	// Input reads one line of free text.
	Input(prompt string) (string, error)

	// Confirm asks a yes/no question, defaulting to no.
	Confirm(prompt string) (bool, error)

	// Ack prints message and waits for a keypress.
	Ack(message string)

	// Say prints message without waiting.
	Say(message string)

	// Warn prints an error or warning message without waiting.
	Warn(message string)

	// Busy shows a spinner labelled label while fn runs and returns fn's error.
	Busy(label string, fn func() error) error
}

func validateChoices(choices []string) error {
	if len(choices) == 0 {
		return fmt.Errorf("menu: select requires at least one choice")
	}
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		if _, dup := seen[choice]; dup {
			return fmt.Errorf("menu: duplicate choice %q", choice)
		}
		seen[choice] = struct{}{}
	}
	return nil
}
