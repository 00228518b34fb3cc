// Package detector decides whether the console is driven by a person or by a pipe.
package detector

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how the console is being driven.
type Mode int

const (
	// ModeInteractive means a person is typing at a terminal.
	ModeInteractive Mode = iota
	// ModeLinear means input is piped or the program runs in CI.
	ModeLinear
)

// DetectEnvironment returns ModeLinear when stdin is not a terminal or CI is set.
func DetectEnvironment() Mode {
	return detect(term.IsTerminal(int(os.Stdin.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) Mode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeInteractive
}
