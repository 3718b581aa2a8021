// Package detector decides whether console output should be styled.
package detector

import (
	"os"

	"golang.org/x/term"
)

// ColorMode selects how console output is rendered.
type ColorMode int

const (
	// ModeAuto styles output only on an interactive terminal outside CI.
	ModeAuto ColorMode = iota
	// ModeStyled always emits colors and icons.
	ModeStyled
	// ModePlain never emits escape sequences.
	ModePlain
)

// DetectEnvironment returns the mode suitable for the given file.
// Output that is not a terminal, or any output under CI, is plain.
func DetectEnvironment(f *os.File) ColorMode {
	isTTY := f != nil && term.IsTerminal(int(f.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeStyled
}

// ResolveMode applies the --color flag to auto-detection.
// userFlag should be one of: "auto", "always", "never", or empty.
func ResolveMode(autoDetected ColorMode, userFlag string) ColorMode {
	switch userFlag {
	case "always":
		return ModeStyled
	case "never":
		return ModePlain
	default:
		return autoDetected
	}
}
