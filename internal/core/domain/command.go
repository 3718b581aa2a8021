package domain

import (
	"strings"
	"time"
)

// Command is one subprocess invocation.
type Command struct {
	// Name is the binary to run, looked up on PATH.
	Name string

	// Args are passed to the binary verbatim.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds extra KEY=value pairs added to the inherited environment.
	Env []string

	// Timeout bounds the invocation. Zero disables the bound.
	Timeout time.Duration

	// MaxOutput caps the captured stdout in bytes. Zero disables the cap.
	MaxOutput int64
}

// String returns the command line for display.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}
