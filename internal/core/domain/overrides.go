package domain

import "time"

// ConfigOverrides carries values given on the command line.
// Zero values leave the file or default value in place.
type ConfigOverrides struct {
	// ConfigPath points at an explicit config file. When empty, ConfigFileName
	// is looked up in the base directory and may be absent.
	ConfigPath string

	BaseDir        string
	CommandTimeout time.Duration
	ParsePolicy    ParsePolicy
}
