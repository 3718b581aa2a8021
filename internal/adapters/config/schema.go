package config

// SchemaVersion is the only config file version understood. An absent
// version is read as this one.
const SchemaVersion = "1"

// File represents the structure of the arch-backup.yaml configuration file.
// Every field is optional; absent fields keep their defaults.
type File struct {
	Version         string             `yaml:"version"`
	BaseDir         string             `yaml:"base_dir"`
	GroupListFile   string             `yaml:"group_list_file"`
	PackageListFile string             `yaml:"package_list_file"`
	PackageManager  *PackageManagerDTO `yaml:"package_manager"`
	VCS             *VCSDTO            `yaml:"vcs"`
	CommandTimeout  string             `yaml:"command_timeout"`
	MaxOutputBytes  *int64             `yaml:"max_output_bytes"`
	ParsePolicy     string             `yaml:"parse_policy"`
}

// PackageManagerDTO configures the package database queries.
type PackageManagerDTO struct {
	Binary      string   `yaml:"binary"`
	GroupArgs   []string `yaml:"group_args"`
	ForeignArgs []string `yaml:"foreign_args"`
	NativeArgs  []string `yaml:"native_args"`
}

// VCSDTO configures the version-control diff.
type VCSDTO struct {
	Binary string `yaml:"binary"`
}
