package domain

const (
	// ConfigFileName is the optional configuration file looked up in the base directory.
	ConfigFileName = "arch-backup.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
