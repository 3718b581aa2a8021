package commands

import (
	"github.com/cnwangjie/arch-backup/internal/app"
	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/spf13/cobra"
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", "", "Directory the artifacts are written to (default: the executable's directory)")
	cmd.Flags().StringP("config", "c", "", "Path to the configuration file (default: <dir>/"+domain.ConfigFileName+")")
	cmd.Flags().BoolP("dry-run", "n", false, "Query and summarize without writing any artifact")
	cmd.Flags().Bool("skip-malformed", false, "Skip query output that cannot be parsed instead of aborting")
	cmd.Flags().Duration("timeout", 0, "Timeout for each external command (default: from config, 30s)")
	cmd.Flags().String("log-format", app.LogFormatText, "Log format: text or json")
	cmd.Flags().BoolP("verbose", "v", false, "Show debug logs, including external command stderr")
	cmd.Flags().Bool("trace", false, "Log the duration of every query and write")
	cmd.Flags().String("color", "auto", "Colorize the summary: auto, always, or never")
}

func (c *CLI) runOperation(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	op, err := domain.ParseOperation(name)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipMalformed, _ := cmd.Flags().GetBool("skip-malformed")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	logFormat, _ := cmd.Flags().GetString("log-format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	trace, _ := cmd.Flags().GetBool("trace")
	color, _ := cmd.Flags().GetString("color")

	_, err = c.app.Run(cmd.Context(), op, app.RunOptions{
		ConfigPath:    configPath,
		BaseDir:       dir,
		DryRun:        dryRun,
		SkipMalformed: skipMalformed,
		Timeout:       timeout,
		Trace:         trace,
		Verbose:       verbose,
		LogFormat:     logFormat,
		Color:         color,
	})
	return err
}
