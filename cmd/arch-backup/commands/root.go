// Package commands implements the CLI commands for arch-backup.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/cnwangjie/arch-backup/internal/app"
	"github.com/cnwangjie/arch-backup/internal/build"
	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for arch-backup.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, op domain.Operation, opts app.RunOptions) (*domain.Summary, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "arch-backup [operation]",
		Short: "Back up the list of installed Arch packages",
		Long: "Records installed package groups and explicitly installed packages\n" +
			"that belong to no group into files beside the tool, and reports how\n" +
			"each file differs from its last committed revision.\n\n" +
			"Operations: " + domain.OperationNames() + " (default " + domain.DefaultOperation.String() + ")",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runOperation,
	}

	// Run flags first so that -v stays with --verbose.
	addRunFlags(rootCmd)

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
