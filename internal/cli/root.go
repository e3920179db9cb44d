package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the build information shown by --version and the version command.
// It is called by main with values injected through ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionString() string {
	return fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date)
}

// rootOpts holds the persistent flags shared by every command.
type rootOpts struct {
	verbose    bool
	configPath string
}

// NewRootCommand builds the command tree. The logger is created before any
// subcommand runs and stored in the command context.
func NewRootCommand() *cobra.Command {
	var ro rootOpts

	root := &cobra.Command{
		Use:           appName,
		Short:         "Draw Mermaid flowcharts as text",
		Long:          `mermaid-ascii lays out flowcharts written in Mermaid, Graphviz DOT, D2 or PlantUML and draws them with box-drawing characters or plain ASCII.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if ro.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(versionString())
	root.PersistentFlags().BoolVarP(&ro.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&ro.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mermaid-ascii/config.toml)")

	root.AddCommand(newRenderCmd(&ro))
	root.AddCommand(newViewCmd(&ro))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionString())
		},
	}
}
