package cli

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/Chickensoupwithrice/mermaid-ascii/render"
	"github.com/Chickensoupwithrice/mermaid-ascii/terminal"
)

// newScreen opens the terminal screen for the view command. Tests replace it with a
// simulation screen.
var newScreen = tcell.NewScreen

func newViewCmd(ro *rootOpts) *cobra.Command {
	opts := layoutOpts{rootOpts: ro}

	cmd := &cobra.Command{
		Use:   "view [file|-]",
		Short: "Draw a flowchart in a scrollable terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), cmd, args, &opts)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func runView(ctx context.Context, cmd *cobra.Command, args []string, opts *layoutOpts) error {
	logger := loggerFromContext(ctx)

	d, ro, useColor, name, err := opts.load(ctx, cmd, args)
	if err != nil {
		return err
	}
	c, err := render.RenderCanvas(d, ro)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}
	w, h := c.Size()
	logger.Debug("Opening viewer", "width", w, "height", h)

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	v := terminal.NewViewer(screen, c, displayName(name))
	if useColor {
		v.SetClassStyles(d.StyleClasses)
	}
	return v.Run(ctx)
}
