package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Chickensoupwithrice/mermaid-ascii/config"
	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/export"
	"github.com/Chickensoupwithrice/mermaid-ascii/importer"
	"github.com/Chickensoupwithrice/mermaid-ascii/markdown"
	"github.com/Chickensoupwithrice/mermaid-ascii/render"
)

var errClipboardUnsupported = errors.New("clipboard is not available on this system")

// layoutOpts holds the flags shared by render and view. Each only takes effect when
// set on the command line; otherwise the config file and input directives apply.
type layoutOpts struct {
	*rootOpts

	ascii         bool
	paddingX      int
	paddingY      int
	borderPadding int
	orientation   string
	inputFormat   string
	block         int
	color         bool
}

func (o *layoutOpts) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.ascii, "ascii", false, "draw with plain ASCII instead of box-drawing characters")
	f.IntVarP(&o.paddingX, "padding-x", "x", diagram.DefaultPaddingX, "horizontal space between nodes")
	f.IntVarP(&o.paddingY, "padding-y", "y", diagram.DefaultPaddingY, "vertical space between nodes")
	f.IntVarP(&o.borderPadding, "border-padding", "p", diagram.DefaultBorderPadding, "space between a label and its box")
	f.StringVar(&o.orientation, "orientation", "", "flow direction: LR or TD (default from the input)")
	f.StringVar(&o.inputFormat, "input-format", "", fmt.Sprintf("input format: %s (default detected)", strings.Join(importer.NewRegistry().Formats(), ", ")))
	f.IntVar(&o.block, "block", 1, "diagram block to draw from a Markdown input, counting from 1")
	f.BoolVar(&o.color, "color", false, "colour nodes by their style class")
}

// loadConfig reads the --config file, or the default config file when one exists.
func (o *layoutOpts) loadConfig() (config.Config, string, error) {
	if o.rootOpts != nil && o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		return cfg, o.configPath, err
	}
	return config.LoadDefault()
}

// load reads and imports the input, then resolves the options to render it with.
func (o *layoutOpts) load(ctx context.Context, cmd *cobra.Command, args []string) (*diagram.Diagram, diagram.Options, bool, string, error) {
	logger := loggerFromContext(ctx)

	src, name, err := readInput(cmd, args)
	if err != nil {
		return nil, diagram.Options{}, false, "", err
	}
	format := o.inputFormat
	if markdown.IsMarkdown(name) {
		b, err := markdown.Select(src, o.block)
		if err != nil {
			return nil, diagram.Options{}, false, "", fmt.Errorf("%s: %w", displayName(name), err)
		}
		logger.Debug("Selected Markdown block", "block", b.Summary(o.block-1))
		src = b.Content
		if format == "" {
			format = b.Format()
		}
	}
	reg := importer.NewRegistry()
	var d *diagram.Diagram
	if format != "" {
		d, err = reg.ImportWithFormat(src, format)
	} else {
		d, err = reg.Import(src, name)
	}
	if err != nil {
		return nil, diagram.Options{}, false, "", fmt.Errorf("%s: %w", displayName(name), err)
	}
	logger.Debug("Imported diagram", "input", displayName(name), "nodes", len(d.Nodes), "edges", len(d.Records()))

	cfg, path, err := o.loadConfig()
	if err != nil {
		return nil, diagram.Options{}, false, "", err
	}
	if path != "" {
		logger.Debug("Loaded config", "path", path)
	}
	opts, useColor, err := o.resolve(cmd, cfg, d)
	if err != nil {
		return nil, diagram.Options{}, false, "", err
	}
	opts.Logger = logger
	return d, opts, useColor, name, nil
}

// resolve merges cfg, the input's directives and the flags changed on cmd, in
// increasing order of precedence. An orientation from the config file only applies
// to inputs that do not state one.
func (o *layoutOpts) resolve(cmd *cobra.Command, cfg config.Config, d *diagram.Diagram) (diagram.Options, bool, error) {
	opts := cfg.Options
	if d.Orientation != "" {
		opts.Orientation = ""
	}
	opts, err := opts.WithHints(d)
	if err != nil {
		return diagram.Options{}, false, err
	}

	flags := cmd.Flags()
	if flags.Changed("ascii") {
		opts.UseASCII = o.ascii
	}
	if flags.Changed("padding-x") {
		opts.PaddingBetweenColumns = o.paddingX
	}
	if flags.Changed("padding-y") {
		opts.PaddingBetweenRows = o.paddingY
	}
	if flags.Changed("border-padding") {
		opts.BorderPadding = o.borderPadding
	}
	if flags.Changed("orientation") {
		orientation, err := diagram.ParseOrientation(o.orientation)
		if err != nil {
			return diagram.Options{}, false, err
		}
		opts.Orientation = orientation
	}
	useColor := cfg.Color
	if flags.Changed("color") {
		useColor = o.color
	}
	if err := opts.Validate(); err != nil {
		return diagram.Options{}, false, err
	}
	return opts, useColor, nil
}

// renderOpts holds the flags of the render command.
type renderOpts struct {
	layoutOpts

	format string
	output string
	png    string
	copy   bool
}

func newRenderCmd(ro *rootOpts) *cobra.Command {
	opts := renderOpts{layoutOpts: layoutOpts{rootOpts: ro}}

	formats := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		formats = append(formats, string(f))
	}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Draw a flowchart as text",
		Long: `Render reads a flowchart from a file, or stdin when the file is "-" or missing,
and writes it as text. With --format the diagram is converted to another format instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd, args, &opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatText), "output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.png, "png", "", "also write the text rendering as a PNG image to this file")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "copy the output to the clipboard")

	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, args []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	d, ro, useColor, name, err := opts.load(ctx, cmd, args)
	if err != nil {
		return err
	}

	var text, styled string
	if format == export.FormatText || opts.png != "" {
		c, err := render.RenderCanvas(d, ro)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(name), err)
		}
		text = c.String()
		styled = text
		if useColor && opts.output == "" {
			styled = c.Styled(colorize(d.StyleClasses))
		}
		prog.done(fmt.Sprintf("Rendered %d nodes", len(d.Nodes)))
	}

	out, plain := styled, text
	if format != export.FormatText {
		e, err := export.NewExporter(format, ro)
		if err != nil {
			return err
		}
		if plain, err = e.Export(d); err != nil {
			return err
		}
		plain = strings.TrimRight(plain, "\n")
		out = plain
	}

	if err := writeOutput(cmd, opts.output, out); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess(cmd.ErrOrStderr(), "Wrote %s", format)
		printFile(cmd.ErrOrStderr(), opts.output)
	}

	if opts.png != "" {
		if err := writePNG(opts.png, text); err != nil {
			return err
		}
		printSuccess(cmd.ErrOrStderr(), "Wrote png")
		printFile(cmd.ErrOrStderr(), opts.png)
	}

	if opts.copy {
		if clipboard.Unsupported {
			return errClipboardUnsupported
		}
		if err := clipboard.WriteAll(plain); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		printInfo(cmd.ErrOrStderr(), "Copied to clipboard")
	}
	return nil
}

func writeOutput(cmd *cobra.Command, path, s string) error {
	out, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if err := export.WriteText(out, s); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writePNG(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.PNG(f, text, export.DefaultPNGOptions()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
