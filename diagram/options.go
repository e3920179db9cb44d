package diagram

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
)

// Common errors
var (
	ErrEmptyDiagram       = errors.New("diagram has no nodes")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidOption      = errors.New("invalid render option")
)

// Hint keys understood by WithHints.
const (
	HintPaddingX      = "padding_x"
	HintPaddingY      = "padding_y"
	HintBorderPadding = "border_padding"
)

// Default values for Options.
const (
	DefaultBorderPadding = 1
	DefaultPaddingX      = 5
	DefaultPaddingY      = 5
)

// Options controls how a diagram is laid out and drawn.
type Options struct {
	// UseASCII draws with plain ASCII characters instead of box-drawing glyphs.
	UseASCII bool `toml:"ascii"`
	// BorderPadding is the number of blank cells between a node's label and its border.
	BorderPadding int `toml:"border_padding"`
	// PaddingBetweenColumns is the width of the gap column before a node.
	PaddingBetweenColumns int `toml:"padding_x"`
	// PaddingBetweenRows is the height of the gap row above a node.
	PaddingBetweenRows int `toml:"padding_y"`
	// Orientation overrides the diagram's orientation when set.
	Orientation Orientation `toml:"orientation"`

	// Logger receives layout progress at debug level. Nil discards it.
	Logger *log.Logger `toml:"-"`
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		BorderPadding:         DefaultBorderPadding,
		PaddingBetweenColumns: DefaultPaddingX,
		PaddingBetweenRows:    DefaultPaddingY,
	}
}

// Validate rejects negative sizes and unknown orientations.
func (o Options) Validate() error {
	if o.BorderPadding < 0 {
		return fmt.Errorf("%w: border padding %d", ErrInvalidOption, o.BorderPadding)
	}
	if o.PaddingBetweenColumns < 0 {
		return fmt.Errorf("%w: column padding %d", ErrInvalidOption, o.PaddingBetweenColumns)
	}
	if o.PaddingBetweenRows < 0 {
		return fmt.Errorf("%w: row padding %d", ErrInvalidOption, o.PaddingBetweenRows)
	}
	if o.Orientation != "" && o.Orientation != LeftRight && o.Orientation != TopDown {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, o.Orientation)
	}
	return nil
}

// OrientationFor returns the orientation to lay d out in.
func (o Options) OrientationFor(d *Diagram) Orientation {
	if o.Orientation != "" {
		return o.Orientation
	}
	if d != nil && d.Orientation != "" {
		return d.Orientation
	}
	return LeftRight
}

// Log returns the configured logger, or one that discards everything.
func (o Options) Log() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// WithHints returns a copy of o with the padding hints carried by d applied.
func (o Options) WithHints(d *Diagram) (Options, error) {
	if d == nil {
		return o, nil
	}
	for key, field := range map[string]*int{
		HintPaddingX:      &o.PaddingBetweenColumns,
		HintPaddingY:      &o.PaddingBetweenRows,
		HintBorderPadding: &o.BorderPadding,
	} {
		v, ok := d.Hints[key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return o, fmt.Errorf("%w: %s=%q", ErrInvalidOption, key, v)
		}
		*field = n
	}
	return o, nil
}
