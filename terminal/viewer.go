// Package terminal shows rendered diagrams in an interactive, scrollable terminal view.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Chickensoupwithrice/mermaid-ascii/canvas"
	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
)

// Styles
var (
	styleDefault = tcell.StyleDefault
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
)

const helpText = "arrows/hjkl scroll  PgUp/PgDn page  g/G top/bottom  q quit"

// Viewer displays a canvas on a tcell screen. The last screen row is a status bar;
// the rows above it show the part of the canvas at the scroll offset.
type Viewer struct {
	screen tcell.Screen
	canvas *canvas.Canvas
	title  string
	styles map[string]tcell.Style

	x, y int
}

// NewViewer creates a viewer of c on screen. The screen is initialised by Run.
func NewViewer(screen tcell.Screen, c *canvas.Canvas, title string) *Viewer {
	return &Viewer{
		screen: screen,
		canvas: c,
		title:  title,
		styles: make(map[string]tcell.Style),
	}
}

// SetClassStyles colours cells tagged with a style class. The "color" property sets
// the foreground, "fill" the background, and "font-weight: bold" makes text bold.
func (v *Viewer) SetClassStyles(classes map[string]diagram.StyleClass) {
	for name, sc := range classes {
		style := styleDefault
		if c, ok := sc.Styles["color"]; ok {
			style = style.Foreground(tcell.GetColor(c))
		}
		if c, ok := sc.Styles["fill"]; ok {
			style = style.Background(tcell.GetColor(c))
		}
		if sc.Styles["font-weight"] == "bold" {
			style = style.Bold(true)
		}
		v.styles[name] = style
	}
}

// Offset returns the canvas cell shown at the top left of the screen.
func (v *Viewer) Offset() (x, y int) {
	return v.x, v.y
}

// Run initialises the screen and shows the canvas until the user quits or ctx is
// cancelled. The screen is finalised before Run returns.
func (v *Viewer) Run(ctx context.Context) error {
	if err := v.screen.Init(); err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	defer v.screen.Fini()
	v.screen.Clear()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
		case <-done:
		}
	}()

	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.clamp()
			v.screen.Sync()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			if err, ok := ev.Data().(error); ok && err != nil {
				return err
			}
		}
	}
}

// HandleKey applies a key press and reports whether the viewer should close.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	_, page := v.viewport()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.y--
	case tcell.KeyDown:
		v.y++
	case tcell.KeyLeft:
		v.x--
	case tcell.KeyRight:
		v.x++
	case tcell.KeyPgUp:
		v.y -= page
	case tcell.KeyPgDn:
		v.y += page
	case tcell.KeyHome:
		v.x, v.y = 0, 0
	case tcell.KeyEnd:
		v.y = v.maxY()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			v.y--
		case 'j':
			v.y++
		case 'h':
			v.x--
		case 'l':
			v.x++
		case 'g':
			v.x, v.y = 0, 0
		case 'G':
			v.y = v.maxY()
		}
	}
	v.clamp()
	return false
}

// viewport returns the size of the canvas area of the screen.
func (v *Viewer) viewport() (width, height int) {
	w, h := v.screen.Size()
	return w, max(h-1, 1)
}

func (v *Viewer) maxX() int {
	cw, _ := v.canvas.Size()
	w, _ := v.viewport()
	return max(cw-w, 0)
}

func (v *Viewer) maxY() int {
	_, ch := v.canvas.Size()
	_, h := v.viewport()
	return max(ch-h, 0)
}

func (v *Viewer) clamp() {
	v.x = min(max(v.x, 0), v.maxX())
	v.y = min(max(v.y, 0), v.maxY())
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.viewport()
	cw, ch := v.canvas.Size()

	for row := 0; row < h && v.y+row < ch; row++ {
		for col := 0; col < w && v.x+col < cw; col++ {
			p := geometry.CanvasCoord{X: v.x + col, Y: v.y + row}
			r := v.canvas.Get(p)
			if r == 0 {
				continue
			}
			style := styleDefault
			if s, ok := v.styles[v.canvas.Class(p)]; ok {
				style = s
			}
			v.screen.SetContent(col, row, r, nil, style)
		}
	}
	v.drawStatus(w, h)
}

func (v *Viewer) drawStatus(w, row int) {
	cw, ch := v.canvas.Size()
	status := fmt.Sprintf(" %s  %dx%d  at %d,%d ", v.title, cw, ch, v.x, v.y)
	for col := 0; col < w; col++ {
		v.screen.SetContent(col, row, ' ', nil, styleStatus)
	}
	col := drawText(v.screen, 0, row, w, status, styleStatus)
	if rest := w - col; rest > len(helpText)+1 {
		drawText(v.screen, w-len(helpText)-1, row, w, helpText, styleHelp)
	}
}

// drawText writes s from column x, clipped at width, and returns the column after it.
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	for _, r := range strings.ReplaceAll(text, "\n", " ") {
		if x >= width {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += max(canvas.RuneWidth(r), 1)
	}
	return x
}
