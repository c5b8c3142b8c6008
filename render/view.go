// Package render draws a running scenario onto a tcell screen
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/navigation"
	"github.com/lixenwraith/termnav/scenario"
)

// Glyphs
const (
	glyphObstacle = '█'
	glyphWaypoint = '·'
	glyphLocal    = '+'
	glyphStuck    = '!'
)

var (
	styleBase     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleObstacle = styleBase.Foreground(tcell.ColorGray)
	styleWaypoint = styleBase.Foreground(tcell.ColorTeal)
	styleLocal    = styleBase.Foreground(tcell.ColorAqua).Bold(true)
	styleStatus   = styleBase.Foreground(tcell.ColorSilver).Reverse(true)

	markStyles = map[navigation.CellMark]tcell.Style{
		navigation.MarkBlocked: styleBase.Background(tcell.NewRGBColor(64, 0, 0)),
		navigation.MarkVisited: styleBase.Background(tcell.NewRGBColor(24, 24, 48)),
		navigation.MarkPath:    styleBase.Background(tcell.NewRGBColor(0, 64, 0)),
	}

	kindStyles = map[string]tcell.Style{
		scenario.KindWander:   styleBase.Foreground(tcell.ColorYellow).Bold(true),
		scenario.KindNavigate: styleBase.Foreground(tcell.ColorGreen).Bold(true),
		scenario.KindPuppet:   styleBase.Foreground(tcell.ColorFuchsia).Bold(true),
		scenario.KindStatic:   styleBase.Foreground(tcell.ColorBlue),
	}
)

// View renders world state, the bottom row is a status line
type View struct {
	screen      tcell.Screen
	overlay     *Overlay
	showOverlay bool
	message     string
}

// NewView draws onto screen, overlay may be nil
func NewView(screen tcell.Screen, overlay *Overlay) *View {
	return &View{screen: screen, overlay: overlay}
}

// ToggleOverlay flips planner mark display, returns the new state
func (v *View) ToggleOverlay() bool {
	v.showOverlay = !v.showOverlay
	return v.showOverlay
}

// SetMessage shows text in the status line until replaced
func (v *View) SetMessage(msg string) {
	v.message = msg
}

// Draw renders one frame
func (v *View) Draw(w *scenario.World, paused bool) {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	if sw <= 0 || sh <= 1 {
		v.screen.Show()
		return
	}
	rows := sh - 1

	put := func(x, y int, r rune, style tcell.Style) {
		if x >= 0 && y >= 0 && x < sw && y < rows {
			v.screen.SetContent(x, y, r, nil, style)
		}
	}

	width, height := w.Space.Size()
	for y := 0; y < min(height, rows); y++ {
		for x := 0; x < min(width, sw); x++ {
			style := styleBase
			if v.showOverlay && v.overlay != nil {
				if m, ok := v.overlay.Mark(x, y); ok {
					style = markStyles[m]
				}
			}
			put(x, y, ' ', style)
		}
	}

	for _, o := range w.Obstacles {
		if !o.IsAlive() {
			continue
		}
		fill(o.Bounds(), width, height, func(x, y int) { put(x, y, glyphObstacle, styleObstacle) })
	}

	for _, a := range w.Actors {
		if n, ok := a.Strategy.(*navigation.Navigate); ok && n.Outcome() == navigation.OutcomeRunning {
			if p := n.Path(); p != nil {
				for _, wp := range p.Waypoints() {
					x, y := core.CellOf(wp)
					put(x, y, glyphWaypoint, styleWaypoint)
				}
			}
			if local, ok := n.LocalTarget(); ok {
				x, y := core.CellOf(local.Center())
				put(x, y, glyphLocal, styleLocal)
			}
		}
	}

	for _, a := range w.Actors {
		if !a.Element.IsAlive() {
			continue
		}
		glyph := actorGlyph(a)
		style := kindStyles[a.Kind]
		fill(a.Element.Bounds(), width, height, func(x, y int) { put(x, y, glyph, style) })
	}

	v.drawStatus(w, paused, sw, sh-1)
	v.screen.Show()
}

func actorGlyph(a *scenario.Actor) rune {
	if a.Strategy != nil && a.Strategy.IsStuck() {
		return glyphStuck
	}
	for _, r := range a.Name {
		return r
	}
	return '@'
}

func (v *View) drawStatus(w *scenario.World, paused bool, sw, y int) {
	running := 0
	for _, a := range w.Actors {
		if a.Strategy != nil && a.Strategy.Outcome() == navigation.OutcomeRunning {
			running++
		}
	}
	state := "running"
	if paused {
		state = "paused"
	}
	line := fmt.Sprintf(" %s  t=%-8v %-7s active=%d/%d  [space] pause [d] overlay [y] copy [q] quit ",
		w.Name, w.Scheduler.Now(), state, running, len(w.Actors))
	if v.message != "" {
		line += " | " + v.message
	}

	x := 0
	for _, r := range line {
		if x >= sw {
			break
		}
		v.screen.SetContent(x, y, r, nil, styleStatus)
		x++
	}
	for ; x < sw; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

// fill calls fn for every in-world cell covered by r
func fill(r core.Rect, width, height int, fn func(x, y int)) {
	a := core.CellsOf(r, width, height)
	for y := a.Y; y < a.Y+a.Height; y++ {
		for x := a.X; x < a.X+a.Width; x++ {
			fn(x, y)
		}
	}
}
