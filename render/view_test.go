package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termnav/navigation"
	"github.com/lixenwraith/termnav/scenario"
)

const viewScenario = `
name: tiny
width: 10
height: 5
obstacles:
  - {x: 4, y: 0, width: 1, height: 3}
agents:
  - name: bot
    at: {x: 0, y: 0}
    speed: 5
    strategy: navigate
    collision: slide
    target: {x: 8, y: 0}
  - name: post
    at: {x: 8, y: 4}
    strategy: static
`

func newTestView(t *testing.T) (tcell.SimulationScreen, *View, *Overlay, *scenario.World) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 8)

	sc, err := scenario.Parse(strings.NewReader(viewScenario))
	require.NoError(t, err)
	world, err := scenario.Build(sc, scenario.DefaultOptions())
	require.NoError(t, err)

	overlay := NewOverlay()
	return screen, NewView(screen, overlay), overlay, world
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(runeAt(s, x, y))
	}
	return b.String()
}

func TestView_DrawsObstaclesAndActors(t *testing.T) {
	screen, view, _, world := newTestView(t)

	view.Draw(world, false)

	for y := 0; y < 3; y++ {
		assert.Equal(t, glyphObstacle, runeAt(screen, 4, y), "wall cell (4,%d)", y)
	}
	assert.NotEqual(t, glyphObstacle, runeAt(screen, 4, 3))
	assert.Equal(t, 'p', runeAt(screen, 8, 4))
	assert.Equal(t, 'b', runeAt(screen, 0, 0))
}

func TestView_StatusLine(t *testing.T) {
	screen, view, _, world := newTestView(t)

	view.Draw(world, true)
	status := rowText(screen, 7)
	assert.Contains(t, status, "tiny")

	view.SetMessage("hello")
	view.Draw(world, false)
	status = rowText(screen, 7)
	assert.True(t, strings.HasPrefix(status, " tiny"))
}

func TestView_DrawsPlannedPath(t *testing.T) {
	screen, view, _, world := newTestView(t)

	world.Tick()
	nav, ok := world.Actor("bot").Strategy.(*navigation.Navigate)
	require.True(t, ok)
	require.NotNil(t, nav.Path())

	view.Draw(world, false)

	found := false
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if r := runeAt(screen, x, y); r == glyphWaypoint || r == glyphLocal {
				found = true
			}
		}
	}
	assert.True(t, found, "expected route glyphs on screen")
}

func TestView_OverlayToggle(t *testing.T) {
	screen, view, overlay, world := newTestView(t)
	overlay.Highlight(1, 4, navigation.MarkPath)

	view.Draw(world, false)
	_, _, style, _ := screen.GetContent(1, 4)
	assert.Equal(t, styleBase, style)

	assert.True(t, view.ToggleOverlay())
	view.Draw(world, false)
	_, _, style, _ = screen.GetContent(1, 4)
	assert.Equal(t, markStyles[navigation.MarkPath], style)
}

func TestView_TinyScreen(t *testing.T) {
	screen, view, _, world := newTestView(t)
	screen.SetSize(1, 1)

	assert.NotPanics(t, func() { view.Draw(world, false) })
}

func TestOverlay_ReplanDropsStaleMarks(t *testing.T) {
	sc, err := scenario.Parse(strings.NewReader(viewScenario))
	require.NoError(t, err)

	overlay := NewOverlay()
	opts := scenario.DefaultOptions()
	opts.Debug = overlay
	opts.Navigate.Show = true
	world, err := scenario.Build(sc, opts)
	require.NoError(t, err)

	overlay.Highlight(4, 1, navigation.MarkPath)
	world.Tick()

	m, ok := overlay.Mark(4, 1)
	require.True(t, ok)
	assert.Equal(t, navigation.MarkBlocked, m)
}
