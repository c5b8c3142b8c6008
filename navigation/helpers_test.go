package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/engine"
	"github.com/lixenwraith/termnav/physics"
)

const testFrame = 50 * time.Millisecond

// testWorld bundles a space, scheduler and integrator hook
type testWorld struct {
	space *physics.Space
	sched *engine.Scheduler
	sim   *Sim
	next  int
}

func newTestWorld(t *testing.T, width, height int) *testWorld {
	t.Helper()
	space := physics.NewSpace(width, height)
	sched := engine.NewScheduler(engine.NewSimClock(), testFrame)
	sched.AfterStep(physics.NewIntegrator(space).Apply)
	return &testWorld{
		space: space,
		sched: sched,
		sim:   NewSim(sched.Clock(), space, testFrame),
	}
}

func (w *testWorld) add(bounds core.Rect) *core.Element {
	w.next++
	el := core.NewElement(w.next, bounds)
	w.space.Add(el)
	return el
}

func (w *testWorld) wall(x, y, width, height float64) *core.Element {
	return w.add(core.NewRect(x, y, width, height))
}

func (w *testWorld) ticks(n int) {
	for i := 0; i < n; i++ {
		w.sched.Tick()
	}
}

// recorder collects planner marks
type recorder struct {
	marks  map[CellMark]int
	clears int
}

func newRecorder() *recorder {
	return &recorder{marks: make(map[CellMark]int)}
}

func (r *recorder) Highlight(x, y int, mark CellMark) {
	r.marks[mark]++
}

func (r *recorder) Clear() {
	clear(r.marks)
	r.clears++
}

func requireNear(t *testing.T, want, got core.Point, eps float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, eps, "x")
	require.InDelta(t, want.Y, got.Y, eps, "y")
}
