package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/navigation"
)

func wallCells(sc *Scenario) map[[2]int]bool {
	cells := make(map[[2]int]bool)
	for _, b := range sc.Obstacles {
		for x := int(b.X); x < int(b.X+b.Width); x++ {
			cells[[2]int{x, int(b.Y)}] = true
		}
	}
	return cells
}

func TestMaze_Shape(t *testing.T) {
	sc, err := Maze(MazeOptions{Width: 22, Height: 12, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, 21, sc.Width)
	assert.Equal(t, 11, sc.Height)
	require.Len(t, sc.Agents, 1)
	runner := sc.Agents[0]
	assert.Equal(t, KindNavigate, runner.Strategy)
	assert.Equal(t, 8.0, runner.Speed)

	walls := wallCells(sc)
	assert.False(t, walls[[2]int{1, 1}], "start room open")
	assert.False(t, walls[[2]int{19, 9}], "exit room open")
	for x := 0; x < sc.Width; x++ {
		assert.True(t, walls[[2]int{x, 0}], "top border at %d", x)
		assert.True(t, walls[[2]int{x, sc.Height - 1}], "bottom border at %d", x)
	}
}

func TestMaze_Deterministic(t *testing.T) {
	a, err := Maze(MazeOptions{Width: 15, Height: 15, Seed: 42, Braiding: 0.3})
	require.NoError(t, err)
	b, err := Maze(MazeOptions{Width: 15, Height: 15, Seed: 42, Braiding: 0.3})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMaze_BraidingOpensLoops(t *testing.T) {
	perfect, err := Maze(MazeOptions{Width: 31, Height: 21, Seed: 3})
	require.NoError(t, err)
	braided, err := Maze(MazeOptions{Width: 31, Height: 21, Seed: 3, Braiding: 1})
	require.NoError(t, err)

	assert.Less(t, len(wallCells(braided)), len(wallCells(perfect)))
}

func TestMaze_ExitReachable(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		sc, err := Maze(MazeOptions{Width: 25, Height: 15, Seed: seed, Braiding: 0.5})
		require.NoError(t, err)

		obstacles := make([]core.Rect, len(sc.Obstacles))
		for i, b := range sc.Obstacles {
			obstacles[i] = core.NewRect(b.X, b.Y, b.Width, b.Height)
		}
		start := core.NewRect(1, 1, 1, 1)
		exit := core.NewRect(float64(sc.Width-2), float64(sc.Height-2), 1, 1)

		path := findMazePath(sc, start, exit, obstacles)
		assert.NotEmpty(t, path, "seed %d", seed)
	}
}

func TestMaze_Builds(t *testing.T) {
	sc, err := Maze(MazeOptions{Width: 11, Height: 9, Seed: 9})
	require.NoError(t, err)

	w, err := Build(sc, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, w.Actors, 1)
	assert.Equal(t, 1, w.Scheduler.Len())
}

func TestMaze_Rejects(t *testing.T) {
	for name, opts := range map[string]MazeOptions{
		"too small":      {Width: 4, Height: 9},
		"braid too high": {Width: 9, Height: 9, Braiding: 1.5},
		"negative speed": {Width: 9, Height: 9, Speed: -1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Maze(opts)
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func findMazePath(sc *Scenario, start, target core.Rect, obstacles []core.Rect) []core.Point {
	return navigation.FindPath(sc.Width, sc.Height, start, target, obstacles, nil)
}
