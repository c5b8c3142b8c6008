package scenario

import (
	"fmt"
	"math/rand"
	"time"
)

// MazeOptions shapes a generated maze scenario
type MazeOptions struct {
	Width, Height int // Rounded down to odd, minimum 5

	// Braiding is the chance a dead end gets opened into a loop, 0 yields a perfect maze
	Braiding float64

	Seed  int64   // 0 picks a time-based seed
	Speed float64 // Runner speed, 0 uses 8
}

type mazeCell struct{ x, y int }

var (
	mazeJumps = []mazeCell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	mazeSides = []mazeCell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// Maze builds a scenario with a carved maze and a navigating runner
// The runner starts in the top-left room and targets the bottom-right room
func Maze(opts MazeOptions) (*Scenario, error) {
	if opts.Width < 5 || opts.Height < 5 {
		return nil, fmt.Errorf("%w: maze must be at least 5x5, got %dx%d", ErrInvalidScenario, opts.Width, opts.Height)
	}
	if opts.Braiding < 0 || opts.Braiding > 1 {
		return nil, fmt.Errorf("%w: braiding %v outside [0,1]", ErrInvalidScenario, opts.Braiding)
	}
	if opts.Speed < 0 {
		return nil, fmt.Errorf("%w: negative speed", ErrInvalidScenario)
	}
	if opts.Speed == 0 {
		opts.Speed = 8
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	walls := carveMaze(oddFloor(opts.Width), oddFloor(opts.Height), rng)
	if opts.Braiding > 0 {
		braidMaze(walls, opts.Braiding, rng)
	}

	rows, cols := len(walls), len(walls[0])
	sc := &Scenario{
		Name:      fmt.Sprintf("maze-%d", seed),
		Width:     cols,
		Height:    rows,
		Obstacles: wallRuns(walls),
		Agents: []Agent{{
			Name:      "runner",
			At:        Point{X: 1, Y: 1},
			Speed:     opts.Speed,
			Strategy:  KindNavigate,
			Collision: CollisionSlide,
			Target:    &Point{X: float64(cols - 2), Y: float64(rows - 2)},
		}},
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func oddFloor(n int) int {
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// carveMaze runs an iterative backtracker over odd rooms, true marks wall
func carveMaze(cols, rows int, rng *rand.Rand) [][]bool {
	walls := make([][]bool, rows)
	for y := range walls {
		walls[y] = make([]bool, cols)
		for x := range walls[y] {
			walls[y][x] = true
		}
	}

	start := mazeCell{1, 1}
	walls[start.y][start.x] = false
	stack := []mazeCell{start}
	open := make([]mazeCell, 0, len(mazeJumps))

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		open = open[:0]
		for _, d := range mazeJumps {
			nx, ny := cur.x+d.x, cur.y+d.y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && walls[ny][nx] {
				open = append(open, d)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := open[rng.Intn(len(open))]
		walls[cur.y+d.y/2][cur.x+d.x/2] = false
		next := mazeCell{cur.x + d.x, cur.y + d.y}
		walls[next.y][next.x] = false
		stack = append(stack, next)
	}
	return walls
}

// braidMaze opens a wall next to dead ends with the given probability
// Openings that would leave a 2x2 clearing or a free-standing pillar are skipped
func braidMaze(walls [][]bool, p float64, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	candidates := make([]mazeCell, 0, len(mazeJumps))

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if walls[y][x] {
				continue
			}
			exits := 0
			for _, d := range mazeSides {
				if !walls[y+d.y][x+d.x] {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= p {
				continue
			}

			candidates = candidates[:0]
			for _, d := range mazeJumps {
				nx, ny := x+d.x, y+d.y
				wx, wy := x+d.x/2, y+d.y/2
				if nx <= 0 || nx >= cols-1 || ny <= 0 || ny >= rows-1 {
					continue
				}
				if !walls[ny][nx] && walls[wy][wx] && safeToOpen(walls, wx, wy) {
					candidates = append(candidates, mazeCell{wx, wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				walls[c.y][c.x] = false
			}
		}
	}
}

func safeToOpen(walls [][]bool, x, y int) bool {
	rows, cols := len(walls), len(walls[0])
	wall := func(tx, ty int) bool {
		return tx < 0 || tx >= cols || ty < 0 || ty >= rows || walls[ty][tx]
	}

	// 2x2 clearings
	for _, q := range [][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if !wall(x+q[0], y) && !wall(x, y+q[1]) && !wall(x+q[0], y+q[1]) {
			return false
		}
	}

	// Pillars
	for _, d := range mazeSides {
		nx, ny := x+d.x, y+d.y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || !walls[ny][nx] {
			continue
		}
		linked := false
		for _, d2 := range mazeSides {
			ax, ay := nx+d2.x, ny+d2.y
			if ax == x && ay == y {
				continue
			}
			if ax >= 0 && ax < cols && ay >= 0 && ay < rows && walls[ay][ax] {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	return true
}

// wallRuns merges horizontal wall runs into obstacle boxes
func wallRuns(walls [][]bool) []Box {
	var boxes []Box
	for y, row := range walls {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			end := x
			for end < len(row) && row[end] {
				end++
			}
			boxes = append(boxes, Box{X: float64(x), Y: float64(y), Width: float64(end - x), Height: 1})
			x = end
		}
	}
	return boxes
}
