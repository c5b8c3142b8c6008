// Command nav-sandbox runs a movement scenario in the terminal
package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termnav/config"
	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/engine"
	"github.com/lixenwraith/termnav/render"
	"github.com/lixenwraith/termnav/scenario"
)

//go:embed corridor.yaml
var defaultScenario []byte

func main() {
	scenarioPath := flag.String("scenario", "", "scenario yaml file (default: built-in corridor)")
	configPath := flag.String("config", "", "toml config file")
	logPath := flag.String("log", "", "log file, overrides config")
	maze := flag.Bool("maze", false, "generate a maze instead of loading a scenario")
	seed := flag.Int64("seed", 0, "maze seed, 0 picks one")
	braid := flag.Float64("braid", 0.2, "maze dead-end braiding probability")
	flag.Parse()

	// Mazes fill the screen above the status line
	source := func(cols, rows int) (*scenario.Scenario, error) {
		switch {
		case *maze:
			return scenario.Maze(scenario.MazeOptions{Width: cols, Height: rows - 1, Braiding: *braid, Seed: *seed})
		case *scenarioPath != "":
			return scenario.LoadFile(*scenarioPath)
		default:
			return scenario.Parse(bytes.NewReader(defaultScenario))
		}
	}

	if err := run(source, *configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "nav-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run(source func(cols, rows int) (*scenario.Scenario, error), configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logPath != "" {
		cfg.Log.File = logPath
	}

	logger, closer, err := config.Logger(cfg.Log, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetResetHook(screen.Fini)
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	sc, err := source(screen.Size())
	if err != nil {
		return err
	}

	overlay := render.NewOverlay()
	opts := scenario.DefaultOptions()
	opts.TickInterval = cfg.Engine.TickInterval
	opts.Wander = cfg.WanderOptions()
	opts.Navigate = cfg.NavigateOptions()
	opts.Navigate.Show = true
	opts.Log = logger
	opts.Debug = overlay

	world, err := scenario.Build(sc, opts)
	if err != nil {
		return err
	}

	view := render.NewView(screen, overlay)
	clock := world.Scheduler.Clock()

	// Ticks are forwarded into the event loop so the world is only touched here
	driver := engine.NewDriver(clock, opts.TickInterval, func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	driver.Start()
	defer driver.Stop()

	logger.Info("sandbox started", "scenario", world.Name, "actors", len(world.Actors))

	view.Draw(world, clock.IsPaused())
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			world.Tick()
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if quit := handleKey(ev, world, view); quit {
				logger.Info("sandbox stopped", "t", world.Scheduler.Now())
				return nil
			}
		}
		view.Draw(world, clock.IsPaused())
	}
}

func handleKey(ev *tcell.EventKey, world *scenario.World, view *render.View) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		if world.Scheduler.Clock().Toggle() {
			view.SetMessage("paused")
		} else {
			view.SetMessage("")
		}
	case 'd':
		if view.ToggleOverlay() {
			view.SetMessage("overlay on")
		} else {
			view.SetMessage("overlay off")
		}
	case 'y':
		if err := clipboard.WriteAll(world.Report()); err != nil {
			view.SetMessage("copy failed: " + err.Error())
		} else {
			view.SetMessage("report copied")
		}
	}
	return false
}
