package main

import (
	"fmt"
	"os"

	"gravity-sim/internal/debug"
	"gravity-sim/internal/engineconfig"
	"gravity-sim/internal/env"
	"gravity-sim/internal/logger"
	"gravity-sim/internal/platform"
	"gravity-sim/internal/render"
	"gravity-sim/internal/scenario"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = env.Load(".env")
	prefs, _ := engineconfig.Load()

	log := logger.New()
	log.SetDebug(prefs.DebugLog)

	scen, err := scenario.Find(prefs.Scenario, prefs.ScenarioPath)
	if err != nil {
		return err
	}
	log.Infof("scenario %q with %d bodies", scen.Name, len(scen.Bodies))

	win, err := platform.New(1280, 800, "Gravitation Simulator")
	if err != nil {
		return err
	}
	defer win.Terminate()

	width, height := win.Size()
	renderer, err := render.New(win.Surface(), win.Adapter(), win.Device(), width, height, log)
	if err != nil {
		return err
	}
	defer renderer.Release()
	renderer.DrawQuads = prefs.DrawQuads

	pristine := scen.NewWorld()
	pristine.SetDebugLogger(log)

	a := &app{
		log:      log,
		renderer: renderer,
		stats:    debug.New(),
		pristine: pristine,
		world:    pristine.Clone(),
		timeWarp: prefs.TimeWarp,
	}
	a.stats.Show = prefs.ShowStats
	a.world.SetAspectRatio(float32(width) / float32(height))
	win.SetCallbacks(a.callbacks())

	err = win.Run(a.frameFn)

	// Persist the time warp the session ended with.
	prefs.TimeWarp = a.timeWarp
	if serr := engineconfig.Save(prefs); serr != nil {
		log.Errorf("saving prefs: %v", serr)
	}
	if err != nil {
		log.Errorf("session ended: %v", err)
		return err
	}
	return nil
}
