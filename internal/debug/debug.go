package debug

import (
	"fmt"
	"runtime"
	"time"

	"gravity-sim/internal/physics"
)

const (
	// updateInterval: only refresh the stats text every N frames to keep
	// per-frame allocations out of the steady state.
	updateInterval = 30
)

// Stats prints frame statistics (camera, scale, time warp, FPS, heap) to the
// terminal, redrawing in place. Off by default; enabled via engine prefs.
type Stats struct {
	Show bool

	frameCount uint32
	lastFrames uint32
	lastTime   time.Time
	fps        float64
	memStats   runtime.MemStats
}

// New returns a Stats reporter with output hidden.
func New() *Stats {
	return &Stats{lastTime: time.Now()}
}

// Frame records one rendered frame and, every updateInterval frames while
// Show is set, rewrites the stats block. Call once per frame after drawing.
func (s *Stats) Frame(w *physics.World, timeWarp float64) {
	s.frameCount++
	if !s.Show || s.frameCount%updateInterval != 0 {
		return
	}

	now := time.Now()
	if dt := now.Sub(s.lastTime).Seconds(); dt > 0 {
		s.fps = float64(s.frameCount-s.lastFrames) / dt
	}
	s.lastFrames = s.frameCount
	s.lastTime = now
	runtime.ReadMemStats(&s.memStats)

	cam := w.CameraCoord
	// \x1bc clears the terminal so the block redraws in place.
	fmt.Print("\x1bc")
	fmt.Printf("Bodies: %d\n", len(w.Bodies))
	fmt.Printf("Camera: (%.4g, %.4g, %.4g)\n", cam.X, cam.Y, cam.Z)
	fmt.Printf("Zoom:   %.4g\n", w.Zoom)
	fmt.Printf("Time warp: %g\n", timeWarp)
	fmt.Printf("FPS: %.0f   Mem: %.2f MiB\n", s.fps, float64(s.memStats.Alloc)/(1024*1024))
}
