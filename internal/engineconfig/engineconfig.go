package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// EngineConfigPath is the path to the engine config file, relative to the
// process working directory.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds engine-only preferences (debug output, draw options,
// startup scenario). Persisted across runs; simulation state itself is not.
type EnginePrefs struct {
	// Scenario selects the startup world: "earth-moon", "cluster", or the
	// name of a scenario defined in ScenarioPath.
	Scenario string `json:"scenario"`
	// ScenarioPath is an optional YAML file with extra scenarios.
	ScenarioPath string `json:"scenario_path,omitempty"`
	// TimeWarp is the initial simulated-seconds-per-step multiplier.
	TimeWarp float64 `json:"time_warp"`
	// ShowStats prints camera/scale/FPS lines to the terminal.
	ShowStats bool `json:"show_stats"`
	// DrawQuads overlays the raw bounding quads under the circles.
	DrawQuads bool `json:"draw_quads"`
	// DebugLog enables debug-level lines in logs/gravity.txt.
	DebugLog bool `json:"debug_log"`
}

// Default returns default engine preferences: the Earth-Moon scenario with
// stats on and debug output off.
func Default() EnginePrefs {
	return EnginePrefs{
		Scenario:  "earth-moon",
		TimeWarp:  1.0,
		ShowStats: true,
	}
}

// Load reads engine preferences from config/engine.json, then applies any
// GRAVITY_* environment overrides (GRAVITY_SCENARIO, GRAVITY_TIME_WARP,
// GRAVITY_DEBUG). If the file is missing or invalid, starts from Default()
// and does not create a file.
func Load() (EnginePrefs, error) {
	p := Default()
	if data, err := os.ReadFile(EngineConfigPath); err == nil {
		if err := json.Unmarshal(data, &p); err != nil {
			p = Default()
		}
	}
	if v := os.Getenv("GRAVITY_SCENARIO"); v != "" {
		p.Scenario = v
	}
	if v := os.Getenv("GRAVITY_TIME_WARP"); v != "" {
		if tw, err := strconv.ParseFloat(v, 64); err == nil && tw > 0 {
			p.TimeWarp = tw
		}
	}
	if v := os.Getenv("GRAVITY_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			p.DebugLog = on
		}
	}
	if p.TimeWarp <= 0 {
		p.TimeWarp = 1.0
	}
	return p, nil
}

// Save writes engine preferences to config/engine.json, creating the config
// directory if needed.
func Save(p EnginePrefs) error {
	dir := filepath.Dir(EngineConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(EngineConfigPath, data, 0644)
}
