package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smartsession/backend/internal/engine"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Engine    EngineConfig    `yaml:"engine"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type BroadcastConfig struct {
	// TickInterval is the observer fan-out cadence, decoupled from frame
	// arrival rate.
	TickInterval time.Duration `yaml:"tick_interval"`
}

type EngineConfig struct {
	CalibrationFrames int     `yaml:"calibration_frames"`
	FurrowReduction   float64 `yaml:"furrow_reduction"`
	MouthFlatness     float64 `yaml:"mouth_flatness"`
	GazeRatio         float64 `yaml:"gaze_ratio"`
	StillWindowMs     int64   `yaml:"still_window_ms"`
	MovementMin       float64 `yaml:"movement_min"`
}

func defaultConfig() *Config {
	th := engine.DefaultThresholds()
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Broadcast: BroadcastConfig{
			TickInterval: 500 * time.Millisecond,
		},
		Engine: EngineConfig{
			CalibrationFrames: th.CalibrationFrames,
			FurrowReduction:   th.FurrowReduction,
			MouthFlatness:     th.MouthFlatness,
			GazeRatio:         th.GazeRatio,
			StillWindowMs:     th.StillWindowMs,
			MovementMin:       th.MovementMin,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load reads the config file over the defaults. A missing file is an error;
// callers that want pure defaults use Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Thresholds maps the engine section onto the engine's tunables.
func (c *Config) Thresholds() engine.Thresholds {
	return engine.Thresholds{
		CalibrationFrames: c.Engine.CalibrationFrames,
		FurrowReduction:   c.Engine.FurrowReduction,
		MouthFlatness:     c.Engine.MouthFlatness,
		GazeRatio:         c.Engine.GazeRatio,
		StillWindowMs:     c.Engine.StillWindowMs,
		MovementMin:       c.Engine.MovementMin,
	}
}
