// Package config handles figtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Geometry GeometryConfig `yaml:"geometry"`
	Rig      RigConfig      `yaml:"rig"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GeometryConfig holds default tessellation densities.
type GeometryConfig struct {
	Slices int `yaml:"slices"`
	Stacks int `yaml:"stacks"`
}

// RigConfig holds humanoid proportions and clip authoring settings.
type RigConfig struct {
	Height     float32 `yaml:"height"`      // Total figure height in world units
	Slices     int     `yaml:"slices"`      // Limb tessellation; 0 uses geometry.slices
	Stacks     int     `yaml:"stacks"`      // Joint tessellation; 0 uses geometry.stacks
	StepFrames int     `yaml:"step_frames"` // Frames between walk keys
	WalkStart  int     `yaml:"walk_start"`  // First frame of the walk clip
	WaveStart  int     `yaml:"wave_start"`  // First frame of the wave clip
	LegSwing   float32 `yaml:"leg_swing"`   // Radians
	ArmSwing   float32 `yaml:"arm_swing"`   // Radians
	FPS        float32 `yaml:"fps"`         // Playback rate for times given in seconds
}

// ExportConfig holds glTF export settings.
type ExportConfig struct {
	Path   string  `yaml:"path"`
	Binary bool    `yaml:"binary"`
	Frame  float32 `yaml:"frame"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Geometry: GeometryConfig{
			Slices: 16,
			Stacks: 8,
		},
		Rig: RigConfig{
			Height:     1.8,
			StepFrames: 10,
			WalkStart:  0,
			WaveStart:  100,
			LegSwing:   0.5,
			ArmSwing:   0.35,
			FPS:        30,
		},
		Export: ExportConfig{
			Path:   "figure.glb",
			Binary: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// RigSlices returns the rig tessellation, falling back to the geometry default.
func (c *Config) RigSlices() int {
	if c.Rig.Slices > 0 {
		return c.Rig.Slices
	}
	return c.Geometry.Slices
}

// RigStacks returns the rig sphere stacks, falling back to the geometry default.
func (c *Config) RigStacks() int {
	if c.Rig.Stacks > 0 {
		return c.Rig.Stacks
	}
	return c.Geometry.Stacks
}

// FrameAt converts a playback time in seconds to a frame at the rig's FPS.
func (c *Config) FrameAt(seconds float32) float32 {
	return seconds * c.Rig.FPS
}

// Validate reports settings that no component can work with.
// Tessellation minimums are left to the geometry generators.
func (c *Config) Validate() error {
	var errs []error
	if c.Rig.Height <= 0 {
		errs = append(errs, fmt.Errorf("rig.height must be positive, got %v", c.Rig.Height))
	}
	if c.Rig.StepFrames <= 0 {
		errs = append(errs, fmt.Errorf("rig.step_frames must be positive, got %d", c.Rig.StepFrames))
	}
	if c.Rig.FPS <= 0 {
		errs = append(errs, fmt.Errorf("rig.fps must be positive, got %v", c.Rig.FPS))
	}
	if c.Export.Path == "" {
		errs = append(errs, errors.New("export.path is empty"))
	}
	return errors.Join(errs...)
}
