package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"snapgrab/internal/capture"
	"snapgrab/internal/frame"
)

const (
	InterfaceTray    = "tray"
	InterfaceOverlay = "overlay"
)

// ErrNotLoaded is returned by Save for settings that could not be read from
// disk, so a broken file is never replaced with defaults.
var ErrNotLoaded = errors.New("settings were not loaded from disk, not saving")

type Config struct {
	Hotkey          string          `json:"hotkey"`
	CopyToClipboard bool            `json:"copy_to_clipboard"`
	Interface       string          `json:"interface"`
	OutputPath      string          `json:"output_path"`
	Capture         CaptureSettings `json:"capture"`

	// fileOutputPath holds the saved output path while SNAPGRAB_OUTPUT
	// overrides OutputPath.
	fileOutputPath string
	envOutput      bool
	notLoaded      bool
}

// CaptureSettings is the file form of capture.Config.
type CaptureSettings struct {
	FrameRate        int           `json:"frame_rate"`
	Display          *int          `json:"display,omitempty"`
	ShowCursor       bool          `json:"show_cursor"`
	ShowHighlight    bool          `json:"show_highlight"`
	ExcludedTargets  []string      `json:"excluded_targets,omitempty"`
	OutputType       string        `json:"output_type"`
	OutputResolution string        `json:"output_resolution"`
	Crop             *capture.Area `json:"crop,omitempty"`
	Backend          string        `json:"backend"`
	FrameTimeoutMS   int           `json:"frame_timeout_ms"`
}

func Default() *Config {
	return &Config{
		Hotkey:          "Ctrl+Shift+S",
		CopyToClipboard: false,
		Interface:       InterfaceTray,
		OutputPath:      filepath.Join(defaultOutputDir(), "screenshot.png"),
		Capture: CaptureSettings{
			FrameRate:        1,
			OutputType:       frame.EncodingBGRA.String(),
			OutputResolution: capture.ResolutionNative.String(),
			Backend:          capture.BackendAuto,
			FrameTimeoutMS:   8000,
		},
	}
}

// Load reads the settings file, falling back to defaults when it does not
// exist, then applies environment overrides. If the file exists but cannot
// be read, Load returns the error together with usable defaults that Save
// refuses to write.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(configPath string) (*Config, error) {
	cfg := Default()

	var loadErr error
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		loadErr = err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			loadErr = fmt.Errorf("parse %s: %w", configPath, err)
		}
	}
	if loadErr != nil {
		cfg = Default()
		cfg.notLoaded = true
	}

	mergeEnv(cfg)
	if cfg.Interface == "" {
		cfg.Interface = InterfaceTray
	}
	return cfg, loadErr
}

// Save writes cfg to Path. It returns ErrNotLoaded for settings whose file
// could not be read, and never persists environment overrides.
func Save(cfg *Config) error {
	return saveTo(Path(), cfg)
}

// saveTo writes cfg with environment overrides replaced by the values they
// shadowed.
func saveTo(configPath string, cfg *Config) error {
	if cfg.notLoaded {
		return ErrNotLoaded
	}
	out := *cfg
	if cfg.envOutput {
		out.OutputPath = cfg.fileOutputPath
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Path is the settings file location. SNAPGRAB_CONFIG overrides it.
func Path() string {
	if p := strings.TrimSpace(os.Getenv("SNAPGRAB_CONFIG")); p != "" {
		return p
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "snapgrab", "config.json")
}

func mergeEnv(cfg *Config) {
	if env := strings.TrimSpace(os.Getenv("SNAPGRAB_OUTPUT")); env != "" {
		cfg.fileOutputPath = cfg.OutputPath
		cfg.envOutput = true
		cfg.OutputPath = env
	}
}

func defaultOutputDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, "Pictures", "snapgrab")
}

// EnsureOutputDir creates the directory the output image is written to.
func (c *Config) EnsureOutputDir() error {
	return os.MkdirAll(filepath.Dir(c.OutputPath), 0755)
}

// CaptureOptions converts the file settings into a capture configuration.
func (c *Config) CaptureOptions() (capture.Config, error) {
	s := c.Capture
	enc := frame.EncodingBGRA
	if s.OutputType != "" {
		var err error
		if enc, err = frame.ParseEncoding(s.OutputType); err != nil {
			return capture.Config{}, fmt.Errorf("%w: %v", capture.ErrInvalidConfig, err)
		}
	}
	res, err := capture.ParseResolution(s.OutputResolution)
	if err != nil {
		return capture.Config{}, fmt.Errorf("%w: %v", capture.ErrInvalidConfig, err)
	}

	if s.FrameRate == 0 {
		s.FrameRate = 1
	}

	cfg := capture.Config{
		FrameRate:        s.FrameRate,
		Display:          s.Display,
		ShowCursor:       s.ShowCursor,
		ShowHighlight:    s.ShowHighlight,
		ExcludedTargets:  s.ExcludedTargets,
		OutputType:       enc,
		OutputResolution: res,
		Crop:             s.Crop,
		Backend:          s.Backend,
		FrameTimeout:     time.Duration(s.FrameTimeoutMS) * time.Millisecond,
	}
	return cfg, cfg.Validate()
}
