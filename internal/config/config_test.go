package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"snapgrab/internal/capture"
	"snapgrab/internal/frame"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SNAPGRAB_OUTPUT", "")
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hotkey != "Ctrl+Shift+S" || cfg.Interface != InterfaceTray || cfg.CopyToClipboard {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if filepath.Base(cfg.OutputPath) != "screenshot.png" {
		t.Fatalf("output path = %q", cfg.OutputPath)
	}

	opts, err := cfg.CaptureOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.OutputType != frame.EncodingBGRA || opts.OutputResolution != capture.ResolutionNative ||
		opts.FrameRate != 1 || opts.FrameTimeout != 8*time.Second || opts.Backend != capture.BackendAuto {
		t.Fatalf("capture options = %+v", opts)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("SNAPGRAB_OUTPUT", "")
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	display := 1
	cfg := Default()
	cfg.Interface = InterfaceOverlay
	cfg.OutputPath = "/tmp/out.bmp"
	cfg.Capture.Display = &display
	cfg.Capture.Crop = &capture.Area{X: 10, Y: 20, Width: 300, Height: 200}
	cfg.Capture.OutputResolution = "720p"
	if err := saveTo(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Interface != InterfaceOverlay || got.OutputPath != "/tmp/out.bmp" {
		t.Fatalf("loaded %+v", got)
	}
	opts, err := got.CaptureOptions()
	if err != nil {
		t.Fatal(err)
	}
	if *opts.Display != 1 || *opts.Crop != (capture.Area{X: 10, Y: 20, Width: 300, Height: 200}) ||
		opts.OutputResolution != capture.Resolution720p {
		t.Fatalf("capture options = %+v", opts)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("SNAPGRAB_OUTPUT", "")
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"copy_to_clipboard": true}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.CopyToClipboard || cfg.Hotkey != "Ctrl+Shift+S" || cfg.Capture.FrameTimeoutMS != 8000 {
		t.Fatalf("loaded %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	if err := os.WriteFile(path, []byte(`{"output_path": "/from/file.png"}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SNAPGRAB_CONFIG", path)
	t.Setenv("SNAPGRAB_OUTPUT", filepath.Join(dir, "env.png"))

	if Path() != path {
		t.Fatalf("Path() = %q", Path())
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputPath != filepath.Join(dir, "env.png") {
		t.Fatalf("output path = %q", cfg.OutputPath)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Setenv("SNAPGRAB_OUTPUT", "")
	path := filepath.Join(t.TempDir(), "config.json")
	broken := []byte(`{"hotkey": `)
	if err := os.WriteFile(path, broken, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg == nil || cfg.Hotkey != "Ctrl+Shift+S" {
		t.Fatalf("expected usable defaults, got %+v", cfg)
	}

	cfg.CopyToClipboard = true
	if err := saveTo(path, cfg); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("save after failed load: err = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(broken) {
		t.Fatalf("settings file rewritten: %s", data)
	}
}

func TestEnvOutputIsNotSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"output_path": "/from/file.png"}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SNAPGRAB_OUTPUT", "/tmp/from-env.png")
	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputPath != "/tmp/from-env.png" {
		t.Fatalf("output path = %q", cfg.OutputPath)
	}
	cfg.CopyToClipboard = true
	if err := saveTo(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.OutputPath != "/tmp/from-env.png" {
		t.Fatalf("save changed the in-memory output path to %q", cfg.OutputPath)
	}

	t.Setenv("SNAPGRAB_OUTPUT", "")
	got, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputPath != "/from/file.png" {
		t.Fatalf("output path after override removed = %q, want /from/file.png", got.OutputPath)
	}
	if !got.CopyToClipboard {
		t.Fatal("toggle not saved")
	}
}

func TestCaptureOptionsRejectsBadValues(t *testing.T) {
	for name, mod := range map[string]func(*CaptureSettings){
		"encoding":   func(s *CaptureSettings) { s.OutputType = "CMYK" },
		"resolution": func(s *CaptureSettings) { s.OutputResolution = "999p" },
		"frame rate": func(s *CaptureSettings) { s.FrameRate = 500 },
		"crop":       func(s *CaptureSettings) { s.Crop = &capture.Area{Width: -1, Height: 5} },
	} {
		cfg := Default()
		mod(&cfg.Capture)
		if _, err := cfg.CaptureOptions(); !errors.Is(err, capture.ErrInvalidConfig) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestEnsureOutputDir(t *testing.T) {
	cfg := Default()
	cfg.OutputPath = filepath.Join(t.TempDir(), "a", "b", "shot.png")
	if err := cfg.EnsureOutputDir(); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(filepath.Dir(cfg.OutputPath)); err != nil || !fi.IsDir() {
		t.Fatalf("stat = %v, %v", fi, err)
	}
}
