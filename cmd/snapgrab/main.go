package main

import (
	"fmt"
	"log"
	"os"

	"snapgrab/internal/app"
	"snapgrab/internal/capability"
	"snapgrab/internal/capture"
	"snapgrab/internal/config"
	"snapgrab/internal/instance"
	"snapgrab/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Hosts that cannot capture exit cleanly before any UI is shown.
	if err := capability.CheckHost(); err != nil {
		fmt.Fprintf(os.Stderr, "snapgrab: %v\n", err)
		return 0
	}

	lock, err := instance.Acquire("snapgrab")
	if err != nil {
		log.Printf("Cannot start: %v", err)
		return 1
	}
	defer lock.Release()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v, using defaults without saving changes", err)
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		log.Printf("Failed to create output directory: %v", err)
	}

	opts, err := cfg.CaptureOptions()
	if err != nil {
		log.Printf("Invalid capture settings: %v, using defaults", err)
		opts = capture.DefaultConfig()
	}

	ctrl := app.New(capture.NewLazy(nil), app.Options{
		Capture:         opts,
		OutputPath:      cfg.OutputPath,
		CopyToClipboard: cfg.CopyToClipboard,
		OnDisabled: func(err error) {
			log.Printf("Screen capture disabled: %v", err)
		},
	})
	defer ctrl.Close()

	switch cfg.Interface {
	case config.InterfaceTray:
		ui.RunTray(ctrl, cfg)
	case config.InterfaceOverlay:
		if err := ui.NewOverlay(ctrl).Run(); err != nil {
			log.Printf("Overlay window failed: %v", err)
			return 1
		}
	default:
		log.Printf("Unknown interface %q", cfg.Interface)
		return 1
	}
	return 0
}
