// Package ui hosts the control surfaces that trigger captures: a system tray
// menu and a small always-on-top overlay window.
package ui

import (
	"errors"
	"log"

	"github.com/getlantern/systray"

	"snapgrab/internal/app"
	"snapgrab/internal/config"
	"snapgrab/internal/hotkey"
	"snapgrab/internal/startup"
)

// RunTray shows the tray menu and blocks until the user quits.
func RunTray(ctrl *app.Controller, cfg *config.Config) {
	t := &tray{ctrl: ctrl, cfg: cfg}
	systray.Run(t.onReady, t.onExit)
}

type tray struct {
	ctrl *app.Controller
	cfg  *config.Config
}

func (t *tray) onReady() {
	systray.SetIcon(trayIcon())
	systray.SetTitle("SnapGrab")

	mCapture := systray.AddMenuItem("Capture", "Capture the screen to "+t.cfg.OutputPath)
	systray.AddSeparator()

	if err := hotkey.Register(t.cfg.Hotkey, func() { t.ctrl.Trigger() }); err != nil {
		if !errors.Is(err, hotkey.ErrUnsupported) {
			log.Printf("Warning: Failed to register hotkey: %v", err)
		}
		systray.SetTooltip("SnapGrab")
	} else {
		systray.SetTooltip("SnapGrab - Press " + t.cfg.Hotkey + " to capture")
		mHotkey := systray.AddMenuItem("Hotkey: "+t.cfg.Hotkey, "Current screenshot hotkey")
		mHotkey.Disable()
	}

	mCopyClipboard := systray.AddMenuItemCheckbox("Copy to Clipboard", "Copy screenshot to clipboard", t.cfg.CopyToClipboard)
	mStartup := systray.AddMenuItemCheckbox("Start on Login", "Start SnapGrab when you log in", startup.IsEnabled())
	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Quit SnapGrab")

	if t.ctrl.Disabled() {
		mCapture.Disable()
	}

	go t.watchResults(mCapture)

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				t.ctrl.Trigger()
			case <-mCopyClipboard.ClickedCh:
				on := !mCopyClipboard.Checked()
				t.ctrl.SetCopyToClipboard(on)
				t.cfg.CopyToClipboard = on
				if on {
					mCopyClipboard.Check()
				} else {
					mCopyClipboard.Uncheck()
				}
				if err := config.Save(t.cfg); err != nil {
					log.Printf("Failed to save config: %v", err)
				}
			case <-mStartup.ClickedCh:
				if mStartup.Checked() {
					if err := startup.Disable(); err != nil {
						log.Printf("Failed to disable start on login: %v", err)
					} else {
						mStartup.Uncheck()
					}
				} else {
					if err := startup.Enable(); err != nil {
						log.Printf("Failed to enable start on login: %v", err)
					} else {
						mStartup.Check()
					}
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

// watchResults keeps the tooltip on the latest outcome and greys out the
// Capture item once capture is disabled.
func (t *tray) watchResults(mCapture *systray.MenuItem) {
	for res := range t.ctrl.Results() {
		if t.ctrl.Disabled() {
			mCapture.Disable()
			systray.SetTooltip("SnapGrab - screen capture unavailable")
			continue
		}
		if res.Err != nil {
			systray.SetTooltip("SnapGrab - last capture failed")
		} else {
			systray.SetTooltip("SnapGrab - saved " + res.Path)
		}
	}
}

func (t *tray) onExit() {
	hotkey.Unregister()
}
