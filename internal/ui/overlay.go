package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"snapgrab/internal/app"
)

const overlaySize = 100

var (
	captureButton = image.Rect(5, 5, 95, 45)
	closeButton   = image.Rect(5, 55, 95, 95)

	buttonColor   = color.NRGBA{R: 0x2d, G: 0x8c, B: 0xf0, A: 0xe0}
	disabledColor = color.NRGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xc0}
	closeColor    = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xe0}
)

// Overlay is a small undecorated, transparent window pinned to the top-left
// corner of the screen with Capture and Close buttons.
type Overlay struct {
	ctrl   *app.Controller
	status string
}

func NewOverlay(ctrl *app.Controller) *Overlay {
	return &Overlay{ctrl: ctrl}
}

// Run opens the window and blocks until Close is pressed or the window is
// closed. Must be called from the main goroutine.
func (o *Overlay) Run() error {
	ebiten.SetWindowSize(overlaySize, overlaySize)
	ebiten.SetWindowTitle("SnapGrab")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(30)
	return ebiten.RunGameWithOptions(o, &ebiten.RunGameOptions{ScreenTransparent: true})
}

func (o *Overlay) Update() error {
	o.drainResults()

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}
	p := image.Pt(ebiten.CursorPosition())
	switch {
	case p.In(captureButton):
		if !o.ctrl.Disabled() && o.ctrl.Trigger() {
			o.status = "..."
		}
	case p.In(closeButton):
		return ebiten.Termination
	}
	return nil
}

func (o *Overlay) drainResults() {
	for {
		select {
		case res := <-o.ctrl.Results():
			switch {
			case o.ctrl.Disabled():
				o.status = "n/a"
			case res.Err != nil:
				o.status = "failed"
			default:
				o.status = "saved"
			}
		default:
			return
		}
	}
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	fill := buttonColor
	if o.ctrl.Disabled() {
		fill = disabledColor
	}
	drawButton(screen, captureButton, fill, "Capture", o.status)
	drawButton(screen, closeButton, closeColor, "Close", "")
}

func drawButton(screen *ebiten.Image, r image.Rectangle, fill color.Color, label, detail string) {
	screen.SubImage(r).(*ebiten.Image).Fill(fill)
	ebitenutil.DebugPrintAt(screen, label, r.Min.X+6, r.Min.Y+4)
	if detail != "" {
		ebitenutil.DebugPrintAt(screen, detail, r.Min.X+6, r.Min.Y+20)
	}
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return overlaySize, overlaySize
}
