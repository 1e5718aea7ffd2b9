package portal

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestParseResponse(t *testing.T) {
	results := map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/shot.png")}

	got, err := parseResponse([]any{Success, results})
	if err != nil {
		t.Fatalf("success: %v", err)
	}
	if got["uri"].Value().(string) != "file:///tmp/shot.png" {
		t.Fatalf("uri = %v", got["uri"])
	}

	if _, err := parseResponse([]any{Cancelled, results}); !errors.Is(err, ErrCancelled) {
		t.Fatalf("cancelled: err = %v", err)
	}
	if _, err := parseResponse([]any{Ended, results}); !errors.Is(err, ErrEnded) {
		t.Fatalf("ended: err = %v", err)
	}
	if _, err := parseResponse([]any{Success}); !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("short body: err = %v", err)
	}
	if _, err := parseResponse([]any{"0", results}); !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("bad status type: err = %v", err)
	}
}

func TestGenerateToken(t *testing.T) {
	a, b := generateToken(), generateToken()
	if !strings.HasPrefix(a, "snapgrab") {
		t.Fatalf("token %q lacks prefix", a)
	}
	if a == b {
		t.Fatalf("tokens repeated: %q", a)
	}
	for _, r := range a {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			t.Fatalf("token %q is not a valid object path element", a)
		}
	}
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Screenshot.png")
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	uri := (&url.URL{Scheme: "file", Path: path}).String()
	img, err := LoadImage(uri, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("screenshot file was not removed: %v", err)
	}

	if _, err := LoadImage("https://example.com/a.png", false); err == nil {
		t.Fatal("expected error for non-file uri")
	}
}
