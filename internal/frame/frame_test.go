package frame

import (
	"errors"
	"testing"
)

func TestFrameSize(t *testing.T) {
	cases := []struct {
		enc  Encoding
		w, h int
		want int
	}{
		{EncodingBGRA, 1920, 1080, 1920 * 1080 * 4},
		{EncodingRGBA, 3, 3, 36},
		{EncodingBGR0, 2, 1, 8},
		{EncodingRGB, 5, 2, 30},
		{EncodingYUV420p, 4, 4, 16 + 8},
		{EncodingYUV420p, 3, 3, 9 + 8},
		{EncodingNV12, 1920, 1080, 1920*1080 + 1920*1080/2},
		{EncodingNV12, 1, 1, 1 + 2},
		{EncodingBGRA, 0, 0, 0},
	}
	for _, tc := range cases {
		got, ok := tc.enc.FrameSize(tc.w, tc.h)
		if !ok || got != tc.want {
			t.Errorf("%s %dx%d: got (%d, %v), want %d", tc.enc, tc.w, tc.h, got, ok, tc.want)
		}
	}

	if _, ok := EncodingUnknown.FrameSize(2, 2); ok {
		t.Error("unknown encoding reported a size")
	}
	if _, ok := EncodingBGRA.FrameSize(-1, 2); ok {
		t.Error("negative width reported a size")
	}
}

func TestValidate(t *testing.T) {
	ok := &Raw{Encoding: EncodingNV12, Width: 2, Height: 2, Data: make([]byte, 6)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid NV12 frame: %v", err)
	}

	bad := &Raw{Encoding: EncodingRGB, Width: 2, Height: 2, Data: make([]byte, 11)}
	if err := bad.Validate(); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("short RGB frame: err = %v", err)
	}

	unknown := &Raw{Encoding: Encoding(200), Width: 1, Height: 1}
	if err := unknown.Validate(); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("unknown encoding: err = %v", err)
	}
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{
		"BGRA":    EncodingBGRA,
		"bgra":    EncodingBGRA,
		" RGBA ":  EncodingRGBA,
		"yuv420p": EncodingYUV420p,
		"nv12":    EncodingNV12,
	} {
		got, err := ParseEncoding(in)
		if err != nil || got != want {
			t.Errorf("ParseEncoding(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseEncoding("argb64"); err == nil {
		t.Error("expected error for unknown name")
	}
}
