// Package frame models undecoded display frames and converts them into the
// canonical RGBA image the rest of snapgrab works with.
package frame

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Encoding tags the pixel layout of a Raw frame.
type Encoding uint8

const (
	EncodingUnknown Encoding = iota
	// EncodingBGRA is 4 bytes per pixel in B, G, R, A order.
	EncodingBGRA
	// EncodingRGBA is 4 bytes per pixel in R, G, B, A order.
	EncodingRGBA
	// EncodingRGB is 3 packed bytes per pixel.
	EncodingRGB
	// EncodingBGR0 is 4 bytes per pixel in B, G, R order with an unused pad byte.
	EncodingBGR0
	// EncodingYUV420p is planar I420: a full Y plane then quarter U and V planes.
	EncodingYUV420p
	// EncodingNV12 is a full Y plane followed by one interleaved UV plane.
	EncodingNV12
)

var encodingNames = map[Encoding]string{
	EncodingBGRA:    "BGRA",
	EncodingRGBA:    "RGBA",
	EncodingRGB:     "RGB",
	EncodingBGR0:    "BGR0",
	EncodingYUV420p: "YUV420p",
	EncodingNV12:    "NV12",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", uint8(e))
}

// ParseEncoding resolves a case-insensitive encoding name.
func ParseEncoding(s string) (Encoding, error) {
	for enc, name := range encodingNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return enc, nil
		}
	}
	return EncodingUnknown, fmt.Errorf("unknown pixel encoding %q", s)
}

// FrameSize returns the exact buffer length a frame of width x height must
// carry in this encoding. ok is false for unknown encodings, negative
// dimensions or sizes that do not fit in an int.
func (e Encoding) FrameSize(width, height int) (size int, ok bool) {
	if width < 0 || height < 0 {
		return 0, false
	}
	pixels, ok := mulInt(width, height)
	if !ok {
		return 0, false
	}
	switch e {
	case EncodingBGRA, EncodingRGBA, EncodingBGR0:
		return mulInt(pixels, 4)
	case EncodingRGB:
		return mulInt(pixels, 3)
	case EncodingYUV420p, EncodingNV12:
		chroma, ok := mulInt((width+1)/2, (height+1)/2)
		if !ok {
			return 0, false
		}
		chroma, ok = mulInt(chroma, 2)
		if !ok || pixels > math.MaxInt-chroma {
			return 0, false
		}
		return pixels + chroma, true
	default:
		return 0, false
	}
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// Raw is one undecoded frame as delivered by a capture backend. The caller
// that receives it owns Data.
type Raw struct {
	Encoding Encoding
	Width    int
	Height   int
	Data     []byte
}

// Validate reports whether the declared dimensions match the buffer length
// for the frame's encoding.
func (r *Raw) Validate() error {
	if r == nil {
		return errors.New("nil frame")
	}
	want, ok := r.Encoding.FrameSize(r.Width, r.Height)
	if !ok {
		if _, known := encodingNames[r.Encoding]; !known {
			return &UnsupportedEncodingError{Encoding: r.Encoding}
		}
		return &DimensionMismatchError{Width: r.Width, Height: r.Height, Want: -1, Got: len(r.Data)}
	}
	if want != len(r.Data) {
		return &DimensionMismatchError{Width: r.Width, Height: r.Height, Want: want, Got: len(r.Data)}
	}
	return nil
}

var (
	ErrUnsupportedEncoding = errors.New("unsupported pixel encoding")
	ErrDimensionMismatch   = errors.New("frame dimensions do not match buffer length")
)

// UnsupportedEncodingError is returned when a frame's encoding has no
// conversion to RGBA.
type UnsupportedEncodingError struct {
	Encoding Encoding
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnsupportedEncoding, e.Encoding)
}

func (e *UnsupportedEncodingError) Is(target error) bool {
	return target == ErrUnsupportedEncoding
}

// DimensionMismatchError is returned when width x height does not account for
// exactly the bytes in the buffer. Want is -1 when the dimensions themselves
// are invalid.
type DimensionMismatchError struct {
	Width, Height int
	Want, Got     int
}

func (e *DimensionMismatchError) Error() string {
	if e.Want < 0 {
		return fmt.Sprintf("%v: invalid size %dx%d (buffer %d bytes)", ErrDimensionMismatch, e.Width, e.Height, e.Got)
	}
	return fmt.Sprintf("%v: %dx%d needs %d bytes, got %d", ErrDimensionMismatch, e.Width, e.Height, e.Want, e.Got)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
