package ui

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

// trayIcon draws a small camera-frame glyph. Windows trays need an ICO
// container; a PNG payload inside one is accepted since Vista.
func trayIcon() []byte {
	const size = 32
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	accent := color.NRGBA{R: 0x2d, G: 0x8c, B: 0xf0, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			edge := x < 3 || y < 3 || x >= size-3 || y >= size-3
			corner := (x < 10 || x >= size-10) && (y < 10 || y >= size-10)
			dot := (x-16)*(x-16)+(y-16)*(y-16) <= 25
			if (edge && corner) || dot {
				img.SetNRGBA(x, y, accent)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	if runtime.GOOS != "windows" {
		return buf.Bytes()
	}

	var ico bytes.Buffer
	binary.Write(&ico, binary.LittleEndian, [3]uint16{0, 1, 1})
	binary.Write(&ico, binary.LittleEndian, struct {
		Width, Height, Colors, Reserved uint8
		Planes, BitCount                uint16
		Size, Offset                    uint32
	}{size, size, 0, 0, 1, 32, uint32(buf.Len()), 6 + 16})
	ico.Write(buf.Bytes())
	return ico.Bytes()
}
