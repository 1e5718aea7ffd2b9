// Package clipboard places captured images on the system clipboard.
package clipboard

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
)

// ErrUnsupported is returned by CopyImage where no image clipboard is wired.
var ErrUnsupported = errors.New("image clipboard is not supported on this platform")

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// encodeDIB lays img out as a packed 32-bit bottom-up device independent
// bitmap, the CF_DIB clipboard format.
func encodeDIB(img *image.NRGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rowSize := w * 4

	header := bitmapInfoHeader{
		Size:      40,
		Width:     int32(w),
		Height:    int32(h),
		Planes:    1,
		BitCount:  32,
		SizeImage: uint32(rowSize * h),
	}

	buf := new(bytes.Buffer)
	buf.Grow(40 + rowSize*h)
	binary.Write(buf, binary.LittleEndian, header)

	row := make([]byte, rowSize)
	for y := h - 1; y >= 0; y-- {
		src := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		for i := 0; i < rowSize; i += 4 {
			row[i] = src[i+2]
			row[i+1] = src[i+1]
			row[i+2] = src[i]
			row[i+3] = src[i+3]
		}
		buf.Write(row)
	}
	return buf.Bytes()
}
