package capture

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"snapgrab/internal/frame"
)

// toRaw copies region r of src into a frame laid out as enc, scaled to res.
func toRaw(src image.Image, r image.Rectangle, enc frame.Encoding, res Resolution) (*frame.Raw, error) {
	if r.Empty() {
		return nil, fmt.Errorf("empty capture region %v", r)
	}
	w, h := targetSize(r.Dx(), r.Dy(), res)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == r.Dx() && h == r.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, r.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, r, xdraw.Src, nil)
	}

	switch enc {
	case frame.EncodingRGBA:
		return &frame.Raw{Encoding: enc, Width: w, Height: h, Data: dst.Pix}, nil
	case frame.EncodingBGRA:
		pix := dst.Pix
		for i := 0; i+3 < len(pix); i += 4 {
			pix[i], pix[i+2] = pix[i+2], pix[i]
		}
		return &frame.Raw{Encoding: enc, Width: w, Height: h, Data: pix}, nil
	default:
		return nil, fmt.Errorf("%w: %s output", frame.ErrUnsupportedEncoding, enc)
	}
}
