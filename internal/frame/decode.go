package frame

import (
	"errors"
	"image"
)

// Decode converts raw into a packed, non-premultiplied RGBA image with its
// origin at (0, 0).
// Only BGRA frames are converted; every other encoding is rejected rather
// than reinterpreted.
func Decode(raw *Raw) (*image.NRGBA, error) {
	if raw == nil {
		return nil, errors.New("decode: nil frame")
	}
	if raw.Encoding != EncodingBGRA {
		return nil, &UnsupportedEncodingError{Encoding: raw.Encoding}
	}
	return decodeBGRA(raw)
}

func decodeBGRA(raw *Raw) (*image.NRGBA, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, raw.Width, raw.Height))
	src, dst := raw.Data, img.Pix
	for i := 0; i+3 < len(src); i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
	return img, nil
}
