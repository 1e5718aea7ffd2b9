//go:build !windows

package clipboard

import "image"

// CopyImage always fails with ErrUnsupported on this platform.
func CopyImage(img *image.NRGBA) error {
	return ErrUnsupported
}
