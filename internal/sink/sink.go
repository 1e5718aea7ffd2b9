// Package sink writes decoded captures to disk.
package sink

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// WriteError reports a failure to persist an image at Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write image %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

type encodeFunc func(io.Writer, image.Image) error

// encoderFor picks a lossless container from the file extension, falling
// back to PNG.
func encoderFor(path string) encodeFunc {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return bmp.Encode
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return png.Encode
	}
}

// Save encodes img and writes it to path, replacing any existing file. The
// image is written to a temporary file next to path first, so a failed save
// leaves the previous file in place.
func Save(img *image.NRGBA, path string) error {
	if img == nil {
		return &WriteError{Path: path, Err: fmt.Errorf("nil image")}
	}

	tmp, err := createTemp(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := encoderFor(path)(tmp, img); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := tmp.Sync(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if fi, err := os.Stat(path); err == nil {
		if err := os.Chmod(tmpPath, fi.Mode().Perm()); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	committed = true
	return nil
}

// createTemp opens a new file next to path. Unlike os.CreateTemp it asks for
// mode 0666, so a fresh output file gets the permissions the umask allows.
func createTemp(path string) (*os.File, error) {
	dir, base := filepath.Split(path)
	for i := 0; i < 100; i++ {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(uint64(rand.Uint32()), 36)+".tmp")
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if os.IsExist(err) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("create temporary file for %s: too many collisions", path)
}
