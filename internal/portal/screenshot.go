package portal

import (
	"fmt"
	"image"
	_ "image/png"
	"net/url"
	"os"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	screenshotInterface = CallBaseName + ".Screenshot"
	screenshotName      = screenshotInterface + ".Screenshot"
)

// ScreenshotOptions configures a single Screenshot request.
type ScreenshotOptions struct {
	// ParentWindow is the portal window identifier of the caller, if any.
	ParentWindow string
	// Interactive lets the user pick an area before the shot is taken.
	Interactive bool
	// Timeout bounds the wait for the portal's response.
	Timeout time.Duration
}

// Version returns the Screenshot portal interface version.
func Version() (uint32, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return 0, err
	}
	value, err := getProperty(conn, screenshotInterface, "version")
	if err != nil {
		return 0, err
	}
	if v, ok := value.(dbus.Variant); ok {
		value = v.Value()
	}
	version, ok := value.(uint32)
	if !ok {
		return 0, fmt.Errorf("property version returned unexpected type %T", value)
	}
	return version, nil
}

// Available reports whether a Screenshot portal is reachable on the session bus.
func Available() bool {
	_, err := Version()
	return err == nil
}

// Screenshot asks the portal for a screenshot of the whole desktop and
// returns the URI of the image file it wrote.
func Screenshot(options ScreenshotOptions) (string, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return "", err
	}
	if options.Timeout <= 0 {
		options.Timeout = 30 * time.Second
	}

	token := generateToken()
	data := map[string]dbus.Variant{
		"handle_token": fromString(token),
		"modal":        fromBool(false),
		"interactive":  fromBool(options.Interactive),
	}

	results, err := doRequest(conn, token, options.Timeout, screenshotName, options.ParentWindow, data)
	if err != nil {
		return "", fmt.Errorf("screenshot portal: %w", err)
	}

	v, ok := results["uri"]
	if !ok {
		return "", fmt.Errorf("screenshot portal: %w: missing uri", ErrUnexpectedResponse)
	}
	uri, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("screenshot portal: %w: uri is %T", ErrUnexpectedResponse, v.Value())
	}
	return uri, nil
}

// LoadImage decodes the file a Screenshot URI points at. When remove is set
// the file is deleted after it has been read.
func LoadImage(uri string, remove bool) (image.Image, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse screenshot uri: %w", err)
	}
	if u.Scheme != "file" {
		return nil, fmt.Errorf("unsupported screenshot uri scheme %q", u.Scheme)
	}

	f, err := os.Open(u.Path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", u.Path, err)
	}

	if remove {
		if err := os.Remove(u.Path); err != nil {
			return img, fmt.Errorf("remove %s: %w", u.Path, err)
		}
	}
	return img, nil
}
