//go:build !linux && !windows && !(darwin && cgo)

package capability

type hostProbe struct{}

func (hostProbe) Supported() bool         { return false }
func (hostProbe) HasPermission() bool     { return false }
func (hostProbe) RequestPermission() bool { return false }
