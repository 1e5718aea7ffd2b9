package capture

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

var (
	debugOnce   sync.Once
	debugLogger *log.Logger
)

// newDebugLogger returns nil unless SNAPGRAB_DEBUG=1. Output goes to
// SNAPGRAB_DEBUG_FILE when set, otherwise stderr.
func newDebugLogger() *log.Logger {
	if strings.TrimSpace(os.Getenv("SNAPGRAB_DEBUG")) != "1" {
		return nil
	}
	var w io.Writer = os.Stderr
	if p := strings.TrimSpace(os.Getenv("SNAPGRAB_DEBUG_FILE")); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "snapgrab capture debug log open failed: %v\n", err)
		} else {
			w = f
		}
	}
	return log.New(w, "snapgrab/capture ", log.LstdFlags|log.Lmicroseconds)
}

func captureDebugf(format string, args ...any) {
	debugOnce.Do(func() { debugLogger = newDebugLogger() })
	if debugLogger == nil {
		return
	}
	debugLogger.Printf(format, args...)
}
