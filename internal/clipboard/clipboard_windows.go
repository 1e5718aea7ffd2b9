//go:build windows

package clipboard

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procOpenClipboard    = user32.NewProc("OpenClipboard")
	procCloseClipboard   = user32.NewProc("CloseClipboard")
	procEmptyClipboard   = user32.NewProc("EmptyClipboard")
	procSetClipboardData = user32.NewProc("SetClipboardData")
	procGlobalAlloc      = kernel32.NewProc("GlobalAlloc")
	procGlobalLock       = kernel32.NewProc("GlobalLock")
	procGlobalUnlock     = kernel32.NewProc("GlobalUnlock")
	procGlobalFree       = kernel32.NewProc("GlobalFree")
)

const (
	cfDIB        = 8
	gmemMoveable = 0x0002
)

// CopyImage replaces the clipboard contents with img as a CF_DIB bitmap.
func CopyImage(img *image.NRGBA) error {
	dib := encodeDIB(img)

	ret, _, err := procOpenClipboard.Call(0)
	if ret == 0 {
		return fmt.Errorf("open clipboard: %w", err)
	}
	defer procCloseClipboard.Call()

	procEmptyClipboard.Call()

	hMem, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(len(dib)))
	if hMem == 0 {
		return fmt.Errorf("allocate clipboard memory: %w", err)
	}

	pMem, _, err := procGlobalLock.Call(hMem)
	if pMem == 0 {
		procGlobalFree.Call(hMem)
		return fmt.Errorf("lock clipboard memory: %w", err)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(pMem)), len(dib)), dib)
	procGlobalUnlock.Call(hMem)

	// On success the clipboard owns hMem.
	ret, _, err = procSetClipboardData.Call(cfDIB, hMem)
	if ret == 0 {
		procGlobalFree.Call(hMem)
		return fmt.Errorf("set clipboard data: %w", err)
	}
	return nil
}
