//go:build windows

package hotkey

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	modNoRepeat = 0x4000

	wmHotkey = 0x0312
	wmQuit   = 0x0012

	hotkeyID = 1
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey    = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey  = user32.NewProc("UnregisterHotKey")
	procGetMessage        = user32.NewProc("GetMessageW")
	procPostThreadMessage = user32.NewProc("PostThreadMessageW")
)

type msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

var (
	mu       sync.Mutex
	threadID uint32
	loopDone chan struct{}
)

// register starts a message loop on a dedicated OS thread. The hotkey is
// owned by that thread, so registration and teardown both happen there.
func register(b Binding, handler Handler) error {
	result := make(chan error, 1)
	done := make(chan struct{})

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		ret, _, err := procRegisterHotKey.Call(0, hotkeyID, uintptr(b.Modifiers|modNoRepeat), uintptr(b.Key))
		if ret == 0 {
			result <- fmt.Errorf("failed to register hotkey: %w", err)
			return
		}
		defer procUnregisterHotKey.Call(0, hotkeyID)

		mu.Lock()
		threadID = windows.GetCurrentThreadId()
		loopDone = done
		mu.Unlock()
		result <- nil

		messageLoop(handler)
	}()

	if err := <-result; err != nil {
		return err
	}
	log.Printf("Hotkey registered (modifiers=%#x key=%#x)", b.Modifiers, b.Key)
	return nil
}

func messageLoop(handler Handler) {
	var m msg
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		// 0 is WM_QUIT and -1 is an error.
		if int32(ret) <= 0 {
			return
		}
		if m.Message == wmHotkey && handler != nil {
			go handler()
		}
	}
}

func unregister() {
	mu.Lock()
	tid, done := threadID, loopDone
	threadID, loopDone = 0, nil
	mu.Unlock()

	if done == nil {
		return
	}
	procPostThreadMessage.Call(uintptr(tid), wmQuit, 0, 0)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		log.Println("Warning: Hotkey message loop did not exit within timeout")
	}
}
