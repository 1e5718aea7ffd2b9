//go:build !windows

package hotkey

func register(Binding, Handler) error {
	return ErrUnsupported
}

func unregister() {}
