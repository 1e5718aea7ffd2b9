package portal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

var (
	ErrCancelled          = errors.New("portal request was cancelled")
	ErrEnded              = errors.New("portal request ended without a result")
	ErrTimeout            = errors.New("timed out waiting for portal response")
	ErrUnexpectedResponse = errors.New("unexpected response from portal")
)

const (
	requestInterface = "org.freedesktop.portal.Request"
	responseMember   = "Response"
	responseSignal   = requestInterface + "." + responseMember
)

type ResponseStatus = uint32

const (
	Success   ResponseStatus = 0
	Cancelled ResponseStatus = 1
	Ended     ResponseStatus = 2
)

func generateToken() string {
	str := strings.Builder{}
	str.WriteString("snapgrab")
	a, _ := rand.Int(rand.Reader, big.NewInt(1<<32))
	str.WriteString(strconv.FormatUint(a.Uint64(), 16))
	return str.String()
}

// requestPath predicts the Request object the portal creates for token, so
// the Response match can be installed before the call is made.
func requestPath(conn *dbus.Conn, token string) (dbus.ObjectPath, error) {
	names := conn.Names()
	if len(names) == 0 {
		return "", errors.New("session bus connection has no unique name")
	}
	sender := strings.ReplaceAll(strings.TrimPrefix(names[0], ":"), ".", "_")
	return dbus.ObjectPath(ObjectPath + "/request/" + sender + "/" + token), nil
}

// doRequest invokes callName, whose first return value is a Request handle,
// and blocks until that request's Response signal arrives or timeout passes.
func doRequest(conn *dbus.Conn, token string, timeout time.Duration, callName string, args ...any) (map[string]dbus.Variant, error) {
	path, err := requestPath(conn, token)
	if err != nil {
		return nil, err
	}

	matches := []dbus.MatchOption{
		dbus.WithMatchObjectPath(path),
		dbus.WithMatchInterface(requestInterface),
		dbus.WithMatchMember(responseMember),
	}
	if err := conn.AddMatchSignal(matches...); err != nil {
		return nil, err
	}
	defer conn.RemoveMatchSignal(matches...)

	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	handle, err := call(conn, callName, args...)
	if err != nil {
		return nil, err
	}
	// Portals older than 0.9 pick their own handle path.
	if handle != path {
		if err := conn.AddMatchSignal(
			dbus.WithMatchObjectPath(handle),
			dbus.WithMatchInterface(requestInterface),
			dbus.WithMatchMember(responseMember),
		); err != nil {
			return nil, err
		}
		defer conn.RemoveMatchSignal(
			dbus.WithMatchObjectPath(handle),
			dbus.WithMatchInterface(requestInterface),
			dbus.WithMatchMember(responseMember),
		)
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case sig, ok := <-signals:
			if !ok {
				return nil, ErrEnded
			}
			if sig.Name != responseSignal || sig.Path != handle {
				continue
			}
			return parseResponse(sig.Body)
		case <-deadline.C:
			return nil, ErrTimeout
		}
	}
}

func parseResponse(body []any) (map[string]dbus.Variant, error) {
	if len(body) != 2 {
		return nil, ErrUnexpectedResponse
	}
	status, ok := body[0].(ResponseStatus)
	if !ok {
		return nil, fmt.Errorf("%w: status %T", ErrUnexpectedResponse, body[0])
	}
	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("%w: results %T", ErrUnexpectedResponse, body[1])
	}

	switch status {
	case Success:
		return results, nil
	case Cancelled:
		return nil, ErrCancelled
	default:
		return nil, ErrEnded
	}
}
