// Package portal talks to xdg-desktop-portal over the D-Bus session bus.
package portal

import (
	"reflect"

	"github.com/godbus/dbus/v5"
)

const (
	ObjectName        = "org.freedesktop.portal.Desktop"
	ObjectPath        = "/org/freedesktop/portal/desktop"
	CallBaseName      = "org.freedesktop.portal"
	PropertiesGetName = "org.freedesktop.DBus.Properties.Get"
)

var (
	boolSignature   = dbus.SignatureOfType(reflect.TypeOf(false))
	stringSignature = dbus.SignatureOfType(reflect.TypeOf(""))
)

func fromBool(input bool) dbus.Variant {
	return dbus.MakeVariantWithSignature(input, boolSignature)
}

func fromString(input string) dbus.Variant {
	return dbus.MakeVariantWithSignature(input, stringSignature)
}

func call(conn *dbus.Conn, callName string, args ...any) (dbus.ObjectPath, error) {
	obj := conn.Object(ObjectName, ObjectPath)
	c := obj.Call(callName, 0, args...)
	if c.Err != nil {
		return "", c.Err
	}

	var handle dbus.ObjectPath
	err := c.Store(&handle)
	return handle, err
}

func getProperty(conn *dbus.Conn, interfaceName, property string) (any, error) {
	obj := conn.Object(ObjectName, ObjectPath)
	c := obj.Call(PropertiesGetName, 0, interfaceName, property)
	if c.Err != nil {
		return nil, c.Err
	}

	var value any
	err := c.Store(&value)
	return value, err
}
