// Package codec defines how cached values are turned into bytes for the
// store and back.
//
// JSON is the default and the contract every process sharing a key space
// is expected to speak. Msgpack and CBOR are opt-in for deployments that
// control every reader and writer of their keys.
package codec

import (
	"fmt"
	"strings"
)

// Codec names accepted by ByName.
const (
	NameJSON    = "json"
	NameMsgpack = "msgpack"
	NameCBOR    = "cbor"
)

// Codec encodes values to bytes for storage and decodes them back.
type Codec interface {
	// Name identifies the codec in logs and configuration.
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// ByName returns the codec registered under name.
// An empty name selects JSON.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameJSON:
		return JSON{}, nil
	case NameMsgpack:
		return Msgpack{}, nil
	case NameCBOR:
		return NewCBOR()
	default:
		return nil, fmt.Errorf("unknown codec %q (want %s, %s or %s)", name, NameJSON, NameMsgpack, NameCBOR)
	}
}
