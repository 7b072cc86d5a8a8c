package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack stores values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Struct tags differ from JSON; use `msgpack:"name"` for explicit control.
type Msgpack struct{}

func (Msgpack) Name() string { return NameMsgpack }

func (Msgpack) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (Msgpack) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
