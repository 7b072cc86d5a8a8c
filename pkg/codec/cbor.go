package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR stores values using fxamacker/cbor. Construct with NewCBOR.
//
// Maps decoded into an interface value come back as map[string]any so that
// untyped reads look the same as with JSON.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR builds a CBOR codec with preferred unsorted encoding and
// RFC3339Nano timestamps.
func NewCBOR() (*CBOR, error) {
	eo := cbor.PreferredUnsortedEncOptions()
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return nil, err
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, err
	}
	return &CBOR{enc: em, dec: dm}, nil
}

func (c *CBOR) Name() string { return NameCBOR }

func (c *CBOR) Marshal(v any) ([]byte, error) { return c.enc.Marshal(v) }

func (c *CBOR) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }
