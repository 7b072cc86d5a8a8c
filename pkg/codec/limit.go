package codec

import "fmt"

// Limit wraps another codec and refuses to decode payloads larger than
// MaxDecode bytes. Encoding is forwarded unchanged.
// A MaxDecode of zero or less disables the check.
type Limit struct {
	Inner     Codec
	MaxDecode int
}

// WithLimit wraps c when max is positive and returns c unchanged otherwise.
func WithLimit(c Codec, max int) Codec {
	if max <= 0 {
		return c
	}
	return Limit{Inner: c, MaxDecode: max}
}

func (l Limit) Name() string { return l.Inner.Name() }

func (l Limit) Marshal(v any) ([]byte, error) { return l.Inner.Marshal(v) }

func (l Limit) Unmarshal(data []byte, v any) error {
	if l.MaxDecode > 0 && len(data) > l.MaxDecode {
		return fmt.Errorf("payload too large: %d > %d bytes", len(data), l.MaxDecode)
	}
	return l.Inner.Unmarshal(data, v)
}
