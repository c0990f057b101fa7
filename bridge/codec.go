package bridge

import (
	"fmt"

	"github.com/hujun-open/dashbook/wire"
)

// CodecName is the grpc content-subtype of the bridge
const CodecName = "dashwire"

// codec carries wire.Message values over grpc
type codec struct{}

func (codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(wire.Message)
	if !ok {
		return nil, fmt.Errorf("dashwire codec: cannot marshal %T", v)
	}
	return m.MarshalWire()
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(wire.Message)
	if !ok {
		return fmt.Errorf("dashwire codec: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}

func (codec) Name() string {
	return CodecName
}
