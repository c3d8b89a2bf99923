package kvpb

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the grpc content-subtype under which the espikey codec is
// registered. Clients select it per call (NewKVServiceClient does this);
// the server resolves it from the request's content-type.
const CodecName = "kvwire"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals the messages of this package for grpc transport.
type Codec struct{}

func (Codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("kvpb: cannot marshal %T", v)
	}
	return m.MarshalWire(), nil
}

func (Codec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("kvpb: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}

func (Codec) Name() string { return CodecName }
