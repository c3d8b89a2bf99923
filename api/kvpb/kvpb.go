// Package kvpb holds the wire contract of the espikey KV service: the
// request/response message types, the Status vocabulary, and a deterministic
// protobuf binary codec for them. The types are maintained by hand against
// kv.proto.
package kvpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Status is the outcome code carried on every response.
type Status int32

const (
	// Status_STATUS_UNSPECIFIED is the schema default. The service never
	// produces it; seeing it in a response means the sender left the field
	// unset.
	Status_STATUS_UNSPECIFIED Status = 0
	Status_STATUS_OK          Status = 1
	Status_STATUS_NOT_FOUND   Status = 2
	Status_STATUS_ERROR       Status = 3
)

var statusNames = map[Status]string{
	Status_STATUS_UNSPECIFIED: "STATUS_UNSPECIFIED",
	Status_STATUS_OK:          "STATUS_OK",
	Status_STATUS_NOT_FOUND:   "STATUS_NOT_FOUND",
	Status_STATUS_ERROR:       "STATUS_ERROR",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// Valid reports whether s is one of the declared enum values.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Message is implemented by every wire message in this package.
type Message interface {
	MarshalWire() []byte
	UnmarshalWire(data []byte) error
}

type GetRequest struct {
	Key []byte
}

type GetResponse struct {
	Status Status
	// Value is nil when absent. A present-but-empty value is a non-nil
	// zero-length slice; the codec preserves the distinction.
	Value []byte
}

type SetRequest struct {
	Key   []byte
	Value []byte
}

type SetResponse struct {
	Status Status
}

func (m *GetRequest) MarshalWire() []byte {
	var b []byte
	b = appendBytesField(b, 1, m.Key)
	return b
}

func (m *GetRequest) UnmarshalWire(data []byte) error {
	*m = GetRequest{}
	return walkFields(data, func(num protowire.Number, typ protowire.Type, field []byte) error {
		if num == 1 && typ == protowire.BytesType {
			v, err := consumeBytes(field)
			if err != nil {
				return err
			}
			m.Key = v
			return nil
		}
		return skipField(num, typ, field)
	})
}

func (m *GetResponse) MarshalWire() []byte {
	var b []byte
	if m.Status != Status_STATUS_UNSPECIFIED {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.Status))
	}
	if m.Value != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func (m *GetResponse) UnmarshalWire(data []byte) error {
	*m = GetResponse{}
	return walkFields(data, func(num protowire.Number, typ protowire.Type, field []byte) error {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(field)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Status = Status(int32(v))
			return nil
		case num == 2 && typ == protowire.BytesType:
			v, err := consumeBytes(field)
			if err != nil {
				return err
			}
			if v == nil {
				v = []byte{}
			}
			m.Value = v
			return nil
		}
		return skipField(num, typ, field)
	})
}

func (m *SetRequest) MarshalWire() []byte {
	var b []byte
	b = appendBytesField(b, 1, m.Key)
	b = appendBytesField(b, 2, m.Value)
	return b
}

func (m *SetRequest) UnmarshalWire(data []byte) error {
	*m = SetRequest{}
	return walkFields(data, func(num protowire.Number, typ protowire.Type, field []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, err := consumeBytes(field)
			if err != nil {
				return err
			}
			m.Key = v
			return nil
		case num == 2 && typ == protowire.BytesType:
			v, err := consumeBytes(field)
			if err != nil {
				return err
			}
			m.Value = v
			return nil
		}
		return skipField(num, typ, field)
	})
}

func (m *SetResponse) MarshalWire() []byte {
	var b []byte
	if m.Status != Status_STATUS_UNSPECIFIED {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.Status))
	}
	return b
}

func (m *SetResponse) UnmarshalWire(data []byte) error {
	*m = SetResponse{}
	return walkFields(data, func(num protowire.Number, typ protowire.Type, field []byte) error {
		if num == 1 && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(field)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Status = Status(int32(v))
			return nil
		}
		return skipField(num, typ, field)
	})
}

// appendBytesField emits a length-delimited field, skipping empty payloads
// the way proto3 skips zero values for non-optional fields.
func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendBytes(b, v)
	return b
}

// walkFields iterates the fields of data, handing each one (tag stripped,
// payload still prefixed) to fn. fn must consume the payload itself so that
// unknown fields can be skipped with skipField.
func walkFields(data []byte, fn func(num protowire.Number, typ protowire.Type, field []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if err := fn(num, typ, data); err != nil {
			return err
		}
		m := protowire.ConsumeFieldValue(num, typ, data)
		if m < 0 {
			return protowire.ParseError(m)
		}
		data = data[m:]
	}
	return nil
}

func consumeBytes(field []byte) ([]byte, error) {
	v, n := protowire.ConsumeBytes(field)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	if len(v) == 0 {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// skipField validates an unknown field so walkFields can advance past it.
func skipField(num protowire.Number, typ protowire.Type, field []byte) error {
	if n := protowire.ConsumeFieldValue(num, typ, field); n < 0 {
		return protowire.ParseError(n)
	}
	return nil
}
