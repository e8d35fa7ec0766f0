package generator

import (
	"errors"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protowire"
)

// Serializable objects can be serialized to bytes.
type Serializable interface {
	// MarshalAppend marshals the object and appends the resulting bytes to
	// the provided buffer.
	MarshalAppend(b []byte) ([]byte, error)
}

// Deserializable objects can be deserialized from bytes.
type Deserializable interface {
	// Unmarshal unmarshals an object from a buffer. It returns the number of
	// bytes that were read from the buffer in order to reconstruct the object.
	Unmarshal(b []byte) (n int, err error)
}

// ErrNotRegistered is returned when serializing or deserializing a value of a
// type which was not registered with RegisterCodec or RegisterSerializable.
var ErrNotRegistered = errors.New("generator: type not registered for serialization")

// Field numbers of a typed value.
const (
	typeField    protowire.Number = 1
	payloadField protowire.Number = 2
)

// MarshalAppend appends a value to a buffer, along with information about its
// type. The bytes can later be passed to Unmarshal to reconstruct the value.
//
// The dynamic type of v must have been registered.
func MarshalAppend(b []byte, v any) ([]byte, error) {
	c, ok := codecsByType[reflect.TypeOf(v)]
	if !ok {
		return b, fmt.Errorf("%w: %T", ErrNotRegistered, v)
	}
	payload, err := c.marshal(nil, v)
	if err != nil {
		return b, fmt.Errorf("marshaling %T: %w", v, err)
	}
	b = protowire.AppendTag(b, typeField, protowire.VarintType)
	b = protowire.AppendVarint(b, c.id)
	b = protowire.AppendTag(b, payloadField, protowire.BytesType)
	b = protowire.AppendBytes(b, payload)
	return b, nil
}

// Unmarshal unmarshals a value from a buffer. It returns the value, and the
// number of bytes that were read from the buffer in order to reconstruct it.
func Unmarshal(b []byte) (any, int, error) {
	id, n, err := consumeField(b, typeField, protowire.VarintType, protowire.ConsumeVarint)
	if err != nil {
		return nil, 0, err
	}
	payload, pn, err := consumeField(b[n:], payloadField, protowire.BytesType, protowire.ConsumeBytes)
	if err != nil {
		return nil, 0, err
	}
	c, ok := codecsByID[id]
	if !ok {
		return nil, 0, fmt.Errorf("%w: type id %d", ErrNotRegistered, id)
	}
	v, err := c.unmarshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("unmarshaling %s: %w", c.typ, err)
	}
	return v, n + pn, nil
}

func consumeField[T any](b []byte, num protowire.Number, typ protowire.Type, consume func([]byte) (T, int)) (T, int, error) {
	var zero T
	gotNum, gotTyp, n := protowire.ConsumeTag(b)
	if n < 0 {
		return zero, 0, protowire.ParseError(n)
	}
	if gotNum != num || gotTyp != typ {
		return zero, 0, fmt.Errorf("unexpected field %d of wire type %d, expected field %d", gotNum, gotTyp, num)
	}
	v, vn := consume(b[n:])
	if vn < 0 {
		return zero, 0, protowire.ParseError(vn)
	}
	return v, n + vn, nil
}

// RegisterCodec registers functions serializing values of type T for use with
// the top-level MarshalAppend and Unmarshal functions, and with iterator
// snapshots.
//
// The unmarshal function receives exactly the bytes that marshal appended.
//
// Type identifiers are assigned in registration order, so programs that
// exchange serialized values must register the same types in the same order.
// Registering a type twice panics.
func RegisterCodec[T any](marshal func(b []byte, v T) ([]byte, error), unmarshal func(b []byte) (T, error)) {
	register(reflect.TypeFor[T](),
		func(b []byte, v any) ([]byte, error) { return marshal(b, v.(T)) },
		func(b []byte) (any, error) { return unmarshal(b) },
	)
}

// RegisterSerializable registers the type T, and pointers to it, for use with
// the top-level MarshalAppend and Unmarshal functions, and with iterator
// snapshots.
//
// Frame types of generators that are snapshotted must be registered this way,
// since the stack holds pointers to frames.
func RegisterSerializable[T any, P interface {
	*T
	Serializable
	Deserializable
}]() {
	unmarshal := func(b []byte) (P, error) {
		p := P(new(T))
		n, err := p.Unmarshal(b)
		if err != nil {
			return nil, err
		}
		if n != len(b) {
			return nil, fmt.Errorf("%d bytes left after reconstructing %T", len(b)-n, p)
		}
		return p, nil
	}

	RegisterCodec(
		func(b []byte, v P) ([]byte, error) { return v.MarshalAppend(b) },
		unmarshal,
	)
	RegisterCodec(
		func(b []byte, v T) ([]byte, error) { return P(&v).MarshalAppend(b) },
		func(b []byte) (T, error) {
			p, err := unmarshal(b)
			if err != nil {
				var zero T
				return zero, err
			}
			return *p, nil
		},
	)
}

func register(t reflect.Type, marshal func([]byte, any) ([]byte, error), unmarshal func([]byte) (any, error)) {
	if _, ok := codecsByType[t]; ok {
		panic(fmt.Sprintf("generator: serializable type %s already registered", t))
	}
	c := &codec{
		id:        codecNextID,
		typ:       t,
		marshal:   marshal,
		unmarshal: unmarshal,
	}
	codecNextID++

	codecsByType[t] = c
	codecsByID[c.id] = c
}

var codecsByType = map[reflect.Type]*codec{}
var codecsByID = map[uint64]*codec{}
var codecNextID uint64 = 1

type codec struct {
	id        uint64
	typ       reflect.Type
	marshal   func([]byte, any) ([]byte, error)
	unmarshal func([]byte) (any, error)
}
