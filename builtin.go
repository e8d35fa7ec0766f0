package generator

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// This file registers codecs for builtin types, so that generators yielding
// them can be snapshotted.

func init() {
	RegisterCodec(
		func(b []byte, v bool) ([]byte, error) {
			return protowire.AppendVarint(b, protowire.EncodeBool(v)), nil
		},
		func(b []byte) (bool, error) {
			u, err := consumeVarint(b)
			return protowire.DecodeBool(u), err
		},
	)

	registerSigned[int]()
	registerSigned[int8]()
	registerSigned[int16]()
	registerSigned[int32]()
	registerSigned[int64]()

	registerUnsigned[uint]()
	registerUnsigned[uint8]()
	registerUnsigned[uint16]()
	registerUnsigned[uint32]()
	registerUnsigned[uint64]()

	RegisterCodec(
		func(b []byte, v float32) ([]byte, error) {
			return protowire.AppendFixed32(b, math.Float32bits(v)), nil
		},
		func(b []byte) (float32, error) {
			u, n := protowire.ConsumeFixed32(b)
			if err := consumed(b, n); err != nil {
				return 0, err
			}
			return math.Float32frombits(u), nil
		},
	)
	RegisterCodec(
		func(b []byte, v float64) ([]byte, error) {
			return protowire.AppendFixed64(b, math.Float64bits(v)), nil
		},
		func(b []byte) (float64, error) {
			u, n := protowire.ConsumeFixed64(b)
			if err := consumed(b, n); err != nil {
				return 0, err
			}
			return math.Float64frombits(u), nil
		},
	)

	RegisterCodec(
		func(b []byte, v string) ([]byte, error) { return append(b, v...), nil },
		func(b []byte) (string, error) { return string(b), nil },
	)
	RegisterCodec(
		func(b []byte, v []byte) ([]byte, error) { return append(b, v...), nil },
		func(b []byte) ([]byte, error) { return append([]byte(nil), b...), nil },
	)
}

func registerSigned[T ~int | ~int8 | ~int16 | ~int32 | ~int64]() {
	RegisterCodec(
		func(b []byte, v T) ([]byte, error) {
			return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v))), nil
		},
		func(b []byte) (T, error) {
			u, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}
			x := protowire.DecodeZigZag(u)
			if int64(T(x)) != x {
				return 0, fmt.Errorf("value %d overflows %T", x, T(0))
			}
			return T(x), nil
		},
	)
}

func registerUnsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64]() {
	RegisterCodec(
		func(b []byte, v T) ([]byte, error) {
			return protowire.AppendVarint(b, uint64(v)), nil
		},
		func(b []byte) (T, error) {
			u, err := consumeVarint(b)
			if err != nil {
				return 0, err
			}
			if uint64(T(u)) != u {
				return 0, fmt.Errorf("value %d overflows %T", u, T(0))
			}
			return T(u), nil
		},
	)
}

func consumeVarint(b []byte) (uint64, error) {
	u, n := protowire.ConsumeVarint(b)
	return u, consumed(b, n)
}

// consumed checks the length returned by a protowire.Consume function, which
// must cover the whole buffer.
func consumed(b []byte, n int) error {
	if n < 0 {
		return protowire.ParseError(n)
	}
	if n != len(b) {
		return fmt.Errorf("%d trailing bytes", len(b)-n)
	}
	return nil
}
