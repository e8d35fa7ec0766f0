package generator

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of an iterator snapshot.
const (
	statusField protowire.Number = 1
	valueField  protowire.Number = 2
	frameField  protowire.Number = 3
	errorField  protowire.Number = 4
)

// Marshal returns a snapshot of the iterator. See MarshalAppend.
func (it *Iterator[V]) Marshal() ([]byte, error) {
	return it.MarshalAppend(nil)
}

// MarshalAppend appends a snapshot of the iterator to the provided buffer.
//
// The snapshot holds the status of the iterator, the last value yielded, the
// error returned by the generator body, and every frame on the generator's
// stack. The types of the value and frames must have been registered with
// RegisterCodec or RegisterSerializable. The arguments of the generator are
// not part of the snapshot; they are provided again when restoring it with
// Generator.Restore.
func (it *Iterator[V]) MarshalAppend(b []byte) ([]byte, error) {
	b = protowire.AppendTag(b, statusField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(it.status))

	if it.status == Suspended {
		v, err := MarshalAppend(nil, any(it.ctx.value))
		if err != nil {
			return b, fmt.Errorf("generator: snapshot value: %w", err)
		}
		b = protowire.AppendTag(b, valueField, protowire.BytesType)
		b = protowire.AppendBytes(b, v)

		for i, frame := range it.ctx.Frames {
			f, err := MarshalAppend(nil, frame)
			if err != nil {
				return b, fmt.Errorf("generator: snapshot frame %d: %w", i, err)
			}
			b = protowire.AppendTag(b, frameField, protowire.BytesType)
			b = protowire.AppendBytes(b, f)
		}
	}

	if it.err != nil {
		b = protowire.AppendTag(b, errorField, protowire.BytesType)
		b = protowire.AppendString(b, it.err.Error())
	}
	return b, nil
}

// Restore creates an iterator from a snapshot produced by MarshalAppend. The
// iterator resumes the generator body with the arguments of g, from the point
// where the snapshotted iterator was.
//
// Errors returned by the generator body are restored as plain errors holding
// the same message.
func (g Generator[A, V]) Restore(b []byte) (*Iterator[V], error) {
	it := g.Iterator()
	if err := it.unmarshal(b); err != nil {
		return nil, fmt.Errorf("generator: restore: %w", err)
	}
	return it, nil
}

func (it *Iterator[V]) unmarshal(b []byte) error {
	var (
		status   Status
		value    V
		hasValue bool
		frames   []any
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == statusField && typ == protowire.VarintType:
			var s uint64
			s, n = protowire.ConsumeVarint(b)
			status = Status(s)

		case num == valueField && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			if n < 0 {
				break
			}
			x, err := unmarshalExact(v)
			if err != nil {
				return fmt.Errorf("value: %w", err)
			}
			if value, hasValue = x.(V); !hasValue {
				return fmt.Errorf("value of type %T cannot be used as %T", x, value)
			}

		case num == frameField && typ == protowire.BytesType:
			var f []byte
			f, n = protowire.ConsumeBytes(b)
			if n < 0 {
				break
			}
			x, err := unmarshalExact(f)
			if err != nil {
				return fmt.Errorf("frame %d: %w", len(frames), err)
			}
			frames = append(frames, x)

		case num == errorField && typ == protowire.BytesType:
			var msg string
			msg, n = protowire.ConsumeString(b)
			it.err = errors.New(msg)

		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}

	switch status {
	case NotStarted, Finished:
		if len(frames) > 0 {
			return fmt.Errorf("%s iterator with %d frames", status, len(frames))
		}
	case Suspended:
		if !hasValue {
			return errors.New("suspended iterator without a value")
		}
	default:
		return fmt.Errorf("invalid iterator status: %d", status)
	}

	it.status = status
	it.ctx.value = value
	it.ctx.resume = status == Suspended
	it.ctx.Frames = frames
	return nil
}

func unmarshalExact(b []byte) (any, error) {
	v, n, err := Unmarshal(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, fmt.Errorf("%d trailing bytes", len(b)-n)
	}
	return v, nil
}
