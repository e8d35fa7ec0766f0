package generator

import "fmt"

// Status is the lifecycle state of an iterator.
type Status int

const (
	// NotStarted is the state of an iterator which has not executed any part
	// of the generator body yet.
	NotStarted Status = iota
	// Suspended is the state of an iterator whose generator yielded a value
	// and is waiting to be advanced.
	Suspended
	// Finished is the terminal state of an iterator whose generator body
	// returned, either normally or with an error.
	Finished
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Suspended:
		return "suspended"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Sentinel is the terminal marker of a generator, returned by End. It is only
// meant to be compared against iterators with Equal.
type Sentinel struct{}

// Iterator is a traversal of a generator. It holds the generator's stack
// (local state and resume positions), the last value yielded, and the
// lifecycle status of the traversal.
//
// Iterators are not safe for concurrent use.
type Iterator[V any] struct {
	ctx    Context[V]
	entry  func(*Context[V]) error
	status Status
	err    error
}

// Advance executes the generator until its next yield point, or until
// completion, and returns the iterator.
//
// Advancing a finished iterator has no effect: it stays finished and its
// error is unchanged.
//
// If the generator body panics, the iterator becomes finished and the panic
// propagates to the caller. If the generator cannot be resumed because its
// stack does not lead back to a yield point, Advance panics with a
// *CorruptionError.
func (it *Iterator[V]) Advance() *Iterator[V] {
	if it.status == Finished {
		return it
	}

	yielded, err := it.call()
	switch {
	case yielded:
		it.status = Suspended
	case it.ctx.resume:
		it.finish(nil)
		panic(&CorruptionError{
			Reason: "generator returned without reaching the yield point it was suspended at",
		})
	default:
		it.finish(err)
	}
	return it
}

// Next advances the iterator and reports whether it produced a value.
//
// Next is meant to drive iterators obtained from Generator.Iterator:
//
//	it := g.Iterator()
//	for it.Next() {
//		v := it.Value()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
func (it *Iterator[V]) Next() bool {
	return it.Advance().status == Suspended
}

// Value returns the last value that the generator yielded. The method must
// only be called while the iterator is suspended at a yield point, it panics
// otherwise.
func (it *Iterator[V]) Value() V {
	if it.status != Suspended {
		panic("generator: Value called on " + it.status.String() + " iterator")
	}
	return it.ctx.value
}

// Take is like Value but moves the value out of the iterator, leaving the zero
// value of V in its place.
func (it *Iterator[V]) Take() V {
	v := it.Value()
	var zero V
	it.ctx.value = zero
	return v
}

// Equal returns true if the iterator is finished, which is when it reached
// the end of the generator represented by the sentinel.
func (it *Iterator[V]) Equal(Sentinel) bool { return it.status == Finished }

// Done returns true if the iterator is finished.
func (it *Iterator[V]) Done() bool { return it.status == Finished }

// Status returns the lifecycle state of the iterator.
func (it *Iterator[V]) Status() Status { return it.status }

// Err returns the error that the generator body returned, if any.
func (it *Iterator[V]) Err() error { return it.err }

// call invokes the generator entry point, returning true if it suspended at a
// yield point.
func (it *Iterator[V]) call() (yielded bool, err error) {
	defer func() {
		if v := recover(); v != nil {
			if _, ok := v.(unwind); !ok {
				it.finish(nil)
				panic(v)
			}
			yielded = true
		}
	}()
	it.ctx.FP = -1
	return false, it.entry(&it.ctx)
}

func (it *Iterator[V]) finish(err error) {
	it.status = Finished
	it.err = err
	it.ctx.resume = false
	clear(it.ctx.Frames)
	it.ctx.Frames = nil
}

// CorruptionError is the panic value raised when a generator's stack does not
// match the code that resumes it. This is a programming error; iterators that
// raise it cannot be used anymore.
type CorruptionError struct {
	Reason string
}

func (e *CorruptionError) Error() string {
	return "generator: corrupted stack: " + e.Reason
}
