// Package generator implements resumable generators: functions that produce a
// sequence of values one at a time, suspending after each value and resuming
// exactly where they left off when the next value is requested.
//
// Generators run on the calling goroutine; there is no background execution.
// A generator body keeps every local variable that must survive a yield in a
// frame pushed on the generator's stack, and records its position of
// execution in the frame's instruction pointer (IP). Yielding unwinds the Go
// call stack; advancing calls the body again, which dispatches on the IP to
// get back to the yield point:
//
//	func Count(c *generator.Context[int], n int) error {
//		f := generator.Push[struct{ IP, I int }](&c.Stack)
//		if f.IP == 0 {
//			f.IP = 1
//		}
//		defer func() {
//			if !c.Unwinding() {
//				generator.Pop(&c.Stack)
//			}
//		}()
//		for ; f.I < n; f.I++ {
//			c.Yield(f.I)
//		}
//		return nil
//	}
//
// Writing bodies in this form by hand is possible for small generators; the
// genc compiler (see cmd/genc) produces it from plain Go functions.
package generator

import "iter"

// Func is the body of a generator yielding values of type V, called with the
// arguments of type A that the generator was created with.
type Func[A, V any] func(c *Context[V], args A) error

// Generator is a handle on a generator body and its arguments. Each call to
// Begin or Iterator starts an independent traversal.
//
// The arguments are copied into each traversal. If they contain references
// (pointers, slices, maps) the referenced data is shared by all traversals,
// and synchronizing access to it is the responsibility of the caller.
type Generator[A, V any] struct {
	fn   Func[A, V]
	args A
}

// New creates a generator handle. It only stores fn and args; the body does
// not run until a traversal is started.
func New[A, V any](fn Func[A, V], args A) Generator[A, V] {
	return Generator[A, V]{fn: fn, args: args}
}

// Args returns the arguments that the generator was created with.
func (g Generator[A, V]) Args() A { return g.args }

// Iterator returns a new iterator that has not started executing the
// generator body yet. Call Next to advance it to the first value.
func (g Generator[A, V]) Iterator() *Iterator[V] {
	fn, args := g.fn, g.args
	return &Iterator[V]{
		entry: func(c *Context[V]) error { return fn(c, args) },
	}
}

// Begin returns a new iterator advanced to the first value of the generator,
// or already finished if the generator yields no values.
func (g Generator[A, V]) Begin() *Iterator[V] {
	return g.Iterator().Advance()
}

// End returns the terminal sentinel of the generator. Iterators compare equal
// to it once they are finished.
func (g Generator[A, V]) End() Sentinel { return Sentinel{} }

// All returns a sequence over the values of a new traversal of the generator.
//
// If the generator body returns an error, the sequence yields the zero value
// of V along with the error as its last element.
func (g Generator[A, V]) All() iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		it := g.Iterator()
		for it.Next() {
			if !yield(it.Value(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			var zero V
			yield(zero, err)
		}
	}
}

// Run executes a traversal of the generator to completion, calling f for each
// value that the generator yields.
//
// If f returns an error, the traversal is abandoned and Run returns the error.
// Otherwise Run returns the error returned by the generator body, if any.
func Run[A, V any](g Generator[A, V], f func(V) error) error {
	it := g.Begin()
	for ; !it.Equal(g.End()); it.Advance() {
		if err := f(it.Value()); err != nil {
			return err
		}
	}
	return it.Err()
}

// Collect executes a traversal of the generator to completion and returns
// the values that it yielded.
//
// On error, Collect returns the values yielded before the failure along with
// the error.
func Collect[A, V any](g Generator[A, V]) ([]V, error) {
	var values []V
	it := g.Begin()
	for ; !it.Done(); it.Advance() {
		values = append(values, it.Value())
	}
	return values, it.Err()
}
