package generator

// Context is passed to a generator body and flows through all functions that
// yield (or could yield) on its behalf.
//
// The type parameter V is the type of values that the generator yields.
type Context[V any] struct {
	// Value passed to Yield when the generator suspended. Keep as first field
	// so it doesn't use any space if it is the empty struct.
	value V

	// resume is set when the generator suspends at a yield point, and cleared
	// when the rewinding stack reaches that same yield point again.
	resume bool

	Stack
}

// Yield publishes v as the current value of the generator and suspends its
// execution until the iterator is advanced again.
//
// When the iterator advances, the generator body is called again and its
// frames dispatch back to the statement that yielded; the second call to
// Yield then returns immediately and execution continues with the statement
// that follows it.
func (c *Context[V]) Yield(v V) {
	if c.resume {
		c.resume = false
		return
	}
	c.value = v
	c.resume = true
	panic(unwind{})
}

// Unwinding returns true if the generator is unwinding its stack after a
// yield, or rewinding it to reach the last yield point.
//
// Generator functions call it in a deferred function to decide whether their
// frame must be popped from the stack.
func (c *Context[V]) Unwinding() bool {
	return c.resume
}

// unwind is the panic value used to unwind the stack of a generator that
// yields. It is recovered by the iterator driving the generator.
type unwind struct{}
