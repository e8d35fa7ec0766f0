package generator

import "fmt"

// Stack is the call stack of a generator.
type Stack struct {
	// FP is the frame pointer. Functions always use the frame located at
	// Frames[FP].
	FP int

	// Frames is the set of stack frames. Each entry is a pointer to the frame
	// struct of the generator function that pushed it.
	Frames []any
}

// Push prepares the stack for an impending generator function call and
// returns the frame that the function must use.
//
// The stack's frame pointer is incremented, and a zero frame is pushed to the
// stack if the caller is on the topmost frame.
//
// If the caller is not on the topmost frame it means that a generator is being
// resumed and the next frame is already present on the stack; that frame is
// returned with the state it had when the generator suspended.
//
// Frame types conventionally start with an IP int field, the instruction
// pointer which records the position of execution within the function.
func Push[Frame any](s *Stack) *Frame {
	if s.isTop() {
		s.Frames = append(s.Frames, new(Frame))
	}
	s.FP++
	f, ok := s.Frames[s.FP].(*Frame)
	if !ok {
		panic(&CorruptionError{
			Reason: fmt.Sprintf("frame %d has type %T, expected %T", s.FP, s.Frames[s.FP], f),
		})
	}
	return f
}

// Pop pops the topmost stack frame after a generator function returns.
func Pop(s *Stack) {
	if !s.isTop() {
		panic("generator: pop when caller is not on topmost frame")
	}
	i := len(s.Frames) - 1
	s.Frames[i] = nil
	s.Frames = s.Frames[:i]
	s.FP--
}

func (s *Stack) isTop() bool {
	return s.FP == len(s.Frames)-1
}
