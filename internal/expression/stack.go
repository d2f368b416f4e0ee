package expression

// stack is a LIFO backed by a slice. The zero value is an empty stack.
type stack[T any] struct {
	items []T
}

func (s *stack[T]) push(v T) {
	s.items = append(s.items, v)
}

// pop removes and returns the top item. ok is false if the stack is empty.
func (s *stack[T]) pop() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	n := len(s.items) - 1
	v = s.items[n]
	s.items = s.items[:n]
	return v, true
}

// peek returns the top item without removing it.
func (s *stack[T]) peek() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	return s.items[len(s.items)-1], true
}

func (s *stack[T]) len() int {
	return len(s.items)
}
