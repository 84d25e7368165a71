package reactive

import "sync"

// RefCell is the non-reactive escape-hatch container from spec.md §3: it
// survives renders like a StateCell but carries no on_change notification,
// so mutating it never triggers a render. Used for timer handles, async
// bookkeeping flags, and similar data a component needs to remember without
// observing.
type RefCell[T any] struct {
	mu    sync.Mutex
	value T
}

// UseRef allocates (on first render) or returns (on subsequent renders) the
// ref cell at the current hook cursor. initial is only invoked the first
// time this hook position is reached.
func UseRef[T any](scope *Scope, initial func() T) *RefCell[T] {
	raw := scope.allocSlot(HookRef, func() any {
		return &RefCell[T]{value: initial()}
	})
	cell, ok := raw.(*RefCell[T])
	if !ok {
		panic(&HookOrderError{Path: scope.Path, Index: scope.cursor - 1, Expected: HookRef, Got: HookRef})
	}
	return cell
}

// Get returns the current value.
func (c *RefCell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores v without any change notification.
func (c *RefCell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}
