package reactive

import (
	"reflect"
	"sync"
)

// StateCell is the mutable reactive container described by spec.md §3:
// set(v) is a no-op when v structurally equals the current value; otherwise
// it stores the new value and invokes onChange. onChange is wired by the
// reconciler to its request-render callback (spec §3, §4.7).
//
// Modeled on the teacher's Signal[T] (pkg/vango/signal.go), stripped of the
// subscriber list and dependency tracking that Signal needs for automatic
// effect re-subscription — this engine's use_effect depends on an explicit
// deps slice (spec §4.4), not auto-tracked reads, so a single onChange
// callback is all a state cell needs.
type StateCell[T any] struct {
	mu       sync.Mutex
	value    T
	equal    func(a, b T) bool
	onChange func()
}

// UseState allocates (on first render of path) or returns (on subsequent
// renders) the state cell at the current hook cursor.
//
// initial is only evaluated (by calling it) the first time this hook
// position is reached for this scope, matching the "supplier" form of
// use_state in spec §4.2.
func UseState[T any](scope *Scope, initial func() T, onChange func()) *StateCell[T] {
	raw := scope.allocSlot(HookState, func() any {
		return &StateCell[T]{value: initial(), onChange: onChange}
	})
	cell, ok := raw.(*StateCell[T])
	if !ok {
		panic(&HookOrderError{Path: scope.Path, Index: scope.cursor - 1, Expected: HookState, Got: HookState})
	}
	// Every render re-wires onChange: the callback closes over the
	// RenderContext/Reconciler of the pass that allocated it, which is a
	// fresh value each render even though the cell survives across renders.
	cell.mu.Lock()
	cell.onChange = onChange
	cell.mu.Unlock()
	return cell
}

// Get returns the current value.
func (c *StateCell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores v and invokes onChange, unless v structurally equals the
// current value (spec §3: "set(v) is a no-op when v equals the current
// value"). Safe to call from any goroutine per spec §5; the caller is
// responsible for the UI-thread marshalling onChange performs.
func (c *StateCell[T]) Set(v T) {
	c.mu.Lock()
	changed := !c.equals(c.value, v)
	if changed {
		c.value = v
	}
	onChange := c.onChange
	c.mu.Unlock()

	if changed && onChange != nil {
		onChange()
	}
}

// WithEquals installs a custom equality function, for types where
// reflect.DeepEqual is too expensive or wrong (e.g. containing function
// values). Mirrors Signal[T].WithEquals in the teacher.
func (c *StateCell[T]) WithEquals(fn func(a, b T) bool) *StateCell[T] {
	c.mu.Lock()
	c.equal = fn
	c.mu.Unlock()
	return c
}

func (c *StateCell[T]) equals(a, b T) bool {
	if c.equal != nil {
		return c.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for comparable built-ins and falls back to
// reflect.DeepEqual otherwise, matching the teacher's defaultEquals in
// pkg/vango/signal.go.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
