package engine

import (
	"errors"
	"strconv"
)

// Sentinel and typed errors for every row of spec.md §7's error table.
//
// Grounded on vango-go-vango/pkg/vango/errors.go's style: package-level
// sentinels for simple conditions, small typed structs where the error
// needs to carry data for the caller. The HookOrderViolation kind is
// pkg/reactive's HookOrderError, which this package does not duplicate.
var (
	// ErrDoubleInit is never returned to authors — per spec.md §7 the
	// policy is "silently ignore". InitContext logs it at debug level when
	// size/title is called after init() has returned, and ignores the call.
	ErrDoubleInit = errors.New("engine: size/title called outside init")

	// ErrUnmountDuringRender names the case where Unmount arrives while
	// the reconciler's rendering flag is set. It is not returned: Unmount
	// defers Close and surface disposal until the render completes
	// (session.go).
	ErrUnmountDuringRender = errors.New("engine: close deferred, render in progress")
)

// OutOfBoundsError records a coordinate or slot write that fell outside a
// context's extent (child context) or the root surface (root context).
// Per spec.md §7 the policy is "silently drop", so this type is only
// surfaced through the ambient logger, never returned from a public call.
type OutOfBoundsError struct {
	Path string
	Slot int
	W, H int
}

func (e *OutOfBoundsError) Error() string {
	return "engine: write to slot " + strconv.Itoa(e.Slot) + " outside bounds " +
		strconv.Itoa(e.W) + "x" + strconv.Itoa(e.H) + " at path " + e.Path
}

// RendererFailureError wraps an error returned by Renderer.apply. Per
// spec.md §7 this propagates to the caller of render() and the frame
// buffers are not rotated.
type RendererFailureError struct {
	Path string
	Err  error
}

func (e *RendererFailureError) Error() string {
	return "engine: renderer.apply failed: " + e.Err.Error()
}

func (e *RendererFailureError) Unwrap() error { return e.Err }

// TaskFailureError records an async supplier (use_async_state/use_async_ref)
// panicking; suppliers return no error value. Per spec.md §7 the policy is "log; leave
// the async cell at its placeholder; no render triggered" — this type is
// what gets logged.
type TaskFailureError struct {
	Path string
	Err  error
}

func (e *TaskFailureError) Error() string {
	return "engine: async supplier failed at path " + e.Path + ": " + e.Err.Error()
}

func (e *TaskFailureError) Unwrap() error { return e.Err }
