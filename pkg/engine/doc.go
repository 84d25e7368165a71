// Package engine implements the retained-mode reconciler, the render
// context protocol, session/lifecycle management, and the Renderer/
// Scheduler/View contracts described by the engine specification.
//
// It builds on pkg/reactive for the per-path hook-state allocator. Nothing
// in this package depends on a concrete display platform: Renderer and
// Scheduler are interfaces a host application supplies (see pkg/wsrenderer
// for one real implementation, and internal/testkit for a synchronous
// in-process pair used by this package's own tests).
package engine
