package reactive

import (
	"reflect"
	"sync"
)

// Cleanup is the optional teardown a use_effect body can return (spec §4.4).
type Cleanup func()

// EffectRecord is the `{cleanup, last_deps}` pair from spec.md §3. It is
// allocated once per call site (per path, per effect-cursor position) and
// survives across renders, the same way a StateCell does.
//
// Unlike the teacher's Effect (pkg/vango/effect.go), which re-runs by
// auto-tracking signal reads, this record re-runs by explicit elementwise
// comparison of a deps slice against last_deps — the dependency-array model
// spec §4.4 calls for, grounded instead on the teacher's secondary hook
// manager (pkg/core/hooks.go OnUpdateHook), which already compares a
// caller-supplied deps slice with reflect.DeepEqual per element.
type EffectRecord struct {
	mu          sync.Mutex
	lastDeps    []any
	hasRun      bool
	cleanup     Cleanup
	pendingBody func() Cleanup
}

// Prepare is called synchronously during render when use_effect reaches
// this call site. It decides whether the body must (re)run — first render,
// or deps changed elementwise — without running anything yet: spec §4.4
// says effects run only "after the reconciler completes patch application".
func (e *EffectRecord) Prepare(body func() Cleanup, deps []any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasRun || !depsEqual(e.lastDeps, deps) {
		e.pendingBody = body
	}
	e.lastDeps = append([]any(nil), deps...)
}

// Flush runs any body staged by Prepare, first invoking the previous
// cleanup (if any). It is a no-op when nothing is pending. Called by the
// reconciler once per render, after the patch has been applied, for every
// effect record in every visited scope.
func (e *EffectRecord) Flush() {
	e.mu.Lock()
	body := e.pendingBody
	prevCleanup := e.cleanup
	e.pendingBody = nil
	e.mu.Unlock()

	if body == nil {
		return
	}
	if prevCleanup != nil {
		prevCleanup()
	}
	newCleanup := body()

	e.mu.Lock()
	e.cleanup = newCleanup
	e.hasRun = true
	e.mu.Unlock()
}

// RunFinalCleanup runs the last-recorded cleanup exactly once and discards
// it. Called by the reconciler's sweep step for every effect belonging to a
// path that fell out of `visited` (component unmount, spec §4.5 step 4).
func (e *EffectRecord) RunFinalCleanup() {
	e.mu.Lock()
	cleanup := e.cleanup
	e.cleanup = nil
	e.pendingBody = nil
	e.mu.Unlock()

	if cleanup != nil {
		cleanup()
	}
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// UseEffect allocates (on first render of this call site) or reuses the
// effect record at the current effect cursor, and stages body to run if
// deps changed. Returns the record so the reconciler can Flush it later.
func UseEffect(scope *Scope, body func() Cleanup, deps []any) *EffectRecord {
	existing, idx := scope.nextEffect()
	if existing == nil {
		existing = &EffectRecord{}
		scope.appendEffect(existing)
		_ = idx
	}
	existing.Prepare(body, deps)
	return existing
}
