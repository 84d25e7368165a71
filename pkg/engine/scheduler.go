package engine

import "time"

// TaskHandle is returned by every Scheduler method. Cancel must be
// idempotent and silent on an already-completed task (spec.md §5, §6).
type TaskHandle interface {
	Cancel()
}

// Scheduler is the UI-thread task contract from spec.md §6. The core never
// assumes anything about the underlying thread model beyond "Scheduler.run
// executes task on the UI-owning thread"; pkg/wsrenderer supplies one real
// implementation and internal/testkit supplies a synchronous one for tests.
type Scheduler interface {
	// Run executes task once, as soon as possible, on the UI thread.
	Run(task func()) TaskHandle
	// RunLater executes task once after delay, on the UI thread.
	RunLater(task func(), delay time.Duration) TaskHandle
	// RunRepeating executes task every interval, on the UI thread, until
	// cancelled.
	RunRepeating(task func(), interval time.Duration) TaskHandle
}
