// Package testkit provides a synchronous in-process Renderer and
// Scheduler pair for exercising pkg/engine without a real display surface
// or wall-clock scheduler — used by pkg/engine's own tests and importable
// by any consumer writing tests against a View/Component tree.
package testkit

import (
	"sync"
	"time"

	"github.com/kazzababe/gridui/pkg/engine"
)

// handle is the engine.TaskHandle returned by every Scheduler method.
type handle struct {
	cancel func()
	once   sync.Once
}

func (h *handle) Cancel() {
	h.once.Do(func() {
		if h.cancel != nil {
			h.cancel()
		}
	})
}

// Scheduler runs Run tasks synchronously, inline, in the calling
// goroutine — there is no separate "UI thread" in a test process, so the
// calling goroutine simply is the UI thread for the duration of the call.
// RunLater/RunRepeating use real timers, so their tasks run after a
// genuine delay on the timer's or ticker's own goroutine.
type Scheduler struct{}

// NewScheduler returns a ready-to-use synchronous Scheduler.
func NewScheduler() *Scheduler { return &Scheduler{} }

func (s *Scheduler) Run(task func()) engine.TaskHandle {
	task()
	return &handle{}
}

func (s *Scheduler) RunLater(task func(), delay time.Duration) engine.TaskHandle {
	timer := time.AfterFunc(delay, task)
	return &handle{cancel: func() { timer.Stop() }}
}

func (s *Scheduler) RunRepeating(task func(), interval time.Duration) engine.TaskHandle {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				task()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return &handle{cancel: func() { close(done) }}
}

var _ engine.Scheduler = (*Scheduler)(nil)

// Recorder is a Renderer that records every applied Patch instead of
// driving a real display surface, so tests can assert on the exact
// sequence of patches a render pass produced (spec.md §8's six concrete
// scenarios are all expressed this way).
type Recorder struct {
	mu         sync.Mutex
	Patches    []engine.Patch
	Mounted    bool
	Unmounted  bool
	Title      string
	Rows, Cols int
}

// NewRecorder returns a ready-to-use Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Mount(viewer engine.Viewer, title string, rows, cols int) (engine.Surface, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Mounted = true
	r.Title = title
	r.Rows, r.Cols = rows, cols
	return "testkit-surface", nil
}

func (r *Recorder) Unmount(surface engine.Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Unmounted = true
}

func (r *Recorder) Apply(surface engine.Surface, patch engine.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(engine.Patch, len(patch))
	copy(cp, patch)
	r.Patches = append(r.Patches, cp)
	return nil
}

// LastPatch returns the most recently applied patch, or nil if none has
// been applied yet.
func (r *Recorder) LastPatch() engine.Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Patches) == 0 {
		return nil
	}
	return r.Patches[len(r.Patches)-1]
}

// PatchCount returns the number of patches applied so far.
func (r *Recorder) PatchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Patches)
}

var _ engine.Renderer = (*Recorder)(nil)

// TextCell is the simple Renderable used throughout this package's
// consumers' tests: two TextCells are Equal iff their Text matches,
// exercising spec.md §6's "structural representation" diffing rule
// without inventing a real inventory-item payload.
type TextCell struct {
	Text string
}

func (t TextCell) Equal(other engine.Renderable) bool {
	o, ok := other.(TextCell)
	return ok && o.Text == t.Text
}

var _ engine.Renderable = TextCell{}

// SyncExecutor runs a submitted job immediately, inline, in the calling
// goroutine. Useful for tests that only need to exercise the wiring
// between use_async_* and Scheduler.Run without genuine concurrency; tests
// that need to observe the "absent, then populated" two-phase behavior
// described in spec.md §4.2 should use engine.NewPool instead.
type SyncExecutor struct{}

func (SyncExecutor) Submit(job func()) { job() }

var _ engine.Executor = SyncExecutor{}
