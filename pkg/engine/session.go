package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/kazzababe/gridui/pkg/observability"
)

// Session binds a root View to a Viewer, and owns the store, the
// prior-frame buffers (via its Reconciler), and the set of scheduled
// tasks that must be cancelled on unmount (spec.md §3 "Session", §4.6).
type Session struct {
	root     View
	props    any
	viewer   Viewer
	renderer Renderer
	scheduler Scheduler
	executor Executor
	logger   *slog.Logger
	metrics  *observability.Metrics
	tracer   *observability.Tracer

	title   string
	surface Surface
	recon   *Reconciler

	mu             sync.Mutex
	scheduledTasks map[TaskHandle]struct{}
	pendingClose   bool
}

// sessionConfig collects the options built by SessionOption, grounded on
// the teacher's functional-options config (pkg/server/config.go) and
// bubblyui's RunOption (pkg/bubbly/runner_options.go).
type sessionConfig struct {
	cols     int
	executor Executor
	logger   *slog.Logger
	metrics  *observability.Metrics
	tracer   *observability.Tracer
}

// SessionOption configures Mount.
type SessionOption func(*sessionConfig)

// WithColumns sets the surface's fixed column width W (spec.md §3; default
// 9, matching the 9-column inventory window named in spec.md §1).
func WithColumns(cols int) SessionOption {
	return func(c *sessionConfig) { c.cols = cols }
}

// WithExecutor supplies the Executor backing use_async_state/
// use_async_ref, overriding the default shared Pool.
func WithExecutor(e Executor) SessionOption {
	return func(c *sessionConfig) { c.executor = e }
}

// WithLogger overrides the ambient *slog.Logger used for everything
// spec.md §7 specifies as "log" or "silently drop" (debug-logged here for
// observability rather than truly silent).
func WithLogger(l *slog.Logger) SessionOption {
	return func(c *sessionConfig) { c.logger = l }
}

// WithMetrics attaches a Prometheus-backed render/patch/GC observer
// (SPEC_FULL.md Domain Stack). Omitting this option leaves rendering
// unobserved; every Metrics method tolerates a nil receiver.
func WithMetrics(m *observability.Metrics) SessionOption {
	return func(c *sessionConfig) { c.metrics = m }
}

// WithTracer attaches an OpenTelemetry tracer that starts one span per
// render pass. Omitting this option leaves rendering untraced.
func WithTracer(t *observability.Tracer) SessionOption {
	return func(c *sessionConfig) { c.tracer = t }
}

func defaultSessionConfig() *sessionConfig {
	return &sessionConfig{
		cols:     9,
		executor: NewPool(4),
		logger:   slog.Default(),
	}
}

// Mount implements spec.md §4.6: invokes root.Init, allocates the display
// surface through renderer, then triggers the initial render.
func Mount(root View, props any, viewer Viewer, renderer Renderer, scheduler Scheduler, opts ...SessionOption) (*Session, error) {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	session := &Session{
		root:           root,
		props:          props,
		viewer:         viewer,
		renderer:       renderer,
		scheduler:      scheduler,
		executor:       cfg.executor,
		logger:         cfg.logger,
		metrics:        cfg.metrics,
		tracer:         cfg.tracer,
		scheduledTasks: make(map[TaskHandle]struct{}),
	}
	session.recon = newReconciler(session, cfg.cols)

	initCtx := &initContextImpl{session: session, active: true}
	root.Init(initCtx)
	initCtx.active = false

	surface, err := renderer.Mount(viewer, session.title, session.recon.rows, cfg.cols)
	if err != nil {
		return nil, fmt.Errorf("engine: mount failed: %w", err)
	}
	session.surface = surface

	var renderErr error
	session.recon.runUnit(func() {
		renderErr = session.recon.render()
	})
	if renderErr != nil {
		renderer.Unmount(surface)
		return nil, renderErr
	}

	return session, nil
}

// Unmount implements spec.md §4.6: cancels every attached task, runs every
// effect's final cleanup, invokes root.Close, and disposes the surface —
// deferring the Close/dispose step if a render is currently in flight
// (spec.md §7 UnmountDuringRender).
func Unmount(s *Session) {
	s.mu.Lock()
	tasks := make([]TaskHandle, 0, len(s.scheduledTasks))
	for h := range s.scheduledTasks {
		tasks = append(tasks, h)
	}
	s.mu.Unlock()

	for _, h := range tasks {
		h.Cancel()
	}

	s.recon.runFinalCleanups()

	if s.recon.rendering.Load() {
		s.mu.Lock()
		s.pendingClose = true
		s.mu.Unlock()
		return
	}

	s.finishClose()
}

func (s *Session) finishClose() {
	closeCtx := &closeContextImpl{session: s}
	s.root.Close(closeCtx)
	s.renderer.Unmount(s.surface)
}

// finishPendingUnmount is called by Reconciler.render after it releases
// the re-entrancy flag; it completes an Unmount that arrived mid-render.
func (s *Session) finishPendingUnmount() {
	s.mu.Lock()
	if !s.pendingClose {
		s.mu.Unlock()
		return
	}
	s.pendingClose = false
	s.mu.Unlock()

	s.finishClose()
}

// AttachTask registers h for auto-cancellation on Unmount.
func (s *Session) AttachTask(h TaskHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduledTasks[h] = struct{}{}
}

// DetachTask unregisters h.
func (s *Session) DetachTask(h TaskHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scheduledTasks, h)
}

// SchedulerTasks returns an unmodifiable snapshot of currently-attached
// tasks (spec.md §4.6 get_scheduler_tasks()).
func (s *Session) SchedulerTasks() []TaskHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]TaskHandle, 0, len(s.scheduledTasks))
	for h := range s.scheduledTasks {
		snapshot = append(snapshot, h)
	}
	return snapshot
}

type initContextImpl struct {
	session *Session
	active  bool
}

func (c *initContextImpl) Size(rows int) {
	if !c.active {
		c.session.logger.Debug("engine: size() called outside init, ignored", "error", ErrDoubleInit)
		return
	}
	c.session.recon.rows = rows
}

func (c *initContextImpl) Title(title string) {
	if !c.active {
		c.session.logger.Debug("engine: title() called outside init, ignored", "error", ErrDoubleInit)
		return
	}
	c.session.title = title
}

type closeContextImpl struct {
	session *Session
}

func (c *closeContextImpl) Viewer() Viewer { return c.session.viewer }
func (c *closeContextImpl) Props() any     { return c.session.props }
