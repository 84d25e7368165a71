package wsrenderer

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kazzababe/gridui/pkg/engine"
)

// Config controls the timeouts and buffer sizes of a Session, grounded on
// the teacher's SessionConfig (pkg/server/config.go).
type Config struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	MaxDispatchQueue  int
}

// DefaultConfig returns the Config a Session uses when none is supplied.
func DefaultConfig() Config {
	return Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxDispatchQueue:  256,
	}
}

// taskHandle is the engine.TaskHandle every Scheduler method returns.
// Cancel is best-effort: a task already dispatched onto the event loop
// cannot be pulled back, matching spec.md §6's "returned handle need not
// be cancellable" for run, and stopping the underlying timer for
// run_later/run_repeating.
type taskHandle struct {
	cancel func()
	once   sync.Once
}

func (h *taskHandle) Cancel() {
	h.once.Do(func() {
		if h.cancel != nil {
			h.cancel()
		}
	})
}

// Session is one remote display client's connection: it implements both
// engine.Renderer (patch delivery) and engine.Scheduler (a single
// event-loop goroutine backs run/run_later/run_repeating), grounded on
// the teacher's Session + ReadLoop/WriteLoop/EventLoop
// (pkg/server/session.go, pkg/server/websocket.go).
type Session struct {
	conn   *websocket.Conn
	cfg    Config
	logger *slog.Logger

	mu            sync.Mutex
	clickHandlers map[int]engine.ClickHandler

	dispatch chan func()
	done     chan struct{}
	closed   atomic.Bool
}

var _ engine.Renderer = (*Session)(nil)
var _ engine.Scheduler = (*Session)(nil)

// NewSession wraps an already-upgraded websocket connection. Call Start
// after engine.Mount has performed the initial render, so the event loop
// is only servicing a session that already has a frame to show.
func NewSession(conn *websocket.Conn, cfg Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		conn:          conn,
		cfg:           cfg,
		logger:        logger,
		clickHandlers: make(map[int]engine.ClickHandler),
		dispatch:      make(chan func(), cfg.MaxDispatchQueue),
		done:          make(chan struct{}),
	}
}

// Start launches the read loop (incoming click/pong frames), the event
// loop (dispatch queue), and the heartbeat loop. Call once, after Mount.
func (s *Session) Start() {
	go s.readLoop()
	go s.eventLoop()
	go s.heartbeatLoop()
}

// Mount implements engine.Renderer: it sends the hello frame announcing
// the surface's dimensions and title, then returns the Session itself as
// the opaque Surface (spec.md §6 leaves Surface opaque).
func (s *Session) Mount(viewer engine.Viewer, title string, rows, cols int) (engine.Surface, error) {
	e := newEncoder()
	e.writeString(title)
	e.writeUint16(uint16(rows))
	e.writeUint16(uint16(cols))

	frame, err := newWireFrame(frameHello, e.buf)
	if err != nil {
		return nil, err
	}
	if err := s.writeFrame(frame); err != nil {
		return nil, err
	}
	return s, nil
}

// Unmount implements engine.Renderer.
func (s *Session) Unmount(surface engine.Surface) {
	s.Close()
}

// Apply implements engine.Renderer: encodes patch and ships it as one
// patch frame, then updates the slot -> click-handler table used by
// incoming click frames.
func (s *Session) Apply(surface engine.Surface, patch engine.Patch) error {
	payload, err := encodePatch(patch)
	if err != nil {
		return err
	}

	frame, err := newWireFrame(framePatch, payload)
	if err != nil {
		return err
	}
	if err := s.writeFrame(frame); err != nil {
		return err
	}

	s.mu.Lock()
	applyClickDiffs(s.clickHandlers, patch)
	s.mu.Unlock()

	return nil
}

// Run implements engine.Scheduler: task runs once, ASAP, on this
// session's single event-loop goroutine.
func (s *Session) Run(task func()) engine.TaskHandle {
	select {
	case s.dispatch <- task:
	case <-s.done:
	}
	return &taskHandle{}
}

// RunLater implements engine.Scheduler using a real timer that, on fire,
// still hands the task to the event loop rather than running it on the
// timer's own goroutine.
func (s *Session) RunLater(task func(), delay time.Duration) engine.TaskHandle {
	timer := time.AfterFunc(delay, func() { s.Run(task) })
	return &taskHandle{cancel: func() { timer.Stop() }}
}

// RunRepeating implements engine.Scheduler using a ticker that hands each
// tick to the event loop.
func (s *Session) RunRepeating(task func(), interval time.Duration) engine.TaskHandle {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				s.Run(task)
			case <-stop:
				ticker.Stop()
				return
			case <-s.done:
				ticker.Stop()
				return
			}
		}
	}()

	return &taskHandle{cancel: func() { close(stop) }}
}

// eventLoop is the Session's single UI-owning goroutine (spec.md §5: "a
// single logical update thread per surface").
func (s *Session) eventLoop() {
	for {
		select {
		case task := <-s.dispatch:
			s.runDispatched(task)
		case <-s.done:
			return
		}
	}
}

func (s *Session) runDispatched(task func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("wsrenderer: dispatched task panicked", "panic", r)
		}
	}()
	task()
}

// readLoop decodes incoming client frames: click events and pong replies
// (grounded on the teacher's ReadLoop, pkg/server/websocket.go).
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("wsrenderer: read error", "error", err)
			}
			return
		}

		frame, err := decodeWireFrame(msg)
		if err != nil {
			s.logger.Error("wsrenderer: frame decode error", "error", err)
			continue
		}

		switch frame.typ {
		case frameClick:
			s.handleClickFrame(frame.payload)
		case framePong:
			s.logger.Debug("wsrenderer: received pong")
		default:
			s.logger.Warn("wsrenderer: unexpected frame type", "type", frame.typ)
		}
	}
}

func (s *Session) handleClickFrame(payload []byte) {
	event, err := decodeClickEvent(payload)
	if err != nil {
		s.logger.Error("wsrenderer: click decode error", "error", err)
		return
	}

	s.mu.Lock()
	handler := s.clickHandlers[event.Slot]
	s.mu.Unlock()

	if handler == nil {
		return
	}

	// Click handlers mutate state cells, which in turn call
	// request_render — they must run as a dispatched unit of work, not
	// inline on the read goroutine (spec.md §5).
	s.Run(func() { handler(event) })
}

func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(s.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) sendPing() error {
	frame, err := newWireFrame(framePing, nil)
	if err != nil {
		return err
	}
	return s.writeFrame(frame)
}

func (s *Session) writeFrame(frame wireFrame) error {
	if s.closed.Load() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame.encode()); err != nil {
		s.logger.Error("wsrenderer: write error", "error", err)
		return err
	}
	return nil
}

// Close tears down the connection and stops every goroutine started by
// Start. Safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.conn.Close()
}
