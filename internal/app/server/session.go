package server

import (
	"context"
	"errors"
	"sync"

	"github.com/chess-vn/skbclub/internal/content"
	"github.com/chess-vn/skbclub/internal/domains/dtos"
	"github.com/chess-vn/skbclub/internal/replay"
	"github.com/chess-vn/skbclub/pkg/logging"
	"github.com/chess-vn/skbclub/pkg/pgn"
	"go.uber.org/zap"
)

type (
	CommandKind uint8
	Action      string
)

const (
	LOAD CommandKind = iota
	NAVIGATE

	NEXT  Action = "next"
	PREV  Action = "prev"
	START Action = "start"
	END   Action = "end"
	GOTO  Action = "goto"
)

func (a Action) valid() bool {
	switch a {
	case NEXT, PREV, START, END, GOTO:
		return true
	}
	return false
}

type pgnSource func(ctx context.Context) (string, error)

type command struct {
	kind   CommandKind
	source pgnSource
	action Action
	index  int
}

// Session is one live viewer. Commands are applied in arrival order by a
// single goroutine, and the engine is only touched from that goroutine.
type Session struct {
	id     string
	engine *replay.Engine
	client *client
	ctx    context.Context
	cmdCh  chan command
	done   chan struct{}

	stopOnce sync.Once
	mu       sync.Mutex
	stopped  bool
}

func newSession(ctx context.Context, id string, rules pgn.Rules, c *client) *Session {
	return &Session{
		id:     id,
		engine: replay.New(rules),
		client: c,
		ctx:    ctx,
		cmdCh:  make(chan command, 16),
		done:   make(chan struct{}),
	}
}

func (s *Session) start() {
	defer close(s.done)
	for cmd := range s.cmdCh {
		switch cmd.kind {
		case LOAD:
			if !s.load(cmd.source) {
				continue
			}
		case NAVIGATE:
			s.navigate(cmd.action, cmd.index)
		}
		s.notify()
	}
}

func (s *Session) load(source pgnSource) bool {
	pgnString, err := source(s.ctx)
	if err != nil {
		var fetchErr *content.FetchError
		status := ErrStatusInvalidPayload
		switch {
		case errors.As(err, &fetchErr):
			status = ErrStatusFetchFailed
		case errors.Is(err, content.ErrArticleNotFound),
			errors.Is(err, content.ErrUnknownTournament),
			errors.Is(err, ErrNoChessGame):
			status = ErrStatusNotFound
		}
		logging.Info("viewer load failed",
			zap.String("session_id", s.id),
			zap.String("status", status),
			zap.Error(err),
		)
		s.sendError(status)
		return false
	}
	// Load failures are part of the viewer state, not protocol errors.
	_ = s.engine.Load(pgnString)
	return true
}

func (s *Session) navigate(action Action, index int) {
	switch action {
	case NEXT:
		s.engine.StepForward()
	case PREV:
		s.engine.StepBackward()
	case START:
		s.engine.GoToStart()
	case END:
		s.engine.GoToEnd()
	case GOTO:
		s.engine.GoToMove(index)
	}
}

func (s *Session) notify() {
	err := s.client.writeJson(dtos.ViewerMessage{
		Type:    "viewer_state",
		Session: s.id,
		Viewer:  s.engine.Snapshot(),
	})
	if err != nil {
		logging.Error("couldn't notify viewer", zap.String("session_id", s.id), zap.Error(err))
	}
}

func (s *Session) sendError(status string) {
	err := s.client.writeJson(dtos.ViewerErrorMessage{
		Type:  "error",
		Error: status,
	})
	if err != nil {
		logging.Error("couldn't notify viewer", zap.String("session_id", s.id), zap.Error(err))
	}
}

func (s *Session) process(cmd command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrSessionStopped
	}
	s.cmdCh <- cmd
	return nil
}

func (s *Session) processLoad(source pgnSource) error {
	return s.process(command{kind: LOAD, source: source})
}

func (s *Session) processNavigation(action Action, index int) error {
	return s.process(command{kind: NAVIGATE, action: action, index: index})
}

// stop drains queued commands and waits for the worker to exit.
func (s *Session) stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		close(s.cmdCh)
		s.mu.Unlock()
	})
	<-s.done
}
