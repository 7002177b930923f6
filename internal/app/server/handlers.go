package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/chess-vn/skbclub/pkg/logging"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// handleViewer upgrades to a websocket and runs one viewer session until the
// connection closes or stays idle past the configured timeout.
func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	c := newClient(conn)
	ctx, cancel := context.WithCancel(r.Context())
	session := newSession(ctx, uuid.NewString(), s.rules, c)
	s.addSession(session)
	go session.start()
	defer func() {
		session.stop()
		s.removeSession(session.id)
		logging.Info("viewer disconnected", zap.String("session_id", session.id))
	}()
	// Abort an in-flight fetch before waiting for the session.
	defer cancel()

	logging.Info("viewer connected",
		zap.String("session_id", session.id),
		zap.String("remote_address", conn.RemoteAddr().String()),
	)
	// Send the unloaded state so the client learns its session id.
	session.notify()

	for {
		if s.config.IdleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info(
					"connection closed",
					zap.String("session_id", session.id),
					zap.Error(err),
				)
			}
			_ = c.writeControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			return
		}

		var p payload
		if err := json.Unmarshal(message, &p); err != nil {
			session.sendError(ErrStatusInvalidPayload)
			continue
		}
		s.handleWebSocketMessage(session, p)
	}
}

// Handler for when a viewer sends a message
func (s *Server) handleWebSocketMessage(session *Session, p payload) {
	switch p.Type {
	case "load":
		source, ok := s.loadSource(p.Data)
		if !ok {
			session.sendError(ErrStatusInvalidPayload)
			return
		}
		if err := session.processLoad(source); err != nil {
			logging.Error("failed to queue load", zap.String("session_id", session.id), zap.Error(err))
		}
	case "navigate":
		action := Action(p.Data["action"])
		if !action.valid() {
			session.sendError(ErrStatusInvalidAction)
			return
		}
		index := 0
		if action == GOTO {
			var err error
			index, err = strconv.Atoi(p.Data["index"])
			if err != nil {
				session.sendError(ErrStatusInvalidIndex)
				return
			}
		}
		if err := session.processNavigation(action, index); err != nil {
			logging.Error("failed to queue navigation", zap.String("session_id", session.id), zap.Error(err))
		}
	default:
		logging.Info("invalid payload type", zap.String("type", p.Type))
		session.sendError(ErrStatusInvalidPayload)
	}
}

// loadSource picks inline PGN or an article reference from the payload.
func (s *Server) loadSource(data map[string]string) (pgnSource, bool) {
	if pgnString, ok := data["pgn"]; ok {
		return func(context.Context) (string, error) {
			return pgnString, nil
		}, true
	}
	tournamentId, slug := data["tournament"], data["slug"]
	year, err := strconv.Atoi(data["year"])
	if tournamentId == "" || slug == "" || err != nil {
		return nil, false
	}
	return func(ctx context.Context) (string, error) {
		return s.articleGame(ctx, tournamentId, year, slug)
	}, true
}
