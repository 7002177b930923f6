package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chess-vn/skbclub/internal/domains/dtos"
	"github.com/chess-vn/skbclub/pkg/pgn"
	"github.com/gorilla/websocket"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameArticle = `---
title: Runde 1
author: Spielleitung
date: 2026-02-05
slug: runde-1
chessGame: games/runde-1.pgn
---
Bericht.
`

const noGameArticle = `---
title: Vorschau
date: 2026-01-10
slug: vorschau
---
Bald.
`

const brokenGameArticle = `---
title: Kaputt
date: 2026-01-01
slug: kaputt
chessGame: |
  1. e4 e5 2. Ke3
---
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"content/klub-meisterschaft/2026/runde-1.md":  gameArticle,
		"content/klub-meisterschaft/2026/vorschau.md": noGameArticle,
		"content/klub-meisterschaft/2026/kaputt.md":   brokenGameArticle,
		"content/games/runde-1.pgn":                   "[White \"A\"]\n\n1. e4 e5 2. Nf3 Nc6 *",
	}
	for name, data := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(data), 0o644))
	}

	srv := NewServer(Config{
		Port:         "0",
		IdleTimeout:  time.Minute,
		ContentRoot:  "content",
		FetchTimeout: time.Second,
	}, fsys, pgn.NotnilRules{})
	srv.now = func() time.Time {
		return time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
	}
	return srv
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)
	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var status dtos.ServerStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, 0, status.ActiveSessions)
}

func TestListTournaments(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/tournaments")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []dtos.TournamentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp)
	ids := make([]string, 0, len(resp))
	for _, tr := range resp {
		ids = append(ids, tr.Id)
	}
	assert.Contains(t, ids, "klub-meisterschaft")
	assert.NotEmpty(t, resp[0].Years)
}

func TestListArticles(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/api/tournaments/klub-meisterschaft/articles?year=2026")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp []dtos.ArticleSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, "runde-1", resp[0].Slug)
	assert.True(t, resp[0].HasChessGame)

	rec = get(t, srv, "/api/tournaments/klub-meisterschaft/articles?year=1999")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/tournaments/nope/articles").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/tournaments/sgm/articles?year=abc").Code)
}

func TestGetArticle(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/api/tournaments/klub-meisterschaft/articles/2026/runde-1")
	require.Equal(t, http.StatusOK, rec.Code)
	var article dtos.ArticleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, "Runde 1", article.Title)
	assert.Equal(t, "games/runde-1.pgn", article.ChessGame)

	rec = get(t, srv, "/api/tournaments/klub-meisterschaft/articles/2026/fehlt")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, ErrStatusNotFound, errResp.Code)
}

func TestGetArticleGame(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/api/tournaments/klub-meisterschaft/articles/2026/runde-1/game")
	require.Equal(t, http.StatusOK, rec.Code)
	var game dtos.GameReplayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &game))
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6"}, game.Moves)
	require.Len(t, game.Positions, 5)
	assert.Equal(t, pgn.StartingFEN, game.Positions[0])
	assert.Equal(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", game.Positions[4])

	rec = get(t, srv, "/api/tournaments/klub-meisterschaft/articles/2026/vorschau/game")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, srv, "/api/tournaments/klub-meisterschaft/articles/2026/kaputt/game")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, ErrStatusParseError, errResp.Code)
}

func TestGetArticleGameFetchFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	srv := newTestServer(t)
	article := "---\ntitle: Extern\nslug: extern\ndate: 2026-03-01\nchessGame: " + upstream.URL + "/game.pgn\n---\n"
	require.NoError(t, afero.WriteFile(srv.store.Fs(), "content/klub-meisterschaft/2026/extern.md", []byte(article), 0o644))

	rec := get(t, srv, "/api/tournaments/klub-meisterschaft/articles/2026/extern/game")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, ErrStatusFetchFailed, errResp.Code)
}

func TestLatestNews(t *testing.T) {
	srv := newTestServer(t)
	fsys := srv.store.Fs()
	for i, date := range []string{"2026-03-01", "2025-11-11", "2024-06-06"} {
		name := fmt.Sprintf("content/news/%s/news-%d.md", date[:4], i)
		article := fmt.Sprintf("---\ntitle: News %d\nslug: news-%d\ndate: %s\n---\n", i, i, date)
		require.NoError(t, afero.WriteFile(fsys, name, []byte(article), 0o644))
	}

	rec := get(t, srv, "/api/news/latest?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp []dtos.ArticleSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "news-0", resp[0].Slug)
	assert.Equal(t, "news-1", resp[1].Slug)

	rec = get(t, srv, "/api/news/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 3)

	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/news/latest?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/news/latest?limit=viele").Code)
}

func TestGetAgenda(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/api/agenda/2026/10")
	require.Equal(t, http.StatusOK, rec.Code)
	var month dtos.AgendaMonthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &month))
	assert.Equal(t, "Oktober", month.MonthName)
	assert.Equal(t, []string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}, month.Weekdays)
	assert.Equal(t, dtos.AgendaMonthRef{Year: 2026, Month: 9}, month.Prev)
	assert.Equal(t, dtos.AgendaMonthRef{Year: 2026, Month: 11}, month.Next)

	// 1 October 2026 is a Thursday.
	require.GreaterOrEqual(t, len(month.Cells), 4)
	assert.Nil(t, month.Cells[0])
	require.NotNil(t, month.Cells[3])
	assert.Equal(t, 1, month.Cells[3].Day)
	assert.Len(t, month.Cells[3].Events, 2)

	var today *dtos.AgendaDayResponse
	for _, cell := range month.Cells {
		if cell != nil && cell.Today {
			today = cell
		}
	}
	require.NotNil(t, today)
	assert.Equal(t, 14, today.Day)

	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/agenda/2026/13").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/agenda/x/1").Code)
}

type viewerConn struct {
	t    *testing.T
	conn *websocket.Conn
}

func dialViewer(t *testing.T, srv *Server) *viewerConn {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/viewer"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &viewerConn{t: t, conn: conn}
}

func (v *viewerConn) send(msg string) {
	v.t.Helper()
	require.NoError(v.t, v.conn.WriteMessage(websocket.TextMessage, []byte(msg)))
}

func (v *viewerConn) read() map[string]json.RawMessage {
	v.t.Helper()
	require.NoError(v.t, v.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := v.conn.ReadMessage()
	require.NoError(v.t, err)
	var msg map[string]json.RawMessage
	require.NoError(v.t, json.Unmarshal(data, &msg))
	return msg
}

func (v *viewerConn) readState() dtos.ViewerState {
	v.t.Helper()
	msg := v.read()
	require.JSONEq(v.t, `"viewer_state"`, string(msg["type"]))
	var state dtos.ViewerState
	require.NoError(v.t, json.Unmarshal(msg["viewer"], &state))
	return state
}

func (v *viewerConn) readError() string {
	v.t.Helper()
	msg := v.read()
	require.JSONEq(v.t, `"error"`, string(msg["type"]))
	var status string
	require.NoError(v.t, json.Unmarshal(msg["error"], &status))
	return status
}

func TestViewerInlineGame(t *testing.T) {
	v := dialViewer(t, newTestServer(t))

	initial := v.readState()
	assert.Equal(t, "UNLOADED", initial.State)

	v.send(`{"type":"load","data":{"pgn":"1. e4 e5 2. Nf3 Nc6"}}`)
	state := v.readState()
	assert.Equal(t, "READY", state.State)
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, 4, state.Total)
	assert.Equal(t, pgn.StartingFEN, state.Fen)

	v.send(`{"type":"navigate","data":{"action":"next"}}`)
	state = v.readState()
	assert.Equal(t, 1, state.Index)
	assert.True(t, strings.HasPrefix(state.Fen, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq "), state.Fen)

	v.send(`{"type":"navigate","data":{"action":"end"}}`)
	assert.Equal(t, 4, v.readState().Index)

	v.send(`{"type":"navigate","data":{"action":"goto","index":"99"}}`)
	assert.Equal(t, 4, v.readState().Index)

	v.send(`{"type":"navigate","data":{"action":"goto","index":"2"}}`)
	assert.Equal(t, 2, v.readState().Index)

	v.send(`{"type":"navigate","data":{"action":"start"}}`)
	assert.Equal(t, 0, v.readState().Index)
}

func TestViewerArticleGame(t *testing.T) {
	v := dialViewer(t, newTestServer(t))
	v.readState()

	v.send(`{"type":"load","data":{"tournament":"klub-meisterschaft","year":"2026","slug":"runde-1"}}`)
	state := v.readState()
	assert.Equal(t, "READY", state.State)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6"}, state.Moves)

	v.send(`{"type":"load","data":{"tournament":"klub-meisterschaft","year":"2026","slug":"vorschau"}}`)
	assert.Equal(t, ErrStatusNotFound, v.readError())
}

func TestViewerFailedLoad(t *testing.T) {
	v := dialViewer(t, newTestServer(t))
	v.readState()

	v.send(`{"type":"load","data":{"pgn":"[Event \"Leer\"]"}}`)
	state := v.readState()
	assert.Equal(t, "ERROR", state.State)
	assert.Equal(t, "no moves found in this game", state.Error)
	assert.Empty(t, state.Moves)

	v.send(`{"type":"navigate","data":{"action":"next"}}`)
	assert.Equal(t, "ERROR", v.readState().State)
}

func TestViewerProtocolErrors(t *testing.T) {
	v := dialViewer(t, newTestServer(t))
	v.readState()

	v.send(`not json`)
	assert.Equal(t, ErrStatusInvalidPayload, v.readError())

	v.send(`{"type":"navigate","data":{"action":"jump"}}`)
	assert.Equal(t, ErrStatusInvalidAction, v.readError())

	v.send(`{"type":"navigate","data":{"action":"goto","index":"zwei"}}`)
	assert.Equal(t, ErrStatusInvalidIndex, v.readError())

	v.send(`{"type":"load","data":{"tournament":"sgm"}}`)
	assert.Equal(t, ErrStatusInvalidPayload, v.readError())

	v.send(`{"type":"resign"}`)
	assert.Equal(t, ErrStatusInvalidPayload, v.readError())
}
