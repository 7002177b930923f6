package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chess-vn/skbclub/internal/agenda"
	"github.com/chess-vn/skbclub/internal/content"
	"github.com/chess-vn/skbclub/internal/domains/dtos"
	"github.com/chess-vn/skbclub/internal/replay"
	"github.com/chess-vn/skbclub/pkg/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dtos.ServerStatusResponse{
		Status:         "ok",
		ActiveSessions: s.activeSessions(),
	})
}

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments := content.Tournaments()
	resp := make([]dtos.TournamentResponse, 0, len(tournaments))
	for _, t := range tournaments {
		resp = append(resp, dtos.TournamentResponseFromEntity(t, content.AvailableYears))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	tournamentId := chi.URLParam(r, "tournament")
	year := content.AvailableYears[0]
	if v := r.URL.Query().Get("year"); v != "" {
		var err error
		year, err = strconv.Atoi(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, ErrStatusInvalidPayload, fmt.Errorf("invalid year %q", v))
			return
		}
	}

	articles, err := s.store.List(r.Context(), tournamentId, year)
	if err != nil {
		s.writeContentError(w, r, err)
		return
	}
	resp := make([]dtos.ArticleSummaryResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, dtos.ArticleSummaryResponseFromEntity(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

const defaultNewsLimit = 5

// handleLatestNews serves the newest news articles across all years.
func (s *Server) handleLatestNews(w http.ResponseWriter, r *http.Request) {
	limit := defaultNewsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSONError(w, http.StatusBadRequest, ErrStatusInvalidPayload, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	articles, err := s.store.Latest(r.Context(), content.NewsId, limit)
	if err != nil {
		s.writeContentError(w, r, err)
		return
	}
	resp := make([]dtos.ArticleSummaryResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, dtos.ArticleSummaryResponseFromEntity(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	tournamentId, year, slug, ok := articlePath(w, r)
	if !ok {
		return
	}
	article, err := s.store.Get(r.Context(), tournamentId, year, slug)
	if err != nil {
		s.writeContentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ArticleResponseFromEntity(article))
}

// handleGetArticleGame replays the article's game and returns every position.
func (s *Server) handleGetArticleGame(w http.ResponseWriter, r *http.Request) {
	tournamentId, year, slug, ok := articlePath(w, r)
	if !ok {
		return
	}
	pgnString, err := s.articleGame(r.Context(), tournamentId, year, slug)
	if err != nil {
		s.writeContentError(w, r, err)
		return
	}

	resp, err := buildGameReplay(s.rules, pgnString)
	if err != nil {
		code := ErrStatusParseError
		if errors.Is(err, replay.ErrEmptyGame) {
			code = ErrStatusEmptyGame
		}
		writeJSONError(w, http.StatusUnprocessableEntity, code, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAgenda(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, ErrStatusInvalidPayload, fmt.Errorf("invalid year"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, ErrStatusInvalidPayload, fmt.Errorf("invalid month"))
		return
	}

	m, err := agenda.Month(year, time.Month(month), s.now())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, ErrStatusInvalidPayload, err)
		return
	}
	resp := dtos.AgendaMonthResponseFromEntity(m, agenda.MonthName(m.Month), agenda.Weekdays)
	py, pm := agenda.Prev(m.Year, m.Month)
	ny, nm := agenda.Next(m.Year, m.Month)
	resp.Prev = dtos.AgendaMonthRef{Year: py, Month: int(pm)}
	resp.Next = dtos.AgendaMonthRef{Year: ny, Month: int(nm)}
	writeJSON(w, http.StatusOK, resp)
}

func articlePath(w http.ResponseWriter, r *http.Request) (string, int, string, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, ErrStatusInvalidPayload, fmt.Errorf("invalid year"))
		return "", 0, "", false
	}
	return chi.URLParam(r, "tournament"), year, chi.URLParam(r, "slug"), true
}

func (s *Server) writeContentError(w http.ResponseWriter, r *http.Request, err error) {
	var fetchErr *content.FetchError
	switch {
	case errors.Is(err, content.ErrUnknownTournament),
		errors.Is(err, content.ErrArticleNotFound),
		errors.Is(err, ErrNoChessGame):
		writeJSONError(w, http.StatusNotFound, ErrStatusNotFound, err)
	case errors.As(err, &fetchErr):
		logging.Warn("failed to fetch game",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("ref", fetchErr.Ref),
			zap.Error(err),
		)
		writeJSONError(w, http.StatusBadGateway, ErrStatusFetchFailed, err)
	default:
		logging.Error("content request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeJSONError(w, http.StatusInternalServerError, ErrStatusInternal, errors.New("internal error"))
	}
}
