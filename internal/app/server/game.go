package server

import (
	"context"

	"github.com/chess-vn/skbclub/internal/domains/dtos"
	"github.com/chess-vn/skbclub/internal/replay"
	"github.com/chess-vn/skbclub/pkg/pgn"
)

// buildGameReplay loads the game into a fresh engine and records the
// position at every move index.
func buildGameReplay(rules pgn.Rules, pgnString string) (dtos.GameReplayResponse, error) {
	engine := replay.New(rules)
	if err := engine.Load(pgnString); err != nil {
		return dtos.GameReplayResponse{}, err
	}

	positions := make([]string, 0, engine.Len()+1)
	for i := 0; i <= engine.Len(); i++ {
		engine.GoToMove(i)
		_, fen, _ := engine.Current()
		positions = append(positions, fen)
	}
	return dtos.GameReplayResponse{
		Moves:     engine.Moves(),
		Positions: positions,
	}, nil
}

// articleGame returns the PGN text referenced by an article.
func (s *Server) articleGame(ctx context.Context, tournamentId string, year int, slug string) (string, error) {
	article, err := s.store.Get(ctx, tournamentId, year, slug)
	if err != nil {
		return "", err
	}
	if !article.HasChessGame() {
		return "", ErrNoChessGame
	}
	return s.fetcher.Fetch(ctx, article.ChessGame)
}
