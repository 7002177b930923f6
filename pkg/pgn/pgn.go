// Package pgn binds PGN parsing and chess rules to the rest of the site.
package pgn

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/freeeve/pgn.v1"
)

// FENTimeline returns, for every game in r, the FEN after each half-move.
// Games without moves are skipped.
func FENTimeline(r io.Reader) ([][]string, error) {
	ps := pgn.NewPGNScanner(r)

	var games [][]string
	for ps.Next() {
		game, err := ps.Scan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan game %d: %w", len(games)+1, err)
		}

		// The scanner reports a trailing empty game at end of input.
		if len(game.Moves) == 0 {
			continue
		}

		b := pgn.NewBoard()
		fenList := make([]string, 0, len(game.Moves))
		for i, move := range game.Moves {
			if err := b.MakeMove(move); err != nil {
				return nil, fmt.Errorf("game %d: failed to make move %d: %w", len(games)+1, i+1, err)
			}
			fenList = append(fenList, b.String())
		}
		games = append(games, fenList)
	}

	return games, nil
}

func FENTimelineFromString(pgnString string) ([][]string, error) {
	return FENTimeline(strings.NewReader(pgnString))
}

func ReadContentFromFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
