package pgn

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/notnil/chess"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrReplayRange = errors.New("replay count out of range")

// Rules is the chess rules capability the replay engine consumes. Both
// operations start from the standard initial position and must not block.
type Rules interface {
	// ParseMoves returns the SAN of every half-move in the PGN movetext.
	ParseMoves(pgn string) ([]string, error)
	// ReplayToPosition plays the first count moves and returns the FEN.
	ReplayToPosition(moves []string, count int) (string, error)
}

// NotnilRules implements Rules on top of github.com/notnil/chess.
type NotnilRules struct{}

var _ Rules = NotnilRules{}

var (
	tagPairRegex   = regexp.MustCompile(`(?m)^\s*\[[^\]]*\]\s*$`)
	commentRegex   = regexp.MustCompile(`\{[^}]*\}|;[^\n]*`)
	variationRegex = regexp.MustCompile(`\([^()]*\)`)
	moveNumRegex   = regexp.MustCompile(`^\d+\.+`)
	resultTokenSet = map[string]struct{}{"1-0": {}, "0-1": {}, "1/2-1/2": {}, "*": {}}
	sanNoise       = strings.NewReplacer("+", "", "#", "", "!", "", "?", "", "0-0-0", "O-O-O", "0-0", "O-O")
)

// ParseMoves plays every movetext token from the initial position. The
// first token that is not a legal move fails the whole parse.
func (NotnilRules) ParseMoves(pgnString string) ([]string, error) {
	tokens := movetextTokens(pgnString)
	if len(tokens) == 0 {
		return nil, nil
	}

	game := chess.NewGame(chess.UseNotation(chess.AlgebraicNotation{}))
	for i, token := range tokens {
		if err := playSAN(game, token); err != nil {
			return nil, fmt.Errorf("failed to parse move %d (%s): %w", i/2+1, token, err)
		}
	}

	moves := game.Moves()
	positions := game.Positions()
	notation := chess.AlgebraicNotation{}
	sans := make([]string, 0, len(moves))
	for i, m := range moves {
		sans = append(sans, notation.Encode(positions[i], m))
	}
	return sans, nil
}

func (NotnilRules) ReplayToPosition(moves []string, count int) (string, error) {
	if count < 0 || count > len(moves) {
		return "", fmt.Errorf("%w: %d of %d", ErrReplayRange, count, len(moves))
	}
	game := chess.NewGame(chess.UseNotation(chess.AlgebraicNotation{}))
	for i, m := range moves[:count] {
		if err := playSAN(game, m); err != nil {
			return "", fmt.Errorf("failed to play move %d (%s): %w", i+1, m, err)
		}
	}
	return game.FEN(), nil
}

// playSAN matches san against the legal moves of the current position,
// ignoring check marks and annotation glyphs.
func playSAN(game *chess.Game, san string) error {
	want := sanNoise.Replace(san)
	if want == "" {
		return fmt.Errorf("empty move")
	}
	pos := game.Position()
	notation := chess.AlgebraicNotation{}
	for _, m := range game.ValidMoves() {
		if sanNoise.Replace(notation.Encode(pos, m)) == want {
			return game.Move(m)
		}
	}
	return fmt.Errorf("illegal or unreadable move %q", san)
}

// movetextTokens strips tag pairs, comments, variations, move numbers, NAGs
// and result tokens and returns what is left.
func movetextTokens(pgnString string) []string {
	text := tagPairRegex.ReplaceAllString(pgnString, "")
	text = commentRegex.ReplaceAllString(text, " ")
	for variationRegex.MatchString(text) {
		text = variationRegex.ReplaceAllString(text, " ")
	}

	var tokens []string
	for _, token := range strings.Fields(text) {
		if _, ok := resultTokenSet[token]; ok {
			continue
		}
		token = moveNumRegex.ReplaceAllString(token, "")
		if token == "" || strings.HasPrefix(token, "$") {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
