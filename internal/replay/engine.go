// Package replay turns a PGN string into a navigable sequence of positions.
package replay

import (
	"fmt"

	"github.com/chess-vn/skbclub/internal/domains/dtos"
	"github.com/chess-vn/skbclub/pkg/logging"
	"github.com/chess-vn/skbclub/pkg/pgn"
	"go.uber.org/zap"
)

// State is the lifecycle of an Engine.
type State uint8

const (
	Unloaded State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "UNLOADED"
	case Ready:
		return "READY"
	case Failed:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// gameRecord is the move list derived from one PGN string. It is never
// modified after load.
type gameRecord struct {
	moves []string
}

// navigation is only ever built from a record and an index, so the position
// always matches the index.
type navigation struct {
	index    int
	position string
}

// Engine owns one viewer session. It is not safe for concurrent use; callers
// serialise access.
type Engine struct {
	rules   pgn.Rules
	state   State
	record  *gameRecord
	nav     *navigation
	lastErr error
}

// New returns an Unloaded engine backed by rules.
func New(rules pgn.Rules) *Engine {
	return &Engine{rules: rules}
}

// Load replaces any previous game. On failure the engine ends up in Failed
// with no move list and no position.
func (e *Engine) Load(pgnString string) error {
	e.state = Unloaded
	e.record = nil
	e.nav = nil
	e.lastErr = nil

	moves, err := e.rules.ParseMoves(pgnString)
	if err != nil {
		return e.fail(&ParseError{Err: err})
	}
	if len(moves) == 0 {
		return e.fail(ErrEmptyGame)
	}
	initial, err := e.rules.ReplayToPosition(moves, 0)
	if err != nil {
		return e.fail(&ParseError{Err: err})
	}

	e.record = &gameRecord{moves: moves}
	e.nav = &navigation{index: 0, position: initial}
	e.state = Ready
	logging.Debug("game loaded", zap.Int("moves", len(moves)))
	return nil
}

func (e *Engine) fail(err error) error {
	e.state = Failed
	e.lastErr = err
	logging.Warn("failed to load game", zap.Error(err))
	return err
}

// GoToMove shows the position after move index. Index 0 is the initial
// position. Out-of-range indices and calls outside Ready are ignored. The
// position is always replayed from the start rather than derived from the
// current one.
func (e *Engine) GoToMove(index int) bool {
	if e.state != Ready || index < 0 || index > len(e.record.moves) {
		return false
	}
	position, err := e.rules.ReplayToPosition(e.record.moves, index)
	if err != nil {
		// Every prefix was validated by Load.
		panic(fmt.Sprintf("replay: validated prefix of %d moves failed: %v", index, err))
	}
	e.nav = &navigation{index: index, position: position}
	return true
}

// StepForward shows the position after the next move.
func (e *Engine) StepForward() bool {
	if e.state != Ready {
		return false
	}
	return e.GoToMove(e.nav.index + 1)
}

// StepBackward shows the position before the current move.
func (e *Engine) StepBackward() bool {
	if e.state != Ready {
		return false
	}
	return e.GoToMove(e.nav.index - 1)
}

// GoToStart shows the initial position.
func (e *Engine) GoToStart() bool {
	return e.GoToMove(0)
}

// GoToEnd shows the final position.
func (e *Engine) GoToEnd() bool {
	if e.state != Ready {
		return false
	}
	return e.GoToMove(len(e.record.moves))
}

// State reports where the engine is in its lifecycle.
func (e *Engine) State() State {
	return e.state
}

// Moves returns a copy of the move list, nil unless Ready.
func (e *Engine) Moves() []string {
	if e.state != Ready {
		return nil
	}
	moves := make([]string, len(e.record.moves))
	copy(moves, e.record.moves)
	return moves
}

// Len is the number of half-moves, 0 unless Ready.
func (e *Engine) Len() int {
	if e.state != Ready {
		return 0
	}
	return len(e.record.moves)
}

// Current returns the current index and FEN. ok is false unless Ready.
func (e *Engine) Current() (index int, fen string, ok bool) {
	if e.state != Ready {
		return 0, "", false
	}
	return e.nav.index, e.nav.position, true
}

// LastError is set only in Failed.
func (e *Engine) LastError() error {
	return e.lastErr
}

// Snapshot captures the current state for a presentation shell.
func (e *Engine) Snapshot() dtos.ViewerState {
	v := dtos.ViewerState{
		State: e.state.String(),
		Moves: []string{},
	}
	switch e.state {
	case Ready:
		v.Index, v.Fen, _ = e.Current()
		v.Moves = e.Moves()
		v.Total = len(v.Moves)
		v.Pairs = MovePairs(v.Moves)
	case Failed:
		v.Error = e.lastErr.Error()
	}
	return v
}

// MovePairs groups half-moves into numbered rows. The targets are the
// indices that show the position after each half-move.
func MovePairs(moves []string) []dtos.MovePair {
	pairs := make([]dtos.MovePair, 0, (len(moves)+1)/2)
	for i := 0; i < len(moves); i += 2 {
		pair := dtos.MovePair{
			Number:      i/2 + 1,
			White:       moves[i],
			WhiteTarget: i + 1,
		}
		if i+1 < len(moves) {
			pair.Black = moves[i+1]
			pair.BlackTarget = i + 2
		}
		pairs = append(pairs, pair)
	}
	return pairs
}
