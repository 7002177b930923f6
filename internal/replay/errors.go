package replay

import "errors"

var ErrEmptyGame = errors.New("no moves found in this game")

// ParseError reports malformed movetext or an illegal move. Its message is
// the rules library's diagnostic.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
