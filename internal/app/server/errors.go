package server

import "errors"

var (
	ErrStatusInvalidPayload string = "INVALID_PAYLOAD"
	ErrStatusInvalidAction  string = "INVALID_ACTION"
	ErrStatusInvalidIndex   string = "INVALID_INDEX"
	ErrStatusFetchFailed    string = "FETCH_FAILED"
	ErrStatusNotFound       string = "NOT_FOUND"
	ErrStatusEmptyGame      string = "EMPTY_GAME"
	ErrStatusParseError     string = "PARSE_ERROR"
	ErrStatusInternal       string = "INTERNAL"
)

var (
	ErrNoChessGame    = errors.New("article has no chess game")
	ErrSessionStopped = errors.New("viewer session stopped")
)
