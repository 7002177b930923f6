package entities

import "time"

type Article struct {
	Title        string
	Author       string
	Date         string
	Slug         string
	ChessGame    string
	TournamentId string
	Year         int
	Content      string
}

// PublishedAt parses Date, accepting plain dates and RFC 3339 timestamps.
func (a Article) PublishedAt() (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, a.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (a Article) HasChessGame() bool {
	return a.ChessGame != ""
}
