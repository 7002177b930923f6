package entities

import "time"

type AgendaEvent struct {
	Title string
	Time  string
	Note  string
}

type AgendaDay struct {
	Date   time.Time
	Day    int
	Today  bool
	Events []AgendaEvent
}

// AgendaMonth is a Monday-first month grid. Blank cells are nil.
type AgendaMonth struct {
	Year          int
	Month         time.Month
	FirstThursday int
	Cells         []*AgendaDay
}
