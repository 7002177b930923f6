// Package agenda builds the club calendar.
package agenda

import (
	"errors"
	"time"

	"github.com/chess-vn/skbclub/internal/domains/entities"
)

var ErrInvalidMonth = errors.New("invalid month")

var (
	Weekdays   = []string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"}
	MonthNames = []string{
		"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember",
	}
)

var (
	MonatsBlitz = entities.AgendaEvent{
		Title: "Monats Blitz",
		Time:  "19:30 Uhr",
		Note:  "Jeden 1. Donnerstag im Monat",
	}
	Clubabend = entities.AgendaEvent{
		Title: "Clubabend",
		Time:  "19:00 Uhr",
		Note:  "Jeden Donnerstag (ausser Feiertage)",
	}
)

// RecurringEvents lists the regular club dates.
func RecurringEvents() []entities.AgendaEvent {
	return []entities.AgendaEvent{MonatsBlitz, Clubabend}
}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return MonthNames[m-1]
}

// FirstThursday returns the day of month of the first Thursday.
func FirstThursday(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return 1 + (int(time.Thursday)-int(first.Weekday())+7)%7
}

// mondayOffset maps Sunday=0..Saturday=6 to Monday=0..Sunday=6.
func mondayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Month builds the Monday-first grid for the month. now marks today and is
// compared in its own location.
func Month(year int, month time.Month, now time.Time) (entities.AgendaMonth, error) {
	if month < time.January || month > time.December {
		return entities.AgendaMonth{}, ErrInvalidMonth
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := mondayOffset(first.Weekday())
	firstThursday := FirstThursday(year, month)
	ny, nm, nd := now.Date()

	cells := make([]*entities.AgendaDay, offset, offset+daysInMonth+6)
	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1)
		cell := &entities.AgendaDay{
			Date:  date,
			Day:   day,
			Today: ny == year && nm == month && nd == day,
		}
		if date.Weekday() == time.Thursday {
			if day == firstThursday {
				cell.Events = append(cell.Events, MonatsBlitz)
			}
			cell.Events = append(cell.Events, Clubabend)
		}
		cells = append(cells, cell)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	return entities.AgendaMonth{
		Year:          year,
		Month:         month,
		FirstThursday: firstThursday,
		Cells:         cells,
	}, nil
}

func Next(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func Prev(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}
