package dtos

import "github.com/chess-vn/skbclub/internal/domains/entities"

type AgendaEventResponse struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Note  string `json:"note,omitempty"`
}

type AgendaDayResponse struct {
	Day    int                   `json:"day"`
	Today  bool                  `json:"today"`
	Events []AgendaEventResponse `json:"events"`
}

type AgendaMonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// AgendaMonthResponse serialises blank grid cells as null.
type AgendaMonthResponse struct {
	Year      int                  `json:"year"`
	Month     int                  `json:"month"`
	MonthName string               `json:"monthName"`
	Weekdays  []string             `json:"weekdays"`
	Cells     []*AgendaDayResponse `json:"cells"`
	Prev      AgendaMonthRef       `json:"prev"`
	Next      AgendaMonthRef       `json:"next"`
}

func AgendaEventResponseFromEntity(e entities.AgendaEvent) AgendaEventResponse {
	return AgendaEventResponse{
		Title: e.Title,
		Time:  e.Time,
		Note:  e.Note,
	}
}

func AgendaMonthResponseFromEntity(m entities.AgendaMonth, monthName string, weekdays []string) AgendaMonthResponse {
	resp := AgendaMonthResponse{
		Year:      m.Year,
		Month:     int(m.Month),
		MonthName: monthName,
		Weekdays:  weekdays,
		Cells:     make([]*AgendaDayResponse, 0, len(m.Cells)),
	}
	for _, cell := range m.Cells {
		if cell == nil {
			resp.Cells = append(resp.Cells, nil)
			continue
		}
		day := &AgendaDayResponse{
			Day:    cell.Day,
			Today:  cell.Today,
			Events: make([]AgendaEventResponse, 0, len(cell.Events)),
		}
		for _, e := range cell.Events {
			day.Events = append(day.Events, AgendaEventResponseFromEntity(e))
		}
		resp.Cells = append(resp.Cells, day)
	}
	return resp
}
