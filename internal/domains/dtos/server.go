package dtos

type ServerStatusResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"activeSessions"`
}
