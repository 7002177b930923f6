package dtos

type ViewerState struct {
	State string     `json:"state"`
	Fen   string     `json:"fen,omitempty"`
	Index int        `json:"index"`
	Total int        `json:"total"`
	Moves []string   `json:"moves"`
	Pairs []MovePair `json:"pairs,omitempty"`
	Error string     `json:"error,omitempty"`
}

// MovePair is one numbered row of the move list. Targets are the move
// indices to navigate to, BlackTarget is 0 when black has not replied.
type MovePair struct {
	Number      int    `json:"number"`
	White       string `json:"white"`
	WhiteTarget int    `json:"whiteTarget"`
	Black       string `json:"black,omitempty"`
	BlackTarget int    `json:"blackTarget,omitempty"`
}

type GameReplayResponse struct {
	Moves     []string `json:"moves"`
	Positions []string `json:"positions"`
}

type ViewerMessage struct {
	Type    string      `json:"type"`
	Session string      `json:"session,omitempty"`
	Viewer  ViewerState `json:"viewer"`
}

type ViewerErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
