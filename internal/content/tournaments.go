package content

import (
	"errors"

	"github.com/chess-vn/skbclub/internal/domains/entities"
)

const NewsId = "news"

var ErrUnknownTournament = errors.New("unknown tournament")

// AvailableYears is newest first.
var AvailableYears = []int{2026, 2025, 2024, 2023}

var tournaments = []entities.Tournament{
	{
		Id:          "sgm",
		Name:        "SGM",
		FullName:    "Schweizerische Gruppemeisterschaft (SGM)",
		Description: "Das wichtigste Turnier des Jahres - Schweizerische Gruppemeisterschaft.",
	},
	{
		Id:          "smm",
		Name:        "SMM",
		FullName:    "Schweizerische Mannschaftsmeisterschaft (SMM)",
		Description: "Schweizerische Mannschaftsmeisterschaft - Regionaler Wettbewerb.",
	},
	{
		Id:          "klub-meisterschaft",
		Name:        "Klub-Meisterschaft",
		FullName:    "Klub-Meisterschaft",
		Description: "Internes Klubturnier für alle Mitglieder.",
	},
	{
		Id:          "bvm",
		Name:        "BVM",
		FullName:    "Berner Vereinsmeisterschaft (BVM)",
		Description: "Traditionelles Regionalturnier - Berner Vereinsmeisterschaft.",
	},
	{
		Id:          NewsId,
		Name:        "News",
		FullName:    "News Archiv",
		Description: "Neuigkeiten aus dem Klub.",
	},
}

func Tournaments() []entities.Tournament {
	out := make([]entities.Tournament, len(tournaments))
	copy(out, tournaments)
	return out
}

func LookupTournament(id string) (entities.Tournament, error) {
	for _, t := range tournaments {
		if t.Id == id {
			return t, nil
		}
	}
	return entities.Tournament{}, ErrUnknownTournament
}
