package dtos

import "github.com/chess-vn/skbclub/internal/domains/entities"

type TournamentResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Description string `json:"description"`
	Years       []int  `json:"years"`
}

type ArticleSummaryResponse struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Date         string `json:"date"`
	Slug         string `json:"slug"`
	TournamentId string `json:"tournamentId"`
	Year         int    `json:"year"`
	HasChessGame bool   `json:"hasChessGame"`
}

type ArticleResponse struct {
	ArticleSummaryResponse
	ChessGame string `json:"chessGame,omitempty"`
	Content   string `json:"content"`
}

func TournamentResponseFromEntity(t entities.Tournament, years []int) TournamentResponse {
	return TournamentResponse{
		Id:          t.Id,
		Name:        t.Name,
		FullName:    t.FullName,
		Description: t.Description,
		Years:       years,
	}
}

func ArticleSummaryResponseFromEntity(a entities.Article) ArticleSummaryResponse {
	return ArticleSummaryResponse{
		Title:        a.Title,
		Author:       a.Author,
		Date:         a.Date,
		Slug:         a.Slug,
		TournamentId: a.TournamentId,
		Year:         a.Year,
		HasChessGame: a.HasChessGame(),
	}
}

func ArticleResponseFromEntity(a entities.Article) ArticleResponse {
	return ArticleResponse{
		ArticleSummaryResponse: ArticleSummaryResponseFromEntity(a),
		ChessGame:              a.ChessGame,
		Content:                a.Content,
	}
}
