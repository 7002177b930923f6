package content

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/chess-vn/skbclub/internal/domains/entities"
	"gopkg.in/yaml.v3"
)

const defaultAuthor = "Unbekannt"

var (
	ErrMissingFrontmatter = errors.New("missing frontmatter")
	ErrArticleNotFound    = errors.New("article not found")
)

var frontmatterRegex = regexp.MustCompile(`^---\s*\n([\s\S]*?)\n---\s*\n([\s\S]*)$`)

type frontmatter struct {
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	Date      string `yaml:"date"`
	Slug      string `yaml:"slug"`
	ChessGame string `yaml:"chessGame"`
}

// ParseArticle splits a markdown file into frontmatter and body. Title and
// slug are required.
func ParseArticle(raw string, tournamentId string, year int) (entities.Article, error) {
	match := frontmatterRegex.FindStringSubmatch(raw)
	if match == nil {
		return entities.Article{}, fmt.Errorf("%w: no --- delimiters", ErrMissingFrontmatter)
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(match[1]), &fm); err != nil {
		return entities.Article{}, fmt.Errorf("failed to decode frontmatter: %w", err)
	}
	if fm.Title == "" || fm.Slug == "" {
		return entities.Article{}, fmt.Errorf("%w: title and slug are required", ErrMissingFrontmatter)
	}
	if fm.Author == "" {
		fm.Author = defaultAuthor
	}

	return entities.Article{
		Title:        fm.Title,
		Author:       fm.Author,
		Date:         fm.Date,
		Slug:         fm.Slug,
		ChessGame:    fm.ChessGame,
		TournamentId: tournamentId,
		Year:         year,
		Content:      match[2],
	}, nil
}
