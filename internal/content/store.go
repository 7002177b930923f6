// Package content reads the club's markdown articles and the games they
// reference.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chess-vn/skbclub/internal/domains/entities"
	"github.com/chess-vn/skbclub/pkg/logging"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Store reads articles laid out as <root>/<tournament>/<year>/<slug>.md.
type Store struct {
	fs   afero.Fs
	root string
}

func NewStore(fsys afero.Fs, root string) *Store {
	return &Store{
		fs:   fsys,
		root: root,
	}
}

func (s *Store) Fs() afero.Fs {
	return s.fs
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) dir(tournamentId string, year int) string {
	return filepath.Join(s.root, tournamentId, strconv.Itoa(year))
}

// List returns the tournament's articles for one year, newest first.
// Malformed files are skipped.
func (s *Store) List(ctx context.Context, tournamentId string, year int) ([]entities.Article, error) {
	if _, err := LookupTournament(tournamentId); err != nil {
		return nil, err
	}

	dir := s.dir(tournamentId, year)
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []entities.Article{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	articles := make([]entities.Article, 0, len(infos))
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			continue
		}
		file := filepath.Join(dir, info.Name())
		article, err := s.readArticle(file, tournamentId, year)
		if err != nil {
			logging.Warn("skipping article",
				zap.String("file", file),
				zap.Error(err),
			)
			continue
		}
		articles = append(articles, article)
	}

	SortNewestFirst(articles)
	return articles, nil
}

// Get looks an article up by its frontmatter slug, trying <slug>.md first.
func (s *Store) Get(ctx context.Context, tournamentId string, year int, slug string) (entities.Article, error) {
	if _, err := LookupTournament(tournamentId); err != nil {
		return entities.Article{}, err
	}

	if slug == "" || strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return entities.Article{}, fmt.Errorf("%w: invalid slug %q", ErrArticleNotFound, slug)
	}

	file := filepath.Join(s.dir(tournamentId, year), slug+".md")
	article, err := s.readArticle(file, tournamentId, year)
	if err == nil && article.Slug == slug {
		return article, nil
	}

	articles, err := s.List(ctx, tournamentId, year)
	if err != nil {
		return entities.Article{}, err
	}
	for _, a := range articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return entities.Article{}, fmt.Errorf("%w: %s/%d/%s", ErrArticleNotFound, tournamentId, year, slug)
}

func (s *Store) readArticle(file, tournamentId string, year int) (entities.Article, error) {
	data, err := afero.ReadFile(s.fs, file)
	if err != nil {
		return entities.Article{}, err
	}
	return ParseArticle(string(data), tournamentId, year)
}

// Latest merges the tournament's articles over all available years and
// returns the n newest. n <= 0 returns all of them.
func (s *Store) Latest(ctx context.Context, tournamentId string, n int) ([]entities.Article, error) {
	var merged []entities.Article
	for _, year := range AvailableYears {
		articles, err := s.List(ctx, tournamentId, year)
		if err != nil {
			return nil, err
		}
		merged = append(merged, articles...)
	}

	SortNewestFirst(merged)
	if n > 0 && len(merged) > n {
		merged = merged[:n]
	}
	if merged == nil {
		merged = []entities.Article{}
	}
	return merged, nil
}

// SortNewestFirst orders by date descending. Undated articles go last,
// ties are broken by slug.
func SortNewestFirst(articles []entities.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, okI := articles[i].PublishedAt()
		tj, okJ := articles[j].PublishedAt()
		switch {
		case okI && okJ && !ti.Equal(tj):
			return ti.After(tj)
		case okI != okJ:
			return okI
		default:
			return articles[i].Slug < articles[j].Slug
		}
	})
}
