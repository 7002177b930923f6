// Package main provides the skb command line tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/chess-vn/skbclub/internal/agenda"
	"github.com/chess-vn/skbclub/internal/content"
	"github.com/chess-vn/skbclub/internal/domains/entities"
	"github.com/chess-vn/skbclub/internal/replay"
	"github.com/chess-vn/skbclub/internal/tui"
	"github.com/chess-vn/skbclub/pkg/pgn"
)

const defaultContentRoot = "./content"

var now = time.Now

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "skb",
		Short:        "Schachklub tools: game viewer, articles and agenda",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newPositionsCmd())
	rootCmd.AddCommand(newArticlesCmd())
	rootCmd.AddCommand(newAgendaCmd())
	return rootCmd
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file.pgn>",
		Short: "Step through a game in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pgnString, err := pgn.ReadContentFromFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read game: %w", err)
			}
			engine := replay.New(pgn.NotnilRules{})
			// A failed load is shown by the viewer.
			_ = engine.Load(pgnString)

			model := tui.NewModel(engine, filepath.Base(args[0]))
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			return nil
		},
	}
}

func newPositionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "positions <file.pgn>",
		Short: "Print the FEN after every half-move of every game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pgnString, err := pgn.ReadContentFromFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read games: %w", err)
			}
			games, err := pgn.FENTimelineFromString(pgnString)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, fens := range games {
				fmt.Fprintf(out, "# Partie %d\n", i+1)
				for j, fen := range fens {
					fmt.Fprintf(out, "%d\t%s\n", j+1, fen)
				}
			}
			return nil
		},
	}
}

func newArticlesCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "articles <tournament> [year]",
		Short: "List a tournament's articles, newest first",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := content.AvailableYears[0]
			if len(args) == 2 {
				var err error
				if year, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid year %q", args[1])
				}
			}
			store := content.NewStore(afero.NewOsFs(), root)
			articles, err := store.List(context.Background(), args[0], year)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(articles) == 0 {
				fmt.Fprintln(out, "Keine Artikel gefunden.")
				return nil
			}
			for _, a := range articles {
				marker := " "
				if a.HasChessGame() {
					marker = "♟"
				}
				fmt.Fprintf(out, "%-10s %s %-24s %s (%s)\n", a.Date, marker, a.Slug, a.Title, a.Author)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "content", defaultContentRoot, "content directory")
	return cmd
}

func newAgendaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agenda [year month]",
		Short: "Print the club calendar for a month",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or year and month")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			today := now()
			year, month := today.Year(), today.Month()
			if len(args) == 2 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				m, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid month %q", args[1])
				}
				year, month = y, time.Month(m)
			}
			grid, err := agenda.Month(year, month, today)
			if err != nil {
				return err
			}
			printAgenda(cmd.OutOrStdout(), grid)
			return nil
		},
	}
}

// printAgenda writes the grid followed by the month's event dates. Today is
// marked with *, days with events with +.
func printAgenda(out io.Writer, grid entities.AgendaMonth) {
	fmt.Fprintf(out, "%s %d\n", agenda.MonthName(grid.Month), grid.Year)
	fmt.Fprintln(out, strings.Join(padAll(agenda.Weekdays), " "))

	var events []string
	for i, cell := range grid.Cells {
		switch {
		case cell == nil:
			fmt.Fprint(out, "    ")
		default:
			mark := " "
			if cell.Today {
				mark = "*"
			} else if len(cell.Events) > 0 {
				mark = "+"
			}
			fmt.Fprintf(out, "%3d%s", cell.Day, mark)
			for _, e := range cell.Events {
				events = append(events, fmt.Sprintf("%s %02d.%02d.  %s  %s",
					agenda.Weekdays[i%7], cell.Day, int(grid.Month), e.Time, e.Title))
			}
		}
		if i%7 == 6 {
			fmt.Fprintln(out)
		}
	}
	if len(events) > 0 {
		fmt.Fprintln(out)
		for _, e := range events {
			fmt.Fprintln(out, e)
		}
	}
}

func padAll(names []string) []string {
	padded := make([]string, len(names))
	for i, n := range names {
		padded[i] = fmt.Sprintf("%3s", n)
	}
	return padded
}
