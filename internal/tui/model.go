// Package tui provides the Bubble Tea game viewer.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/notnil/chess"

	"github.com/chess-vn/skbclub/internal/replay"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	lightSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#EEDAB5")).Foreground(lipgloss.Color("#1E1E1E"))
	darkSquare   = lipgloss.NewStyle().Background(lipgloss.Color("#B58862")).Foreground(lipgloss.Color("#1E1E1E"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	moveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	currentStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

const footer = "←/h zurück  →/l vor  g Anfang  G Ende  q beenden"

// Model implements the Bubble Tea viewer over a replay engine.
type Model struct {
	engine *replay.Engine
	title  string

	width  int
	height int
}

// NewModel constructs a viewer for an already loaded engine.
func NewModel(engine *replay.Engine, title string) *Model {
	return &Model{engine: engine, title: title}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "right", "l":
			m.engine.StepForward()
		case "left", "h":
			m.engine.StepBackward()
		case "home", "g":
			m.engine.GoToStart()
		case "end", "G":
			m.engine.GoToEnd()
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n\n")
	}

	switch m.engine.State() {
	case replay.Unloaded:
		b.WriteString(labelStyle.Render("Keine Partie geladen."))
	case replay.Failed:
		b.WriteString(errorStyle.Render("Fehler beim Laden der Partie: " + m.engine.LastError().Error()))
	case replay.Ready:
		index, fen, _ := m.engine.Current()
		board := renderBoard(fen)
		moves := renderMoves(m.engine.Moves(), index)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "    ", moves))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Zug %d / %d", index, m.engine.Len()))
	}

	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render(footer))
	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderBoard draws the position from white's side.
func renderBoard(fen string) string {
	opt, err := chess.FEN(fen)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	squares := chess.NewGame(opt).Position().Board().SquareMap()

	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d ", rank+1)))
		for file := 0; file < 8; file++ {
			sq := chess.NewSquare(chess.File(file), chess.Rank(rank))
			glyph := " "
			if p, ok := squares[sq]; ok && p != chess.NoPiece {
				glyph = p.String()
			}
			style := darkSquare
			if (rank+file)%2 == 1 {
				style = lightSquare
			}
			b.WriteString(style.Render(" " + glyph + " "))
		}
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("   a  b  c  d  e  f  g  h"))
	return b.String()
}

// renderMoves lists numbered pairs and highlights the half-move that led to
// the position at index.
func renderMoves(moves []string, index int) string {
	lines := make([]string, 0, len(replay.MovePairs(moves)))
	for _, pair := range replay.MovePairs(moves) {
		line := fmt.Sprintf("%3d. %s", pair.Number, styleMove(pair.White, pair.WhiteTarget == index))
		if pair.Black != "" {
			line += " " + styleMove(pair.Black, pair.BlackTarget == index)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func styleMove(san string, current bool) string {
	if current {
		return currentStyle.Render(san)
	}
	return moveStyle.Render(san)
}
