// Package tui is the terminal rendition of the card game: four number
// cards, operator cards, an expression row, and a verdict line.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/i18n"
	"svw.info/make24/internal/usecase"
)

// Messages

type puzzleMsg struct {
	puzzle *domain.Puzzle
	err    error
}

type checkMsg struct {
	res usecase.CheckResult
	err error
}

// Model is the bubbletea model for one play session.
type Model struct {
	ctx    context.Context
	uc     *usecase.Service
	bundle *i18n.Bundle
	tag    language.Tag

	puzzle *domain.Puzzle
	tokens []domain.Token
	cards  []int // deal position per token, -1 for operators and parens
	last   *usecase.CheckResult
	err    error

	keys keyMap
	help help.Model
}

func New(ctx context.Context, uc *usecase.Service, b *i18n.Bundle, locale string) Model {
	return Model{
		ctx:    ctx,
		uc:     uc,
		bundle: b,
		tag:    b.Match(locale),
		keys:   defaultKeys(),
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd { return m.deal() }

func (m Model) deal() tea.Cmd {
	return func() tea.Msg {
		p, _, err := m.uc.Generate(m.ctx, 0)
		return puzzleMsg{puzzle: p, err: err}
	}
}

func (m Model) check() tea.Cmd {
	req := usecase.CheckRequest{Numbers: &m.puzzle.Numbers, Tokens: append([]domain.Token(nil), m.tokens...)}
	if m.uc.Storage != nil {
		req.PuzzleID = m.puzzle.ID
	}
	return func() tea.Msg {
		res, err := m.uc.Check(m.ctx, req)
		return checkMsg{res: res, err: err}
	}
}

var opKeys = map[string]domain.Token{
	"+": domain.OperatorToken(domain.Add),
	"-": domain.OperatorToken(domain.Sub),
	"*": domain.OperatorToken(domain.Mul),
	"x": domain.OperatorToken(domain.Mul),
	"/": domain.OperatorToken(domain.Div),
	"(": domain.LParen(),
	")": domain.RParen(),
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case puzzleMsg:
		m.err = msg.err
		if msg.err == nil {
			m.puzzle = msg.puzzle
			m.tokens, m.cards, m.last = nil, nil, nil
		}
		return m, nil

	case checkMsg:
		m.err = msg.err
		if msg.err == nil {
			res := msg.res
			m.last = &res
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Lang):
			m.tag = m.bundle.Next(m.tag)
		case key.Matches(msg, m.keys.Reset):
			return m, m.deal()
		}
		if m.puzzle == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Card):
			i, _ := strconv.Atoi(msg.String())
			m.place(i - 1)
		case key.Matches(msg, m.keys.Op), key.Matches(msg, m.keys.Paren):
			m.push(opKeys[msg.String()], -1)
		case key.Matches(msg, m.keys.Undo):
			if n := len(m.tokens); n > 0 {
				m.tokens, m.cards = m.tokens[:n-1], m.cards[:n-1]
				m.last, m.err = nil, nil
			}
		case key.Matches(msg, m.keys.Check):
			return m, m.check()
		}
	}
	return m, nil
}

// place appends the card at deal position i unless it is already on
// the expression row.
func (m *Model) place(i int) {
	if i < 0 || i >= len(m.puzzle.Numbers) || m.used()[i] {
		return
	}
	m.push(domain.NumberToken(m.puzzle.Numbers[i]), i)
}

func (m *Model) push(t domain.Token, card int) {
	m.tokens = append(m.tokens, t)
	m.cards = append(m.cards, card)
	m.last, m.err = nil, nil
}

// used marks deal positions already placed.
func (m Model) used() [4]bool {
	var u [4]bool
	for _, c := range m.cards {
		if c >= 0 {
			u[c] = true
		}
	}
	return u
}

// Expression renders the placed tokens with display glyphs.
func (m Model) Expression() string {
	parts := make([]string, len(m.tokens))
	for i, t := range m.tokens {
		if t.Kind == domain.KindOperator {
			parts[i] = t.Op.Glyph()
		} else {
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, " ")
}

// Styles

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(6).
			Align(lipgloss.Center)
	usedCardStyle = cardStyle.BorderForeground(lipgloss.Color("238")).Foreground(lipgloss.Color("238")).Faint(true)
	opCardStyle   = cardStyle.Width(3).BorderForeground(lipgloss.Color("63"))
	exprStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(40)
	okStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	rulesStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

func (m Model) View() string {
	p := i18n.Printer(m.tag)
	var b strings.Builder

	b.WriteString(titleStyle.Render(p.Sprintf("game.title")))
	b.WriteString("\n")

	if m.puzzle != nil {
		used := m.used()
		cards := make([]string, 0, len(m.puzzle.Numbers))
		for i, n := range m.puzzle.Numbers {
			st := cardStyle
			if used[i] {
				st = usedCardStyle
			}
			cards = append(cards, st.Render(strconv.Itoa(i+1)+": "+strconv.Itoa(n)))
		}
		b.WriteString(labelStyle.Render(p.Sprintf("label.numbers")) + "\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")

		ops := make([]string, 0, len(domain.Operators)+2)
		for _, op := range domain.Operators {
			ops = append(ops, opCardStyle.Render(op.Glyph()))
		}
		ops = append(ops, opCardStyle.Render("("), opCardStyle.Render(")"))
		b.WriteString(labelStyle.Render(p.Sprintf("label.operators")) + "\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, ops...) + "\n")

		b.WriteString(labelStyle.Render(p.Sprintf("label.expression")) + "\n")
		b.WriteString(exprStyle.Render(m.Expression()) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(failStyle.Render(m.err.Error()) + "\n")
	case m.last != nil:
		st := failStyle
		if m.last.Correct {
			st = okStyle
		}
		b.WriteString(st.Render(i18n.Verdict(p, m.last.Correct, m.last.Outcome)) + "\n")
		for _, c := range m.last.Conflicts {
			b.WriteString(labelStyle.Render("  "+i18n.ConflictText(p, c)) + "\n")
		}
	}

	b.WriteString(rulesStyle.Render(strings.Join([]string{
		p.Sprintf("rules.title"),
		p.Sprintf("rules.1"),
		p.Sprintf("rules.2"),
		p.Sprintf("rules.3"),
	}, "\n")))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
