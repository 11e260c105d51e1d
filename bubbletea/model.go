// Package bubbletea provides an interactive terminal preview of a fix
// outcome: the corrected patch with its rebuilt headers, plus any hunks
// that could not be resolved.
package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	patchfix "github.com/fourlexboehm/patchfix"
)

// tabWidth is the standard terminal tab stop interval.
const tabWidth = 8

// Model renders a patchfix.Preview in a scrollable viewport.
type Model struct {
	preview   *patchfix.Preview
	tokenizer patchfix.Tokenizer
	language  string
	renderer  *lipgloss.Renderer

	viewport viewport.Model
	ready    bool
}

// Option configures a Model.
type Option func(*Model)

// WithTokenizer enables syntax coloring of context lines for the given
// language.
func WithTokenizer(t patchfix.Tokenizer, language string) Option {
	return func(m *Model) {
		m.tokenizer = t
		m.language = language
	}
}

// WithRenderer sets the lipgloss renderer. Tests use this to pin a color
// profile without touching global state.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// NewModel creates a preview model.
func NewModel(p *patchfix.Preview, opts ...Option) *Model {
	m := &Model{
		preview:  p,
		renderer: lipgloss.DefaultRenderer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.contentView())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m *Model) headerView() string {
	title := m.preview.Path
	if title == "" {
		title = "patch"
	}
	titleStyle := m.renderer.NewStyle().Bold(true)

	status, statusStyle := m.status()
	return titleStyle.Render(title) + "  " + statusStyle.Render(status)
}

func (m *Model) status() (string, lipgloss.Style) {
	res := m.preview.Result
	switch {
	case res == nil:
		return "", m.renderer.NewStyle()
	case res.Mismatch != nil:
		return fmt.Sprintf("mismatch at line %d", res.Mismatch.Line),
			m.renderer.NewStyle().Foreground(lipgloss.Color("#e06c75"))
	case len(res.Unresolved) > 0:
		return fmt.Sprintf("%d hunk(s) unresolved", len(res.Unresolved)),
			m.renderer.NewStyle().Foreground(lipgloss.Color("#e5c07b"))
	default:
		return "applied", m.renderer.NewStyle().Foreground(lipgloss.Color("#98c379"))
	}
}

func (m *Model) footerView() string {
	return m.renderer.NewStyle().
		Foreground(lipgloss.Color("#5c6370")).
		Render("↑/↓ scroll · q quit")
}

func (m *Model) contentView() string {
	var b strings.Builder

	if m.preview.Corrected != "" {
		for _, line := range strings.Split(strings.TrimSuffix(m.preview.Corrected, "\n"), "\n") {
			b.WriteString(m.renderLine(line))
			b.WriteByte('\n')
		}
	}

	if res := m.preview.Result; res != nil {
		if len(res.Unresolved) > 0 {
			warn := m.renderer.NewStyle().Foreground(lipgloss.Color("#e5c07b"))
			b.WriteString("\n" + warn.Render("unresolved hunks:") + "\n")
			for _, body := range res.Unresolved {
				for _, line := range strings.Split(body, "\n") {
					b.WriteString(warn.Render(expandTabs(line)) + "\n")
				}
			}
		}
		if res.Mismatch != nil {
			fail := m.renderer.NewStyle().Foreground(lipgloss.Color("#e06c75"))
			b.WriteString("\n" + fail.Render(fmt.Sprintf(
				"apply failed at line %d: expected %q, found %q",
				res.Mismatch.Line, res.Mismatch.Expected, res.Mismatch.Found)) + "\n")
		}
	}

	return b.String()
}

// renderLine styles one line of the corrected patch by its unified-diff
// prefix. Context line content is syntax-colored when a tokenizer is
// configured.
func (m *Model) renderLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return m.renderer.NewStyle().
			Foreground(lipgloss.Color("#56b6c2")).Bold(true).
			Render(expandTabs(line))
	case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
		return m.renderer.NewStyle().Bold(true).Render(expandTabs(line))
	case strings.HasPrefix(line, "+"):
		return m.renderer.NewStyle().
			Foreground(lipgloss.Color("#98c379")).
			Render(expandTabs(line))
	case strings.HasPrefix(line, "-"):
		return m.renderer.NewStyle().
			Foreground(lipgloss.Color("#e06c75")).
			Render(expandTabs(line))
	case strings.HasPrefix(line, " "):
		return " " + m.renderTokens(expandTabs(line[1:]))
	default:
		return expandTabs(line)
	}
}

func (m *Model) renderTokens(source string) string {
	if m.tokenizer == nil || m.language == "" {
		return source
	}
	tokens := m.tokenizer.Tokenize(m.language, source)
	if tokens == nil {
		return source
	}
	var b strings.Builder
	for _, tok := range tokens {
		st := m.renderer.NewStyle()
		if tok.Style.Foreground != "" {
			st = st.Foreground(lipgloss.Color(tok.Style.Foreground))
		}
		if tok.Style.Bold {
			st = st.Bold(true)
		}
		b.WriteString(st.Render(tok.Text))
	}
	return b.String()
}

// expandTabs replaces tabs with spaces up to the next tab stop so that
// styled output lines align; lipgloss measures tabs as zero width.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
