// Package browse provides an interactive terminal browser for expansion
// results. Records are listed by code with fuzzy filtering, and the
// assembled record of the selected entry is shown alongside.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"
)

// Entry is one browsable expansion result.
type Entry struct {
	Code   string // expanded code of the record
	Record string // assembled record document
}

// visibleRows is the maximum number of list rows shown at once.
const visibleRows = 12

const filterPrompt = "➜ "

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	codeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	recordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// model is the Bubble Tea model for the record browser.
type model struct {
	title   string
	input   textinput.Model
	entries []Entry
	codes   []string // backing list for fuzzy matching
	matches fuzzy.Matches
	cursor  int  // selected row within matches
	offset  int  // first visible row
	detail  bool // whether the record pane is expanded
}

func newModel(title string, entries []Entry) model {
	input := textinput.New()
	input.Prompt = promptStyle.Render(filterPrompt)
	input.Placeholder = "filter"
	input.Focus()

	codes := make([]string, len(entries))
	for i, e := range entries {
		codes[i] = e.Code
	}

	m := model{
		title:   title,
		input:   input,
		entries: entries,
		codes:   codes,
	}
	m.filter()

	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// filter recomputes the fuzzy matches from the current input text.
// An empty pattern admits every entry in document order.
func (m *model) filter() {
	pattern := m.input.Value()

	if pattern == "" {
		m.matches = make(fuzzy.Matches, len(m.codes))
		for i, code := range m.codes {
			m.matches[i] = fuzzy.Match{Str: code, Index: i}
		}
	} else {
		m.matches = fuzzy.Find(pattern, m.codes)
	}

	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}

	m.clamp()
}

// clamp keeps the cursor within the visible window.
func (m *model) clamp() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}

	if m.cursor >= m.offset+visibleRows {
		m.offset = m.cursor - visibleRows + 1
	}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.detail {
			m.detail = false

			return m, nil
		}

		if m.input.Value() != "" {
			m.input.SetValue("")
			m.filter()

			return m, nil
		}

		return m, tea.Quit

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.clamp()
		}

		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.matches)-1 {
			m.cursor++
			m.clamp()
		}

		return m, nil

	case tea.KeyEnter:
		if len(m.matches) > 0 {
			m.detail = !m.detail
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.filter()

	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(countStyle.Render(
		fmt.Sprintf("  %d/%d", len(m.matches), len(m.entries)),
	))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	end := min(m.offset+visibleRows, len(m.matches))

	for i := m.offset; i < end; i++ {
		match := m.matches[i]

		line := highlight(match)
		if i == m.cursor {
			line = selectedStyle.Render(match.Str)
		}

		b.WriteString("  " + line + "\n")
	}

	if len(m.matches) == 0 {
		b.WriteString(hintStyle.Render("  no matching records") + "\n")
	}

	if m.detail && m.cursor < len(m.matches) {
		entry := m.entries[m.matches[m.cursor].Index]

		b.WriteString("\n")
		b.WriteString(recordStyle.Render(entry.Record))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(
		"enter: toggle record  esc: clear/quit  ctrl+c: quit",
	))
	b.WriteString("\n")

	return b.String()
}

// highlight renders a match with its matched runes emphasized.
func highlight(match fuzzy.Match) string {
	var b strings.Builder

	for i, r := range match.Str {
		styled := false

		for _, idx := range match.MatchedIndexes {
			if i == idx {
				styled = true

				break
			}
		}

		if styled {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(codeStyle.Render(string(r)))
		}
	}

	return b.String()
}

// Run starts the interactive browser over the given entries and blocks until
// the user quits.
func Run(ctx context.Context, title string, entries []Entry) error {
	program := tea.NewProgram(
		newModel(title, entries),
		tea.WithContext(ctx),
	)

	_, err := program.Run()

	return err
}
