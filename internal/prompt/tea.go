package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TeaChooser shows the menu as a full-screen list navigated with the arrow keys.
type TeaChooser struct {
	In  io.Reader
	Out io.Writer
}

// Choose runs the menu until the user picks an option or quits.
func (c *TeaChooser) Choose(ctx context.Context, menu Menu) (string, error) {
	menu = menu.normalize()
	if len(menu.Options) == 0 {
		return "", ErrNoOptions
	}

	p := tea.NewProgram(newMenuModel(menu),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(c.In),
		tea.WithOutput(c.Out),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("menu failed: %w", err)
	}

	m, ok := final.(menuModel)
	if !ok || m.cancelled {
		return "", ErrCancelled
	}
	return m.choice, nil
}

type menuModel struct {
	menu       Menu
	options    []string
	expandable bool
	cursor     int
	height     int
	choice     string
	cancelled  bool
}

func newMenuModel(menu Menu) menuModel {
	m := menuModel{menu: menu, options: menu.Options, expandable: menu.expandable()}
	m.cursor = max(menu.defaultIndex(m.options), 0)
	return m
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m menuModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.options) - 1
	case "f", "F":
		if m.expandable {
			m.options, m.expandable = m.menu.Expanded, false
			m.cursor = max(m.menu.defaultIndex(m.options), 0)
		}
	case "enter":
		m.choice = m.options[m.cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder
	b.WriteString("Please choose an object:\n\n")
	decorated := Decorate(m.menu.Flags, m.options)
	start, end := m.window(len(decorated))
	for i := start; i < end; i++ {
		opt := decorated[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, opt)
	}

	help := []string{"↑/↓ move", "enter select"}
	if m.expandable {
		help = append(help, "f expand list")
	}
	help = append(help, "q quit")
	b.WriteString("\n" + strings.Join(help, " • ") + "\n")
	return b.String()
}

// window returns the range of options that fits on screen around the cursor.
func (m menuModel) window(n int) (int, int) {
	rows := m.height - 4
	if m.height == 0 || rows >= n {
		return 0, n
	}
	rows = max(rows, 1)
	start := min(max(m.cursor-rows/2, 0), n-rows)
	return start, start + rows
}
