// File: internal/ui/browser/browser.go
package browser

import (
	"context"
	"fmt"
	"io"
	"ossgate/pkg/storage"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lister is the part of the gateway the browser needs
type Lister interface {
	ListObjects(ctx context.Context, cfg storage.Config, params *storage.ListParams) ([]storage.Item, error)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const helpText = "↑/↓ move • enter open • backspace up • r refresh • q quit"

// itemsLoadedMsg carries the result of listing one prefix
type itemsLoadedMsg struct {
	prefix string
	items  []storage.Item
	err    error
}

type Model struct {
	ctx     context.Context
	lister  Lister
	cfg     storage.Config
	prefix  string
	items   []storage.Item
	table   table.Model
	spinner spinner.Model
	loading bool
	err     error
}

// Creates a browser positioned at prefix inside the profile's bucket
func New(ctx context.Context, lister Lister, cfg storage.Config, prefix string) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 40},
			{Title: "Size", Width: 10},
			{Title: "Last Modified", Width: 22},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		lister:  lister,
		cfg:     cfg,
		prefix:  prefix,
		table:   t,
		spinner: s,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.prefix))
}

func (m Model) load(prefix string) tea.Cmd {
	ctx, lister, cfg := m.ctx, m.lister, m.cfg
	return func() tea.Msg {
		items, err := lister.ListObjects(ctx, cfg, &storage.ListParams{Prefix: prefix})
		return itemsLoadedMsg{prefix: prefix, items: items, err: err}
	}
}

// Moves the browser to prefix and starts listing it
func (m Model) navigate(prefix string) (Model, tea.Cmd) {
	m.prefix = prefix
	m.loading = true
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.load(prefix))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-6, 3))
		return m, nil

	case itemsLoadedMsg:
		// A slow listing of a prefix we already left is dropped
		if msg.prefix != m.prefix {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.items = nil
		} else {
			m.items = msg.items
		}
		m.table.SetRows(m.rows())
		m.table.SetCursor(0)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m.navigate(m.prefix)
		case "backspace", "left":
			if m.prefix == "" {
				return m, nil
			}
			return m.navigate(parentPrefix(m.prefix))
		case "enter", "right":
			item, ok := m.selected()
			if !ok || !item.IsDirectory || m.loading {
				return m, nil
			}
			return m.navigate(item.Key)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) selected() (storage.Item, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return storage.Item{}, false
	}
	return m.items[i], true
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		name := strings.TrimPrefix(item.Key, m.prefix)
		size := storage.FormatBytes(int64(item.Size))
		if item.IsDirectory {
			size = "-"
		}
		modified := "-"
		if item.LastModified != nil {
			modified = *item.LastModified
		}
		rows = append(rows, table.Row{name, size, modified})
	}
	return rows
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s://%s/%s", m.cfg.Provider, m.cfg.Bucket, m.prefix)))
	sb.WriteString("\n\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + " Loading...\n")
	case m.err != nil:
		sb.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case len(m.items) == 0:
		sb.WriteString("(empty)\n")
	default:
		sb.WriteString(m.table.View() + "\n")
	}

	sb.WriteString("\n" + helpStyle.Render(helpText) + "\n")
	return sb.String()
}

// Prefix is the folder currently shown
func (m Model) Prefix() string {
	return m.prefix
}

// Runs the browser until the user quits or ctx is canceled
func Run(ctx context.Context, lister Lister, cfg storage.Config, prefix string, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		New(ctx, lister, cfg, prefix),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func parentPrefix(prefix string) string {
	trimmed := strings.TrimSuffix(prefix, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return ""
	}
	return trimmed[:i+1]
}
