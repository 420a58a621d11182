package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// specEntry is one candidate spec file shown by the picker.
type specEntry struct {
	Name     string
	Path     string
	Size     int64
	Modified time.Time
}

// SpecListModel is the bubbletea model for interactive spec file
// selection.
type SpecListModel struct {
	Entries  []specEntry
	Cursor   int
	Selected *specEntry
	Height   int
	Offset   int
}

// NewSpecListModel creates a new spec list model.
func NewSpecListModel(entries []specEntry) SpecListModel {
	return SpecListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m SpecListModel) Init() tea.Cmd {
	return nil
}

func (m SpecListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Entries[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SpecListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Network Spec"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, e.Name, formatSize(e.Size), formatRelativeTime(e.Modified)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Spec", "Size", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// pickSpecFile lists candidate spec files in dir and runs the
// interactive picker. Candidates are regular files with .txt or .spec
// extensions, newest first.
func pickSpecFile(dir string) (string, error) {
	entries, err := listSpecFiles(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no spec files (*.txt, *.spec) in %s", dir)
	}
	if len(entries) == 1 {
		return entries[0].Path, nil
	}

	model := NewSpecListModel(entries)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", err
	}
	m := final.(SpecListModel)
	if m.Selected == nil {
		return "", fmt.Errorf("no spec selected")
	}
	return m.Selected.Path, nil
}

func listSpecFiles(dir string) ([]specEntry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var entries []specEntry
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		ext := filepath.Ext(d.Name())
		if ext != ".txt" && ext != ".spec" {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, specEntry{
			Name:     d.Name(),
			Path:     filepath.Join(dir, d.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Modified.After(entries[j].Modified)
	})
	return entries, nil
}

func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
